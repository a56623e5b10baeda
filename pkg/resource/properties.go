package resource

import (
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"skynow-api/pkg/log"
)

var (
	properties = viper.New()
	envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)
)

// init loads application properties from YAML
func init() {
	var value, ok = os.LookupEnv("PROPERTIES_FILE_PATH")
	if !ok {
		value = "configs/application.yml"
	}
	if err := Init(value); err != nil {
		log.Warn("Application properties not loaded, using defaults", zap.String("path", value), zap.Error(err))
	}
}

// Init (re)loads the properties file at filepath, resolving ${ENV:default} placeholders.
func Init(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	resolved := make(map[string]any)
	parsePropertiesMap("", v.AllSettings(), resolved)

	next := viper.New()
	for key, value := range resolved {
		next.Set(key, value)
	}
	properties = next
	return nil
}

// parsePropertiesMap flattens the YAML tree into dotted keys.
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			if resolved, ok := resolveEnvVariable(v); ok {
				result[fullKey] = resolved
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case []any:
			items := make([]any, 0, len(v))
			for _, item := range v {
				if s, isString := item.(string); isString {
					if resolved, ok := resolveEnvVariable(s); ok {
						items = append(items, resolved)
					}
					continue
				}
				items = append(items, item)
			}
			result[fullKey] = items
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			log.Warnf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariable expands a ${NAME:default} placeholder. Plain strings are returned as they are;
// a placeholder with no env value and no default resolves to nothing.
func resolveEnvVariable(value string) (string, bool) {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return value, true
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue, true
	}
	if len(matches) > 2 && matches[2] != "" {
		return matches[2], true
	}
	return "", false
}

// Set overrides a single property, mostly useful in tests.
func Set(key string, value any) {
	properties.Set(key, value)
}

func Get(key string) any {
	return properties.Get(key)
}

func IsSet(key string) bool {
	return properties.IsSet(key)
}

func GetString(key string) string {
	return properties.GetString(key)
}

// GetStringOrDefault returns the property or def when it is empty.
func GetStringOrDefault(key string, def string) string {
	if value := properties.GetString(key); value != "" {
		return value
	}
	return def
}

func GetBool(key string) bool {
	return properties.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return properties.GetDuration(key)
}

// GetDurationOrDefault returns the property or def when it is unset or not positive.
func GetDurationOrDefault(key string, def time.Duration) time.Duration {
	if value := properties.GetDuration(key); value > 0 {
		return value
	}
	return def
}

func GetInt(key string) int {
	return properties.GetInt(key)
}

// GetIntOrDefault returns the property or def when it is unset.
func GetIntOrDefault(key string, def int) int {
	if !properties.IsSet(key) {
		return def
	}
	return properties.GetInt(key)
}

func GetFloat64(key string) float64 {
	return properties.GetFloat64(key)
}

// GetFloat64OrDefault returns the property or def when it is unset.
func GetFloat64OrDefault(key string, def float64) float64 {
	if !properties.IsSet(key) {
		return def
	}
	return properties.GetFloat64(key)
}

func GetStringSlice(key string) []string {
	return properties.GetStringSlice(key)
}
