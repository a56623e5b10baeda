package configs

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type EnvConfig struct {
	ApplicationName string
	ContextPath     string
}

var Env *EnvConfig

func init() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load(envFile())

	env := viper.New()
	env.AutomaticEnv()

	Env = &EnvConfig{
		ApplicationName: getStringOrDefault(env, "APPLICATION_NAME", "skynow-api"),
		ContextPath:     getStringOrDefault(env, "CONTEXT_PATH", "/skynow"),
	}
}

func envFile() string {
	if path, ok := os.LookupEnv("ENV_FILE_PATH"); ok {
		return path
	}
	return ".env"
}

func getStringOrDefault(env *viper.Viper, key, defaultValue string) string {
	value := env.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
