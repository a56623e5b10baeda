package resource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProperties = `
app:
  server:
    port: ${SKYNOW_TEST_PORT:8080}
    context-path: /skynow
  weather:
    api-key: ${SKYNOW_TEST_API_KEY}
    timeout: 5s
    sources:
      - onecall
      - ${SKYNOW_TEST_FALLBACK:standard}
    default-location:
      lat: 51.5074
`

func writeProperties(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestInitResolvesPlaceholders(t *testing.T) {
	t.Setenv("SKYNOW_TEST_PORT", "9090")
	path := writeProperties(t, sampleProperties)

	require.NoError(t, Init(path))

	assert.Equal(t, "9090", GetString("app.server.port"))
	assert.Equal(t, "/skynow", GetString("app.server.context-path"))
	assert.Equal(t, 5*time.Second, GetDuration("app.weather.timeout"))
	assert.Equal(t, []string{"onecall", "standard"}, GetStringSlice("app.weather.sources"))
	assert.InDelta(t, 51.5074, GetFloat64("app.weather.default-location.lat"), 1e-9)
}

func TestInitDropsUnresolvedPlaceholder(t *testing.T) {
	path := writeProperties(t, sampleProperties)

	require.NoError(t, Init(path))

	assert.False(t, IsSet("app.weather.api-key"))
	assert.Equal(t, "fallback", GetStringOrDefault("app.weather.api-key", "fallback"))
}

func TestInitMissingFileKeepsPreviousProperties(t *testing.T) {
	path := writeProperties(t, sampleProperties)
	require.NoError(t, Init(path))

	err := Init(filepath.Join(t.TempDir(), "missing.yml"))

	assert.Error(t, err)
	assert.Equal(t, "/skynow", GetString("app.server.context-path"))
}

func TestDefaults(t *testing.T) {
	path := writeProperties(t, sampleProperties)
	require.NoError(t, Init(path))

	assert.Equal(t, 3, GetIntOrDefault("app.history.size", 3))
	assert.Equal(t, time.Minute, GetDurationOrDefault("app.cache.snapshot-ttl", time.Minute))
	assert.InDelta(t, -0.1278, GetFloat64OrDefault("app.weather.default-location.lon", -0.1278), 1e-9)
}
