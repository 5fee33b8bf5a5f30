package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults fill missing keys", func(t *testing.T) {
		// Given: a config file with just the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: the config is loaded
		conf, err := Load(path)

		// Then: every other value comes from the defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "8080", conf.SocketPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.Session.TTL)
		assert.Equal(t, 1, conf.Bingo.MinNumber)
		assert.Equal(t, 99, conf.Bingo.MaxNumber)
		assert.Equal(t, 2*time.Second, conf.Bingo.AutoCallInterval)
	})

	t.Run("File values are read", func(t *testing.T) {
		path := writeConfig(t, `
storage: redis
redis:
  host: cache
  port: "6380"
bingo:
  min-number: 1
  max-number: 75
  auto-call-interval: 500ms
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 75, conf.Bingo.MaxNumber)
		assert.Equal(t, 500*time.Millisecond, conf.Bingo.AutoCallInterval)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"7000\"\n")
		t.Setenv("HTTP_PORT", "7100")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "7100", conf.HTTPPort)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "absent.yml")) })
	})
}
