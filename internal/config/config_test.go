package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Egor213/Sawmill/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_CONFIG_PATH", "SAWMILL_DEBUG", "SAWMILL_PORT", "SAWMILL_DB_URI",
		"SAWMILL_SECRET_KEY", "KAFKA_BROKERS", "LOG_LEVEL", "SAWMILL_HOST",
		"HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT",
		"PG_CONN_ATTEMPTS", "PG_CONN_TIMEOUT", "KAFKA_PUBLISH_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("APP_ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
}

func TestNew_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := config.New(nil)
	require.NoError(t, err)

	assert.False(t, bool(cfg.HTTP.Debug))
	assert.Equal(t, "6892", cfg.HTTP.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Session.SecretKey)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.NotEmpty(t, cfg.App.Revision)
	assert.Nil(t, cfg.Actions.HashPassword)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 10, cfg.PG.ConnAttempts)
	assert.Equal(t, time.Second, cfg.PG.ConnTimeout)
	assert.Equal(t, 2*time.Second, cfg.Kafka.PublishTimeout)
}

func TestNew_Timeouts(t *testing.T) {
	isolateEnv(t)
	t.Setenv("HTTP_WRITE_TIMEOUT", "30s")
	t.Setenv("PG_CONN_ATTEMPTS", "3")
	t.Setenv("PG_CONN_TIMEOUT", "250ms")
	t.Setenv("KAFKA_PUBLISH_TIMEOUT", "500ms")

	cfg, err := config.New([]string{"--host", "127.0.0.1"})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, 3, cfg.PG.ConnAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.PG.ConnTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Kafka.PublishTimeout)
}

func TestNew_Precedence(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SAWMILL_PORT", "7000")
	t.Setenv("SAWMILL_DEBUG", "y")
	t.Setenv("SAWMILL_SECRET_KEY", "from-env")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := config.New([]string{"--port", "8000", "--db-uri", "postgres://cli/db"})
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.HTTP.Port)
	assert.Equal(t, "postgres://cli/db", cfg.PG.URL)
	assert.True(t, bool(cfg.HTTP.Debug))
	assert.Equal(t, "from-env", cfg.Session.SecretKey)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestNew_Actions(t *testing.T) {
	isolateEnv(t)

	cfg, err := config.New([]string{"--create-db", "--hash-password", "s3cret"})
	require.NoError(t, err)

	assert.True(t, cfg.Actions.CreateDB)
	assert.False(t, cfg.Actions.CreateSecretKey)
	require.NotNil(t, cfg.Actions.HashPassword)
	assert.Equal(t, "s3cret", *cfg.Actions.HashPassword)
}

func TestNew_DebugFlagWithoutValue(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SAWMILL_DEBUG", "false")

	cfg, err := config.New([]string{"--debug"})
	require.NoError(t, err)
	assert.True(t, bool(cfg.HTTP.Debug))
}

func TestBoolFlag_SetValue(t *testing.T) {
	testCases := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"T", true},
		{"1", true},
		{"y", true},
		{"false", false},
		{"F", false},
		{"0", false},
		{"n", false},
		{"", false},
		{"anything", true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			var b config.BoolFlag
			require.NoError(t, b.SetValue(tc.in))
			assert.Equal(t, tc.want, bool(b))
		})
	}
}
