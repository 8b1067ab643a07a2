package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{
		EnvAPIURL:   " http://localhost:8080/v4 ",
		EnvTimeout:  "3s",
		EnvDBPath:   "/tmp/x/fav.db",
		EnvLogPath:  "/tmp/x/debug.log",
		EnvLogLevel: "DEBUG",
	}))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/v4", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/x/fav.db", cfg.DBPath)
	assert.Equal(t, "/tmp/x/debug.log", cfg.ResolvedLogPath())
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestFromEnvEmptyDBMeansMemoryOnly(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{EnvDBPath: ""}))
	require.NoError(t, err)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, "launchdeck.log", cfg.ResolvedLogPath())
}

func TestFromEnvBadTimeout(t *testing.T) {
	_, err := FromEnv(lookupFrom(map[string]string{EnvTimeout: "soon"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty url", func(c *Config) { c.APIURL = "" }, "must not be empty"},
		{"no scheme", func(c *Config) { c.APIURL = "api.spacexdata.com/v4" }, "scheme"},
		{"no host", func(c *Config) { c.APIURL = "https:///v4" }, "missing host"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout must be positive"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout must be positive"},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolvedLogPathNextToDatabase(t *testing.T) {
	cfg := Default()
	cfg.DBPath = filepath.Join("data", "launchdeck.db")
	assert.Equal(t, filepath.Join("data", "launchdeck.log"), cfg.ResolvedLogPath())
}

func TestLoadReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LAUNCHDECK_TIMEOUT=7s\nLAUNCHDECK_LOG_LEVEL=warn\n"), 0644))

	// The process environment wins over .env
	t.Setenv(EnvLogLevel, "error")
	t.Cleanup(func() { os.Unsetenv(EnvTimeout) })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.Timeout)
	assert.Equal(t, "error", cfg.LogLevel)
}
