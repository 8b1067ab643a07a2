package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL   = "https://api.spacexdata.com/v4"
	DefaultTimeout  = 10 * time.Second
	DefaultDBPath   = "launchdeck.db"
	DefaultLogLevel = "info"
	logFileName     = "launchdeck.log"
)

// Environment variable names
const (
	EnvAPIURL   = "LAUNCHDECK_API_URL"
	EnvTimeout  = "LAUNCHDECK_TIMEOUT"
	EnvDBPath   = "LAUNCHDECK_DB"
	EnvLogPath  = "LAUNCHDECK_LOG"
	EnvLogLevel = "LAUNCHDECK_LOG_LEVEL"
)

// Config holds runtime settings. Precedence: flags > environment > .env > defaults.
type Config struct {
	APIURL   string
	Timeout  time.Duration
	DBPath   string // empty keeps favorites in memory only
	LogPath  string // empty means next to the database
	LogLevel string
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		Timeout:  DefaultTimeout,
		DBPath:   DefaultDBPath,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads .env files (missing files are ignored) and then the environment.
// With no arguments godotenv looks for ./.env. Variables already set in the
// environment are never overridden by .env.
func Load(envFiles ...string) (Config, error) {
	_ = godotenv.Load(envFiles...)
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from defaults overlaid with the given lookup
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvAPIURL); ok && strings.TrimSpace(v) != "" {
		cfg.APIURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		cfg.Timeout = d
	}
	if v, ok := lookup(EnvDBPath); ok {
		cfg.DBPath = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogPath); ok {
		cfg.LogPath = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	return cfg, nil
}

// Validate rejects settings the client cannot run with
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("API URL must not be empty")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API URL %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API URL %q: missing host", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level returns the parsed log level, falling back to info
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ResolvedLogPath returns LogPath, or a file next to the database
func (c Config) ResolvedLogPath() string {
	if c.LogPath != "" {
		return c.LogPath
	}
	if c.DBPath == "" {
		return logFileName
	}
	return filepath.Join(filepath.Dir(c.DBPath), logFileName)
}
