package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is consulted when the loader is not given an explicit file.
const DefaultPath = "config.yaml"

// Loader reads configuration from an optional YAML file plus environment
// overrides.
type Loader struct {
	path      string
	useDotEnv bool
}

// NewLoader creates a loader reading from the default path.
func NewLoader() *Loader {
	return &Loader{
		path:      DefaultPath,
		useDotEnv: true,
	}
}

// WithPath overrides the configuration file path.
func (l *Loader) WithPath(path string) *Loader {
	if path != "" {
		l.path = path
	}
	return l
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// Result captures the loaded configuration and its origin path.
type Result struct {
	Config *Config
	Path   string
}

// Load builds the effective configuration: defaults, then the YAML file if
// present, then environment variables.
func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil {
			fmt.Println("no .env file found, using system environment")
		}
	}

	cfg := DefaultConfig()
	path := ""

	if data, err := os.ReadFile(l.path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", l.path, err)
		}
		path = l.path
	}

	applyEnvOverrides(cfg)

	return &Result{
		Config: cfg,
		Path:   path,
	}, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SHOPWISE_IP"); v != "" {
		cfg.Server.IP = v
	}
	if v := os.Getenv("SHOPWISE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SHOPWISE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SHOPWISE_SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}
	if v := os.Getenv("SHOPWISE_SESSION_STORE"); v != "" {
		cfg.Session.Store.Type = v
	}
	if v := os.Getenv("SHOPWISE_REDIS_ADDR"); v != "" {
		cfg.Session.Store.Redis.Addr = v
	}
	if v := os.Getenv("SHOPWISE_SQLITE_DSN"); v != "" {
		cfg.Session.Store.SQLite.DSN = v
	}
	if v := os.Getenv("SHOPWISE_STATIC_DIR"); v != "" {
		cfg.Web.StaticDir = v
	}
}
