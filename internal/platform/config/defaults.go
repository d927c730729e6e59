package config

import "time"

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			IP:   "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "data/logs",
			File:  "server.log",
		},
		Web: WebConfig{
			StaticDir:   "./web",
			LoginPath:   "/login",
			LandingPath: "/dashboard",
		},
		Session: SessionConfig{
			Secret:   "change_me",
			TokenTTL: Duration(24 * time.Hour),
			Store: StoreConfig{
				Type:    "memory",
				Expiry:  Duration(24 * time.Hour),
				Cleanup: Duration(10 * time.Minute),
			},
		},
	}
}
