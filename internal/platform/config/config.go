package config

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Web     WebConfig     `yaml:"web"`
	Session SessionConfig `yaml:"session"`
}

type ServerConfig struct {
	IP   string `yaml:"ip"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

type WebConfig struct {
	StaticDir   string `yaml:"static_dir"`
	LoginPath   string `yaml:"login_path"`
	LandingPath string `yaml:"landing_path"`
}

// SessionConfig controls token signing and the session record store.
type SessionConfig struct {
	Secret   string      `yaml:"secret"`
	TokenTTL Duration    `yaml:"token_ttl"`
	Store    StoreConfig `yaml:"store"`
}

type StoreConfig struct {
	Type    string            `yaml:"type"`
	Expiry  Duration          `yaml:"expiry"`
	Cleanup Duration          `yaml:"cleanup"`
	Redis   RedisStoreConfig  `yaml:"redis,omitempty"`
	SQLite  SQLiteStoreConfig `yaml:"sqlite,omitempty"`
}

type RedisStoreConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

type SQLiteStoreConfig struct {
	DSN string `yaml:"dsn,omitempty"`
}
