package store

import (
	"context"
	"errors"
	"time"

	"shopwise-server/internal/domain/session/model"
)

// ErrNotFound is returned when no record exists for a session id.
var ErrNotFound = errors.New("session record not found")

// ErrCorrupt is returned when the persisted bytes for a session id cannot
// be decoded. Callers are expected to fail closed and discard the record.
var ErrCorrupt = errors.New("session record corrupt")

// Store defines the behaviour required of a session record backend.
type Store interface {
	Save(ctx context.Context, rec model.Record) error
	Get(ctx context.Context, sessionID string) (model.Record, error)
	Remove(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]string, error)
	CleanupExpired(ctx context.Context) error
	Stats(ctx context.Context) (map[string]any, error)
	Close(ctx context.Context) error
}

// Config describes the high level store selection parameters.
type Config struct {
	Driver string
	TTL    time.Duration
	Redis  *RedisConfig
	SQLite *SQLiteConfig
	Memory *MemoryConfig
}

// MemoryConfig holds in-memory tuning knobs.
type MemoryConfig struct {
	GCInterval time.Duration
}

// SQLiteConfig provides the database dependency.
type SQLiteConfig struct {
	DSN string
}

// RedisConfig captures connection options.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}
