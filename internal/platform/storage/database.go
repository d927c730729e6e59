package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopwise-server/internal/platform/storage/migrations"
)

// Open creates (or opens) the SQLite database at the given DSN and runs
// pending migrations. An empty DSN uses ./data/shopwise.db.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dataDir := "./data"
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "shopwise.db")
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema to an already opened database handle.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&SessionRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	manager := NewMigrationManager(db)
	manager.AddMigration(&migrations.Migration001Sessions{})
	if err := manager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SessionRecord is the GORM model backing the SQLite session store. The
// payload holds the serialized principal and is never interpreted here.
type SessionRecord struct {
	ID        uint           `gorm:"primaryKey"`
	SessionID string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"session_id"`
	Payload   datatypes.JSON `gorm:"not null"                               json:"payload"`
	CreatedAt time.Time      `                                              json:"created_at"`
	ExpiresAt *time.Time     `                                              json:"expires_at,omitempty"`
}
