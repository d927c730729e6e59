package migrations

import (
	"gorm.io/gorm"
)

// Migration001Sessions creates the session record table.
type Migration001Sessions struct{}

func (m *Migration001Sessions) Version() string {
	return "001_sessions"
}

func (m *Migration001Sessions) Description() string {
	return "Create session record table"
}

func (m *Migration001Sessions) Up(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS session_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id VARCHAR(255) NOT NULL UNIQUE,
			payload JSON NOT NULL,
			created_at DATETIME NOT NULL,
			expires_at DATETIME
		)
	`).Error
}

func (m *Migration001Sessions) Down(db *gorm.DB) error {
	return db.Exec(`DROP TABLE IF EXISTS session_records`).Error
}
