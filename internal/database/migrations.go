package database

import (
	"database/sql"
	"fmt"
)

// Migrate runs database migrations.
func Migrate(db *sql.DB) error {
	migrations := []string{
		createTranslationHistoryTable,
		createTranslationHistoryIndexes,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

const createTranslationHistoryTable = `
CREATE TABLE IF NOT EXISTS translation_history (
    id UUID PRIMARY KEY,
    provider VARCHAR(32) NOT NULL,
    source_language VARCHAR(16) NOT NULL DEFAULT 'auto',
    target_language VARCHAR(16) NOT NULL,
    text TEXT NOT NULL,
    translated_text TEXT,
    detected_source_language VARCHAR(16),
    success BOOLEAN NOT NULL,
    error TEXT,
    latency_ms BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

const createTranslationHistoryIndexes = `
CREATE INDEX IF NOT EXISTS idx_translation_history_created_at ON translation_history(created_at);
CREATE INDEX IF NOT EXISTS idx_translation_history_target ON translation_history(target_language);
`
