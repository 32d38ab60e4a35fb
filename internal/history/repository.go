// Package history persists translation attempts to PostgreSQL.
package history

import (
	"context"
	"database/sql"
	"fmt"

	"lingobridge/internal/database"
	"lingobridge/internal/models"
)

// MaxLimit caps the number of records returned by Recent.
const MaxLimit = 100

// Repository reads and writes translation_history rows.
type Repository struct {
	db *database.DB
}

// NewRepository creates a new history repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Record inserts one translation attempt.
func (r *Repository) Record(ctx context.Context, rec models.HistoryRecord) error {
	query := `
		INSERT INTO translation_history
			(id, provider, source_language, target_language, text, translated_text,
			 detected_source_language, success, error, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Provider,
		rec.SourceLanguage,
		rec.TargetLanguage,
		rec.Text,
		rec.TranslatedText,
		rec.DetectedSourceLanguage,
		rec.Success,
		rec.Error,
		rec.LatencyMS,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert translation history: %w", err)
	}
	return nil
}

// Recent returns the newest records first. limit is clamped to [1, MaxLimit].
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	query := `
		SELECT id, provider, source_language, target_language, text, translated_text,
		       detected_source_language, success, error, latency_ms, created_at
		FROM translation_history
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query translation history: %w", err)
	}
	defer rows.Close()

	records := make([]models.HistoryRecord, 0, limit)
	for rows.Next() {
		var (
			rec                        models.HistoryRecord
			translated, detected, errs sql.NullString
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Provider,
			&rec.SourceLanguage,
			&rec.TargetLanguage,
			&rec.Text,
			&translated,
			&detected,
			&rec.Success,
			&errs,
			&rec.LatencyMS,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan translation history: %w", err)
		}
		rec.TranslatedText = nullableString(translated)
		rec.DetectedSourceLanguage = nullableString(detected)
		rec.Error = nullableString(errs)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate translation history: %w", err)
	}

	return records, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
