package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blossom/internal/ports/output"
)

var _ output.LanguagePreferences = (*PreferenceRepository)(nil)

// PreferenceRepository stores language preferences in PostgreSQL.
type PreferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}

const (
	selectLanguage = `SELECT language FROM language_preferences WHERE source_id = $1`
	upsertLanguage = `INSERT INTO language_preferences (source_id, language, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (source_id) DO UPDATE SET language = EXCLUDED.language, updated_at = now()`
)

func (r *PreferenceRepository) Language(ctx context.Context, sourceID string) (string, bool, error) {
	var language string
	err := r.pool.QueryRow(ctx, selectLanguage, sourceID).Scan(&language)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get language preference: %w", err)
	}
	return language, true, nil
}

func (r *PreferenceRepository) SetLanguage(ctx context.Context, sourceID, language string) error {
	if _, err := r.pool.Exec(ctx, upsertLanguage, sourceID, language); err != nil {
		return fmt.Errorf("set language preference: %w", err)
	}
	return nil
}
