// Package sqlite provides SQLite-backed implementations of the domain
// repositories.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/siteperm/internal/domain/repository"
	"github.com/bnema/siteperm/internal/logging"
)

type preferenceRepo struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new SQLite-backed preference repository.
func NewPreferenceRepository(db *sql.DB) repository.PreferenceRepository {
	return &preferenceRepo{db: db}
}

func (r *preferenceRepo) LoadInt(ctx context.Context, key string) (int64, bool, error) {
	var value int64
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM preferences WHERE key = ?", key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to load preference %q: %w", key, err)
	}
	return value, true, nil
}

func (r *preferenceRepo) SaveInt(ctx context.Context, key string, value int64) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", key).Int64("value", value).Msg("saving scalar preference")

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save preference %q: %w", key, err)
	}
	return nil
}

func (r *preferenceRepo) LoadList(ctx context.Context, key string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT value FROM preference_list_items WHERE key = ? ORDER BY position", key,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load preference list %q: %w", key, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("failed to close preference rows")
		}
	}()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan preference list %q: %w", key, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preference list %q: %w", key, err)
	}
	return values, nil
}

func (r *preferenceRepo) SaveList(ctx context.Context, key string, values []string) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", key).Int("len", len(values)).Msg("saving list preference")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin preference save: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Warn().Err(rollbackErr).Msg("failed to rollback preference save")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		"DELETE FROM preference_list_items WHERE key = ?", key,
	); err != nil {
		return fmt.Errorf("failed to clear preference list %q: %w", key, err)
	}

	for i, v := range values {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO preference_list_items (key, position, value) VALUES (?, ?, ?)",
			key, i, v,
		); err != nil {
			return fmt.Errorf("failed to write preference list %q: %w", key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit preference list %q: %w", key, err)
	}
	return nil
}
