package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/SscSPs/dual_price_app/internal/apperrors"
	portsrepo "github.com/SscSPs/dual_price_app/internal/core/ports/repositories"
	"github.com/SscSPs/dual_price_app/internal/models"
	"github.com/SscSPs/dual_price_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const upsertSettingQuery = `
	INSERT INTO settings (key, value, last_updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET
		value = EXCLUDED.value,
		last_updated_at = EXCLUDED.last_updated_at;
`

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for the key-value settings table.
func newPgxSettingsRepository(pool *pgxpool.Pool) *PgxSettingsRepository {
	return &PgxSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// GetSetting retrieves a single value.
func (r *PgxSettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM settings WHERE key = $1;`

	var value string
	err := r.Pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// GetSettings retrieves the stored values for keys in one query.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context, keys ...string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}
	query := `
		SELECT key, value, last_updated_at
		FROM settings
		WHERE key = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Setting])
	if err != nil {
		return nil, fmt.Errorf("failed to scan settings: %w", err)
	}
	return mapping.ToSettingsMap(settings), nil
}

// SetSetting creates or overwrites a single value.
func (r *PgxSettingsRepository) SetSetting(ctx context.Context, key, value string) error {
	if _, err := r.Pool.Exec(ctx, upsertSettingQuery, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// SetSettings writes all values in one transaction.
func (r *PgxSettingsRepository) SetSettings(ctx context.Context, values map[string]string) error {
	return r.ApplySettings(ctx, values, nil)
}

// DeleteSettings removes keys.
func (r *PgxSettingsRepository) DeleteSettings(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := r.Pool.Exec(ctx, `DELETE FROM settings WHERE key = ANY($1);`, keys); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	return nil
}

// ApplySettings writes values and removes keys in one transaction, so readers
// never observe a partially applied change.
func (r *PgxSettingsRepository) ApplySettings(ctx context.Context, values map[string]string, remove []string) error {
	if len(values) == 0 && len(remove) == 0 {
		return nil
	}
	now := time.Now().UTC()

	return r.WithTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		// stable row lock order
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			batch.Queue(upsertSettingQuery, key, values[key], now)
		}
		if len(remove) > 0 {
			batch.Queue(`DELETE FROM settings WHERE key = ANY($1);`, remove)
		}

		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to apply settings", err)
		}
		return nil
	})
}
