package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/storage"
)

type settingsRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewSettingsRepo(db *pgxpool.Pool, log logger.ILogger) storage.ISettingsStorage {
	return &settingsRepo{db: db, log: log}
}

func (r *settingsRepo) Get(ctx context.Context, key string) (*models.SystemSetting, error) {
	var s models.SystemSetting
	query := `SELECT key, value, updated_at FROM system_settings WHERE key = $1`
	err := r.db.QueryRow(ctx, query, key).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get setting", logger.String("key", key), logger.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepo) GetAll(ctx context.Context) ([]*models.SystemSetting, error) {
	query := `SELECT key, value, updated_at FROM system_settings ORDER BY key`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*models.SystemSetting
	for rows.Next() {
		var s models.SystemSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}
	return settings, rows.Err()
}

func (r *settingsRepo) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO system_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, key, value)
	if err != nil {
		r.log.Error("failed to upsert setting", logger.String("key", key), logger.Error(err))
	}
	return err
}
