package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository implementation
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// scanSetting converts the stored text into typed values once, here.
func scanSetting(row rowScanner) (models.Setting, error) {
	var s models.Setting
	var raw, rawDefault string
	if err := row.Scan(&s.Key, &raw, &rawDefault, &s.Kind, &s.Description, &s.UpdatedAt); err != nil {
		return s, err
	}
	var err error
	if s.Value, err = models.ParseSettingValue(s.Kind, raw); err != nil {
		return s, fmt.Errorf("setting %s: %w", s.Key, err)
	}
	if s.DefaultValue, err = models.ParseSettingValue(s.Kind, rawDefault); err != nil {
		return s, fmt.Errorf("setting %s default: %w", s.Key, err)
	}
	return s, nil
}

func (r *settingsRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("getting setting: key=%s", key)

	s, err := scanSetting(r.db.QueryRowContext(ctx, `
SELECT key, value, default_value, kind, description, updated_at FROM settings WHERE key = ?
`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get setting: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) List(ctx context.Context) ([]models.Setting, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("listing settings")

	rows, err := r.db.QueryContext(ctx, `
SELECT key, value, default_value, kind, description, updated_at FROM settings ORDER BY key ASC
`)
	if err != nil {
		log.Error("failed to list settings: %v", err)
		return nil, err
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			log.Error("failed to scan setting row: %v", err)
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *settingsRepository) Set(ctx context.Context, key string, value models.SettingValue) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("setting %s=%s", key, value.Encode())

	res, err := r.db.ExecContext(ctx, `
UPDATE settings SET value = ?, updated_at = ? WHERE key = ? AND kind = ?
`, value.Encode(), now(), key, value.Kind)
	if err != nil {
		log.Error("failed to set setting: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *settingsRepository) Reset(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("resetting setting: key=%s", key)

	res, err := r.db.ExecContext(ctx, `UPDATE settings SET value = default_value, updated_at = ? WHERE key = ?`, now(), key)
	if err != nil {
		log.Error("failed to reset setting: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
