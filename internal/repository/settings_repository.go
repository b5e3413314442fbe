package repository

import (
	"context"

	"github.com/vytor/vocabflash/internal/models"
)

// SettingsRepository handles typed application settings
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	List(ctx context.Context) ([]models.Setting, error)
	Set(ctx context.Context, key string, value models.SettingValue) error
	Reset(ctx context.Context, key string) error
}
