package services

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

// SettingsService handles typed application settings
type SettingsService interface {
	List(ctx context.Context) ([]models.Setting, error)
	Get(ctx context.Context, key string) (*models.Setting, error)
	Set(ctx context.Context, key string, raw json.RawMessage) (*models.Setting, error)
	Reset(ctx context.Context, key string) (*models.Setting, error)
	// Int and Bool return fallback when the key is missing or of another kind.
	Int(ctx context.Context, key string, fallback int64) int64
	Bool(ctx context.Context, key string, fallback bool) bool
}

type settingsService struct {
	repo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) List(ctx context.Context) ([]models.Setting, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list settings: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return settings, nil
}

func (s *settingsService) Get(ctx context.Context, key string) (*models.Setting, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get setting: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if setting == nil {
		return nil, errors.NewNotFoundError("setting", key)
	}
	return setting, nil
}

func (s *settingsService) Set(ctx context.Context, key string, raw json.RawMessage) (*models.Setting, error) {
	log := logger.FromContext(ctx).WithPrefix("settings")

	current, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	value, err := models.SettingValueFromJSON(current.Kind, raw)
	if err != nil {
		return nil, errors.NewValidationError("value", err.Error())
	}
	if value.Kind == models.KindInteger && value.Int < 0 {
		return nil, errors.NewValidationError("value", "must not be negative")
	}

	if err := s.repo.Set(ctx, key, value); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("setting", key)
		}
		log.Error("failed to save setting: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("setting updated: %s=%s", key, value.Encode())
	return s.Get(ctx, key)
}

func (s *settingsService) Reset(ctx context.Context, key string) (*models.Setting, error) {
	if err := s.repo.Reset(ctx, key); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("setting", key)
		}
		logger.FromContext(ctx).Error("failed to reset setting: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.Get(ctx, key)
}

func (s *settingsService) Int(ctx context.Context, key string, fallback int64) int64 {
	setting, err := s.repo.Get(ctx, key)
	if err != nil || setting == nil || setting.Kind != models.KindInteger {
		if err != nil {
			logger.FromContext(ctx).Warn("failed to read setting %s, using %d: %v", key, fallback, err)
		}
		return fallback
	}
	return setting.Value.Int
}

func (s *settingsService) Bool(ctx context.Context, key string, fallback bool) bool {
	setting, err := s.repo.Get(ctx, key)
	if err != nil || setting == nil || setting.Kind != models.KindBoolean {
		if err != nil {
			logger.FromContext(ctx).Warn("failed to read setting %s, using %t: %v", key, fallback, err)
		}
		return fallback
	}
	return setting.Value.Bool
}
