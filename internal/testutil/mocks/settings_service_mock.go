package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vocabflash/internal/models"
)

// MockSettingsService is a mock implementation of services.SettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) List(ctx context.Context) ([]models.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Setting), args.Error(1)
}

func (m *MockSettingsService) Get(ctx context.Context, key string) (*models.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Setting), args.Error(1)
}

func (m *MockSettingsService) Set(ctx context.Context, key string, raw json.RawMessage) (*models.Setting, error) {
	args := m.Called(ctx, key, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Setting), args.Error(1)
}

func (m *MockSettingsService) Reset(ctx context.Context, key string) (*models.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Setting), args.Error(1)
}

func (m *MockSettingsService) Int(ctx context.Context, key string, fallback int64) int64 {
	args := m.Called(ctx, key, fallback)
	return args.Get(0).(int64)
}

func (m *MockSettingsService) Bool(ctx context.Context, key string, fallback bool) bool {
	args := m.Called(ctx, key, fallback)
	return args.Bool(0)
}
