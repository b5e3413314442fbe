package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vocabflash/internal/models"
)

// MockWordRepository is a mock implementation of repository.WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) Get(ctx context.Context, id int64) (*models.Word, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Word), args.Error(1)
}

func (m *MockWordRepository) ListAll(ctx context.Context) ([]models.Word, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Word), args.Error(1)
}

func (m *MockWordRepository) ListFavorites(ctx context.Context) ([]models.Word, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Word), args.Error(1)
}

func (m *MockWordRepository) List(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Word), args.Error(1)
}

func (m *MockWordRepository) Count(ctx context.Context, filter models.WordFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockWordRepository) FindByText(ctx context.Context, source, target string) (*models.Word, error) {
	args := m.Called(ctx, source, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Word), args.Error(1)
}

func (m *MockWordRepository) Insert(ctx context.Context, word models.Word) (int64, error) {
	args := m.Called(ctx, word)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWordRepository) Update(ctx context.Context, word models.Word) error {
	args := m.Called(ctx, word)
	return args.Error(0)
}

func (m *MockWordRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWordRepository) SetFavorite(ctx context.Context, id int64, favorite bool) error {
	args := m.Called(ctx, id, favorite)
	return args.Error(0)
}
