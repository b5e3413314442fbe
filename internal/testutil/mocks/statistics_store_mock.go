package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vocabflash/internal/models"
)

// MockStatisticsStore is a mock implementation of services.StatisticsStore
type MockStatisticsStore struct {
	mock.Mock
}

func (m *MockStatisticsStore) Get(ctx context.Context, wordID int64) (*models.WordStatistics, error) {
	args := m.Called(ctx, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordStatistics), args.Error(1)
}

func (m *MockStatisticsStore) GetMany(ctx context.Context, wordIDs []int64) (map[int64]models.WordStatistics, error) {
	args := m.Called(ctx, wordIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]models.WordStatistics), args.Error(1)
}

func (m *MockStatisticsStore) Initialize(ctx context.Context, wordID int64) error {
	args := m.Called(ctx, wordID)
	return args.Error(0)
}

func (m *MockStatisticsStore) RecordAnswer(ctx context.Context, wordID int64, isCorrect bool) (*models.WordStatistics, error) {
	args := m.Called(ctx, wordID, isCorrect)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordStatistics), args.Error(1)
}

func (m *MockStatisticsStore) Scores(ctx context.Context, words []models.Word) (map[int64]float64, error) {
	args := m.Called(ctx, words)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]float64), args.Error(1)
}
