package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vocabflash/internal/models"
)

// MockReportRepository is a mock implementation of repository.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SessionsBetween(ctx context.Context, from, to time.Time) ([]models.SessionRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SessionRow), args.Error(1)
}

func (m *MockReportRepository) MasteryCounts(ctx context.Context) ([]models.MasteryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MasteryCount), args.Error(1)
}

func (m *MockReportRepository) TopWrong(ctx context.Context, limit int) ([]models.TopWrongWord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TopWrongWord), args.Error(1)
}
