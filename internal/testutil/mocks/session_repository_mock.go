package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vocabflash/internal/models"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session models.StudySession) (int64, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) Get(ctx context.Context, id int64) (*models.StudySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudySession), args.Error(1)
}

func (m *MockSessionRepository) Finish(ctx context.Context, session models.StudySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) InsertHistory(ctx context.Context, entry models.LearningHistoryEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) HistoryForSession(ctx context.Context, sessionID int64) ([]models.LearningHistoryEntry, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LearningHistoryEntry), args.Error(1)
}
