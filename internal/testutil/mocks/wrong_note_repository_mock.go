package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vocabflash/internal/models"
)

// MockWrongNoteRepository is a mock implementation of repository.WrongNoteRepository
type MockWrongNoteRepository struct {
	mock.Mock
}

func (m *MockWrongNoteRepository) Add(ctx context.Context, wordID, examID int64) error {
	args := m.Called(ctx, wordID, examID)
	return args.Error(0)
}

func (m *MockWrongNoteRepository) Get(ctx context.Context, wordID int64) (*models.WrongNote, error) {
	args := m.Called(ctx, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WrongNote), args.Error(1)
}

func (m *MockWrongNoteRepository) ListUnresolved(ctx context.Context) ([]models.WrongNoteWithWord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WrongNoteWithWord), args.Error(1)
}

func (m *MockWrongNoteRepository) Resolve(ctx context.Context, wordID int64) (bool, error) {
	args := m.Called(ctx, wordID)
	return args.Bool(0), args.Error(1)
}
