package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vocabflash/internal/models"
)

// MockExamRepository is a mock implementation of repository.ExamRepository
type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) Create(ctx context.Context, exam models.Exam, sessionID int64, questions []models.ExamQuestion) (int64, error) {
	args := m.Called(ctx, exam, sessionID, questions)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExamRepository) Get(ctx context.Context, id int64) (*models.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exam), args.Error(1)
}

func (m *MockExamRepository) Questions(ctx context.Context, examID int64) ([]models.ExamQuestion, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExamQuestion), args.Error(1)
}

func (m *MockExamRepository) UpdateQuestion(ctx context.Context, q models.ExamQuestion) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockExamRepository) Finish(ctx context.Context, exam models.Exam) error {
	args := m.Called(ctx, exam)
	return args.Error(0)
}

func (m *MockExamRepository) ListRecent(ctx context.Context, limit int) ([]models.Exam, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exam), args.Error(1)
}

func (m *MockExamRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
