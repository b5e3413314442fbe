package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/vocabflash/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueBackup() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueImport(source string, words []models.Word) error {
	args := m.Called(source, words)
	return args.Error(0)
}
