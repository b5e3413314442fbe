package repository

import (
	"context"

	"github.com/vytor/vocabflash/internal/models"
)

// ExamRepository handles exams and their questions
type ExamRepository interface {
	Create(ctx context.Context, exam models.Exam, sessionID int64, questions []models.ExamQuestion) (int64, error)
	Get(ctx context.Context, id int64) (*models.Exam, error)
	Questions(ctx context.Context, examID int64) ([]models.ExamQuestion, error)
	UpdateQuestion(ctx context.Context, q models.ExamQuestion) error
	Finish(ctx context.Context, exam models.Exam) error
	ListRecent(ctx context.Context, limit int) ([]models.Exam, error)
	Delete(ctx context.Context, id int64) error
}
