package repository

import (
	"context"

	"github.com/vytor/vocabflash/internal/models"
)

// SessionRepository handles study session and learning history rows
type SessionRepository interface {
	Create(ctx context.Context, session models.StudySession) (int64, error)
	Get(ctx context.Context, id int64) (*models.StudySession, error)
	Finish(ctx context.Context, session models.StudySession) error
	InsertHistory(ctx context.Context, entry models.LearningHistoryEntry) (int64, error)
	HistoryForSession(ctx context.Context, sessionID int64) ([]models.LearningHistoryEntry, error)
}
