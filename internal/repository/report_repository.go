package repository

import (
	"context"
	"time"

	"github.com/vytor/vocabflash/internal/models"
)

// ReportRepository serves read-only aggregation queries
type ReportRepository interface {
	SessionsBetween(ctx context.Context, from, to time.Time) ([]models.SessionRow, error)
	MasteryCounts(ctx context.Context) ([]models.MasteryCount, error)
	TopWrong(ctx context.Context, limit int) ([]models.TopWrongWord, error)
}
