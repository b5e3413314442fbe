package repository

import (
	"context"

	"github.com/vytor/vocabflash/internal/models"
)

// StatisticsRepository handles per-word statistics rows
type StatisticsRepository interface {
	Get(ctx context.Context, wordID int64) (*models.WordStatistics, error)
	GetMany(ctx context.Context, wordIDs []int64) (map[int64]models.WordStatistics, error)
	Initialize(ctx context.Context, wordID int64) error
	// Update runs fn against the current row (zeroed when absent) inside one
	// transaction and writes the result back.
	Update(ctx context.Context, wordID int64, fn func(*models.WordStatistics)) (*models.WordStatistics, error)
}
