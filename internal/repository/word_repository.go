package repository

import (
	"context"

	"github.com/vytor/vocabflash/internal/models"
)

// WordRepository handles word catalogue access
type WordRepository interface {
	WordSource
	List(ctx context.Context, filter models.WordFilter) ([]models.Word, error)
	Count(ctx context.Context, filter models.WordFilter) (int, error)
	FindByText(ctx context.Context, source, target string) (*models.Word, error)
	Insert(ctx context.Context, word models.Word) (int64, error)
	Update(ctx context.Context, word models.Word) error
	Delete(ctx context.Context, id int64) error
	SetFavorite(ctx context.Context, id int64, favorite bool) error
}
