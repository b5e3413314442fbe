package repository

import (
	"context"

	"github.com/vytor/vocabflash/internal/models"
)

// WordSource is the read-only view of the word catalogue used by the
// study and exam engines.
type WordSource interface {
	Get(ctx context.Context, id int64) (*models.Word, error)
	ListAll(ctx context.Context) ([]models.Word, error)
	ListFavorites(ctx context.Context) ([]models.Word, error)
}
