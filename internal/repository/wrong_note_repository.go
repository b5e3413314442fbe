package repository

import (
	"context"

	"github.com/vytor/vocabflash/internal/models"
)

// WrongNoteRepository handles the review list of missed words
type WrongNoteRepository interface {
	// Add creates the note or, when one exists, bumps its count and reopens it.
	Add(ctx context.Context, wordID, examID int64) error
	Get(ctx context.Context, wordID int64) (*models.WrongNote, error)
	ListUnresolved(ctx context.Context) ([]models.WrongNoteWithWord, error)
	// Resolve marks an unresolved note resolved. It reports false when there
	// was nothing to resolve.
	Resolve(ctx context.Context, wordID int64) (bool, error)
}
