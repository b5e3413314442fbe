package jobs

import "github.com/vytor/vocabflash/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueBackup() error
	EnqueueImport(source string, words []models.Word) error
}
