package worker

import (
	"context"
	"time"

	"github.com/vytor/vocabflash/internal/models"
)

// These narrow interfaces keep the worker package free of service imports.

type Backuper interface {
	Backup(ctx context.Context, dir string, now time.Time) (string, error)
}

type WordImporter interface {
	Import(ctx context.Context, words []models.Word) (*models.ImportResult, error)
}

type SettingsReader interface {
	Bool(ctx context.Context, key string, fallback bool) bool
}
