package jobs

import (
	"time"

	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool      *worker.Pool
	db        worker.Backuper
	settings  worker.SettingsReader
	importer  worker.WordImporter
	backupDir string
	now       func() time.Time
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(
	pool *worker.Pool,
	db worker.Backuper,
	settings worker.SettingsReader,
	importer worker.WordImporter,
	backupDir string,
) *WorkerQueue {
	return &WorkerQueue{
		pool:      pool,
		db:        db,
		settings:  settings,
		importer:  importer,
		backupDir: backupDir,
		now:       time.Now,
	}
}

// EnqueueBackup queues a backup that runs regardless of the
// auto_backup_enabled setting.
func (q *WorkerQueue) EnqueueBackup() error {
	return q.pool.Submit(&worker.BackupJob{
		DB:     q.db,
		Dir:    q.backupDir,
		Manual: true,
		Now:    q.now,
	})
}

// EnqueueScheduledBackup queues a backup that is skipped when automatic
// backups are turned off.
func (q *WorkerQueue) EnqueueScheduledBackup() error {
	return q.pool.Submit(&worker.BackupJob{
		DB:       q.db,
		Settings: q.settings,
		Dir:      q.backupDir,
		Now:      q.now,
	})
}

func (q *WorkerQueue) EnqueueImport(source string, words []models.Word) error {
	logger.Default().WithPrefix("jobs").Debug("queueing import of %d words from %s", len(words), source)
	return q.pool.Submit(&worker.ImportWordsJob{
		Importer: q.importer,
		Source:   source,
		Words:    words,
	})
}
