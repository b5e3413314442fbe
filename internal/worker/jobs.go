package worker

import (
	"context"
	"time"

	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
)

// BackupJob writes a copy of the database into Dir. Scheduled runs honour
// the auto_backup_enabled setting; manual runs always write.
type BackupJob struct {
	DB       Backuper
	Settings SettingsReader
	Dir      string
	Manual   bool
	Now      func() time.Time
}

func (j *BackupJob) Name() string { return "backup" }

func (j *BackupJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("manual", j.Manual)

	if !j.Manual && j.Settings != nil && !j.Settings.Bool(ctx, models.SettingAutoBackupEnabled, true) {
		log.Info("automatic backups disabled, skipping")
		return nil
	}

	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	path, err := j.DB.Backup(ctx, j.Dir, now())
	if err != nil {
		log.Error("backup failed: %v", err)
		return err
	}
	log.Info("backup written: %s", path)
	return nil
}

// ImportWordsJob adds a batch of decoded words to the catalogue.
type ImportWordsJob struct {
	Importer WordImporter
	Source   string
	Words    []models.Word
}

func (j *ImportWordsJob) Name() string { return "import_words" }

func (j *ImportWordsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"source": j.Source,
		"rows":   len(j.Words),
	})
	log.Info("starting background import")

	res, err := j.Importer.Import(ctx, j.Words)
	if err != nil {
		log.Error("import failed: %v", err)
		return err
	}
	for _, msg := range res.Errors {
		log.Warn("rejected %s", msg)
	}
	log.Info("imported words: created=%d, skipped=%d, errors=%d", res.Created, res.Skipped, len(res.Errors))
	return nil
}
