package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/vocabflash/internal/logger"
)

// BackupQueue is the part of the job queue the scheduler feeds.
type BackupQueue interface {
	EnqueueScheduledBackup() error
}

// Scheduler runs periodic maintenance tasks
type Scheduler struct {
	scheduler *gocron.Scheduler
	queue     BackupQueue
	log       *logger.Logger
}

// New creates a scheduler whose jobs fire in loc.
func New(queue BackupQueue, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		queue:     queue,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Start schedules a backup every interval, the first one interval from
// now, and returns without blocking.
func (s *Scheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("backup interval must be positive, got %v", interval)
	}
	if _, err := s.scheduler.Every(interval).WaitForSchedule().Do(s.enqueueBackup); err != nil {
		return fmt.Errorf("schedule backup: %w", err)
	}
	s.log.Info("scheduled backups every %v", interval)
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) enqueueBackup() {
	if err := s.queue.EnqueueScheduledBackup(); err != nil {
		s.log.Warn("failed to enqueue scheduled backup: %v", err)
	}
}
