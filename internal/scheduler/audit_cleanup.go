package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// runTimeout bounds a single cleanup run.
const runTimeout = time.Minute

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard 5-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// EventPruner deletes audit events older than a retention period.
type EventPruner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// AuditCleanupScheduler periodically removes expired audit events.
type AuditCleanupScheduler struct {
	pruner    EventPruner
	schedule  string
	retention time.Duration
	log       *slog.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func NewAuditCleanupScheduler(pruner EventPruner, schedule string, retentionDays int, log *slog.Logger) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		pruner:    pruner,
		schedule:  schedule,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		log:       log,
		cron:      cron.New(cron.WithParser(cronParser)),
	}
}

// Start schedules the cleanup job. It stops when ctx is cancelled.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.retention <= 0 {
		s.log.Info("audit cleanup scheduler: disabled, retention is not positive")
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.RunNow)
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	s.log.Info("audit cleanup scheduler: started",
		"schedule", s.schedule,
		"retention", s.retention.String(),
		"next_run", s.cron.Entry(entryID).Next)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and halts the scheduler.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	done := s.cron.Stop()
	<-done.Done()

	s.cron.Remove(s.entryID)
	s.isRunning = false

	s.log.Info("audit cleanup scheduler: stopped")
}

// IsRunning returns whether the scheduler is active
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// RunNow performs a cleanup synchronously.
func (s *AuditCleanupScheduler) RunNow() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	started := time.Now()
	deleted, err := s.pruner.DeleteOldEvents(ctx, s.retention)
	if err != nil {
		s.log.Error("audit cleanup failed", "error", err)
		return
	}
	s.log.Info("audit cleanup finished", "deleted", deleted, "duration", time.Since(started).Round(time.Millisecond).String())
}
