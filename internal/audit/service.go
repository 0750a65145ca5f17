package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// writeTimeout bounds a single background write.
const writeTimeout = 5 * time.Second

// Store persists audit events.
type Store interface {
	LogEvent(ctx context.Context, event *entities.AuditEvent) error
	DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error)
}

// Service provides high-level audit logging functionality.
type Service struct {
	store Store
	log   *slog.Logger
	wg    sync.WaitGroup
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return s.store.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
// Failures are logged and otherwise ignored.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := s.Log(ctx, event); err != nil {
			s.log.Warn("failed to log audit event", "action", event.Action, "error", err)
		}
	}()
}

// Wait blocks until every pending background write has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogBook records a successful book mutation.
func (s *Service) LogBook(userID string, action entities.AuditAction, bookID string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:     userID,
		Action:     action,
		EntityType: "book",
		EntityID:   bookID,
		Status:     entities.AuditStatusSuccess,
	})
}

// LogAuth records a registration or login attempt.
func (s *Service) LogAuth(userID string, action entities.AuditAction, success bool) {
	event := &entities.AuditEvent{
		UserID:     userID,
		Action:     action,
		EntityType: "user",
		EntityID:   userID,
		Status:     entities.AuditStatusSuccess,
	}
	if !success {
		event.Status = entities.AuditStatusFailed
	}
	s.LogAsync(event)
}

// DeleteOldEvents removes events older than the retention period.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return s.store.DeleteOldEvents(ctx, cutoff)
}
