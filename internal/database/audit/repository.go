package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	// SQLite compares timestamps as text, so keep a single zone
	event.CreatedAt = event.CreatedAt.UTC()
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return apperr.Internal("audit.log", err)
	}
	return nil
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", olderThan.UTC()).Delete(&entities.AuditEvent{})
	if result.Error != nil {
		return 0, apperr.Internal("audit.cleanup", result.Error)
	}
	return result.RowsAffected, nil
}
