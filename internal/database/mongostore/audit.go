package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type auditDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id,omitempty"`
	Action     string             `bson:"action"`
	EntityType string             `bson:"entity_type,omitempty"`
	EntityID   string             `bson:"entity_id,omitempty"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
}

type AuditRepository struct {
	coll *mongo.Collection
}

// LogEvent saves an audit event.
func (r *AuditRepository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	doc := auditDocument{
		ID:         primitive.NewObjectID(),
		UserID:     event.UserID,
		Action:     string(event.Action),
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		Status:     string(event.Status),
		CreatedAt:  event.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return apperr.Internal("audit.log", err)
	}
	event.ID = doc.ID.Hex()
	return nil
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *AuditRepository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": olderThan}})
	if err != nil {
		return 0, apperr.Internal("audit.cleanup", err)
	}
	return res.DeletedCount, nil
}
