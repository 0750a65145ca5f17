package services

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookStore persists books. Every by-id method is scoped to an owner so
// the ownership check happens inside the same datastore query as the
// lookup; a book owned by someone else is reported as apperr.ErrNotFound.
type BookStore interface {
	// ValidID reports whether id is well formed for this datastore.
	ValidID(id string) bool
	// CreateBook assigns book.ID and the timestamps.
	CreateBook(ctx context.Context, book *entities.Book) error
	ListBooks(ctx context.Context, ownerID string, filter entities.BookFilter) ([]entities.Book, error)
	GetOwnedBook(ctx context.Context, id, ownerID string) (*entities.Book, error)
	ReplaceOwnedBook(ctx context.Context, id, ownerID string, book *entities.Book) (*entities.Book, error)
	UpdateOwnedBook(ctx context.Context, id, ownerID string, fields entities.BookFields) (*entities.Book, error)
	DeleteOwnedBook(ctx context.Context, id, ownerID string) error
}

// UserStore persists accounts. CreateUser reports a taken login as
// apperr.ErrConflict; GetUserByLogin reports a miss as apperr.ErrNotFound.
type UserStore interface {
	CreateUser(ctx context.Context, user *entities.User) error
	GetUserByLogin(ctx context.Context, login string) (*entities.User, error)
}

// AuditLogger records events without blocking the caller.
type AuditLogger interface {
	LogBook(userID string, action entities.AuditAction, bookID string)
	LogAuth(userID string, action entities.AuditAction, success bool)
}

type noopAuditLogger struct{}

func (noopAuditLogger) LogBook(string, entities.AuditAction, string) {}
func (noopAuditLogger) LogAuth(string, entities.AuditAction, bool)   {}

// NoopAuditLogger discards every event.
var NoopAuditLogger AuditLogger = noopAuditLogger{}
