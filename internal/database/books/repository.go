// Package books provides owner-scoped book storage on SQLite.
//
// # Interface Implementation
//
//	var _ services.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetOwnedBook(ctx, id, ownerID)
package books

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

var _ services.BookStore = (*Repository)(nil)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ValidID reports whether id is a UUID.
func (r *Repository) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	book.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return apperr.Internal("books.create", err)
	}
	return nil
}

// ListBooks returns the owner's books. Title and author match substrings,
// genre matches any element of the stored list; all ignore case.
func (r *Repository) ListBooks(ctx context.Context, ownerID string, filter entities.BookFilter) ([]entities.Book, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	if title := strings.TrimSpace(filter.Title); title != "" {
		query = query.Where(`title_key LIKE ? ESCAPE '\'`, containsPattern(title))
	}
	if author := strings.TrimSpace(filter.Author); author != "" {
		query = query.Where(`author_key LIKE ? ESCAPE '\'`, containsPattern(author))
	}
	if genre := strings.TrimSpace(filter.Genre); genre != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM json_each(books.genre) WHERE LOWER(json_each.value) = ?)",
			strings.ToLower(genre))
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", strings.ToLower(status))
	}

	var books []entities.Book
	if err := query.Find(&books).Error; err != nil {
		return nil, apperr.Internal("books.list", err)
	}
	return books, nil
}

func (r *Repository) GetOwnedBook(ctx context.Context, id, ownerID string) (*entities.Book, error) {
	return getOwned(r.db.WithContext(ctx), id, ownerID, "books.get")
}

// ReplaceOwnedBook overwrites every mutable field. ID, owner and creation
// time are kept.
func (r *Repository) ReplaceOwnedBook(ctx context.Context, id, ownerID string, book *entities.Book) (*entities.Book, error) {
	return r.mutate(ctx, id, ownerID, "books.update", func(stored *entities.Book) {
		stored.Title = book.Title
		stored.Author = book.Author
		stored.Description = book.Description
		stored.Genre = book.Genre
		stored.Status = book.Status
	})
}

func (r *Repository) UpdateOwnedBook(ctx context.Context, id, ownerID string, fields entities.BookFields) (*entities.Book, error) {
	return r.mutate(ctx, id, ownerID, "books.patch", fields.Apply)
}

// mutate loads the owned row and saves it back inside one transaction.
func (r *Repository) mutate(ctx context.Context, id, ownerID, op string, apply func(*entities.Book)) (*entities.Book, error) {
	var updated *entities.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book, err := getOwned(tx, id, ownerID, op)
		if err != nil {
			return err
		}
		apply(book)
		if err := tx.Save(book).Error; err != nil {
			return apperr.Internal(op, err)
		}
		updated = book
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) DeleteOwnedBook(ctx context.Context, id, ownerID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&entities.Book{})
	if result.Error != nil {
		return apperr.Internal("books.delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func getOwned(db *gorm.DB, id, ownerID, op string) (*entities.Book, error) {
	var book entities.Book
	err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, apperr.Internal(op, err)
	}
	return &book, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, lowercased.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
