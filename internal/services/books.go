package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/validation"
)

const (
	msgBookCreated  = "Book created on database successfully."
	msgBooksFound   = "Books retrieved successfully."
	msgNoBooks      = "No books found."
	msgBookFound    = "Book retrieved successfully."
	msgBookNotFound = "Book not found."
	msgBookUpdated  = "Book updated successfully."
	msgBookDeleted  = "Book deleted successfully."
)

// CreatedBook is the payload of a successful create.
type CreatedBook struct {
	ID string `json:"id"`
}

// BookService implements the book operations for a single authenticated
// owner per call.
type BookService struct {
	store BookStore
	audit AuditLogger
	log   *slog.Logger
}

func NewBookService(store BookStore, audit AuditLogger, log *slog.Logger) *BookService {
	if audit == nil {
		audit = NoopAuditLogger
	}
	return &BookService{store: store, audit: audit, log: log}
}

func (s *BookService) Create(ctx context.Context, in validation.BookInput, ownerID string) (*Result, error) {
	book, verr := validation.ValidateBook(in)
	if verr != nil {
		return invalid(verr), nil
	}
	book.OwnerID = ownerID

	if err := s.store.CreateBook(ctx, book); err != nil {
		return s.storeFailure(err, "books.create", ownerID, "")
	}

	s.log.Info("book created", "op", "books.create", "owner", ownerID, "book_id", book.ID)
	s.audit.LogBook(ownerID, entities.AuditActionBookCreate, book.ID)
	return NewResult(http.StatusCreated, msgBookCreated, CreatedBook{ID: book.ID}), nil
}

// List returns the caller's books narrowed by filter. An empty result is
// a 404 carrying an empty list.
func (s *BookService) List(ctx context.Context, filter entities.BookFilter, ownerID string) (*Result, error) {
	books, err := s.store.ListBooks(ctx, ownerID, filter)
	if err != nil {
		return s.storeFailure(err, "books.list", ownerID, "")
	}
	if len(books) == 0 {
		return NewResult(http.StatusNotFound, msgNoBooks, []entities.Book{}), nil
	}
	return NewResult(http.StatusOK, msgBooksFound, books), nil
}

func (s *BookService) Get(ctx context.Context, id, ownerID string) (*Result, error) {
	if !s.store.ValidID(id) {
		return NewResult(http.StatusNotFound, msgBookNotFound, nil), nil
	}

	book, err := s.store.GetOwnedBook(ctx, id, ownerID)
	if err != nil {
		return s.storeFailure(err, "books.get", ownerID, id)
	}
	return NewResult(http.StatusOK, msgBookFound, book), nil
}

// Update replaces every mutable field, applying the same rules as Create.
func (s *BookService) Update(ctx context.Context, id, ownerID string, in validation.BookInput) (*Result, error) {
	if !s.store.ValidID(id) {
		return NewResult(http.StatusNotFound, msgBookNotFound, nil), nil
	}

	book, verr := validation.ValidateBook(in)
	if verr != nil {
		return invalid(verr), nil
	}

	updated, err := s.store.ReplaceOwnedBook(ctx, id, ownerID, book)
	if err != nil {
		return s.storeFailure(err, "books.update", ownerID, id)
	}

	s.audit.LogBook(ownerID, entities.AuditActionBookUpdate, id)
	return NewResult(http.StatusOK, msgBookUpdated, updated), nil
}

// Patch merges the supplied fields into the stored book.
func (s *BookService) Patch(ctx context.Context, id, ownerID string, raw map[string]json.RawMessage) (*Result, error) {
	if !s.store.ValidID(id) {
		return NewResult(http.StatusNotFound, msgBookNotFound, nil), nil
	}

	fields, verr := validation.ValidatePartialUpdate(raw)
	if verr != nil {
		return invalid(verr), nil
	}

	updated, err := s.store.UpdateOwnedBook(ctx, id, ownerID, fields)
	if err != nil {
		return s.storeFailure(err, "books.patch", ownerID, id)
	}

	s.audit.LogBook(ownerID, entities.AuditActionBookPatch, id)
	return NewResult(http.StatusOK, msgBookUpdated, updated), nil
}

func (s *BookService) Delete(ctx context.Context, id, ownerID string) (*Result, error) {
	if !s.store.ValidID(id) {
		return NewResult(http.StatusNotFound, msgBookNotFound, nil), nil
	}

	if err := s.store.DeleteOwnedBook(ctx, id, ownerID); err != nil {
		return s.storeFailure(err, "books.delete", ownerID, id)
	}

	s.log.Info("book deleted", "op", "books.delete", "owner", ownerID, "book_id", id)
	s.audit.LogBook(ownerID, entities.AuditActionBookDelete, id)
	return NewResult(http.StatusOK, msgBookDeleted, nil), nil
}

func (s *BookService) storeFailure(err error, op, ownerID, id string) (*Result, error) {
	res, err := expected(err, msgBookNotFound)
	if err != nil {
		s.log.Error("book store failure", "op", op, "owner", ownerID, "book_id", id, "error", err)
		return nil, apperr.Internal(op, err)
	}
	return res, nil
}
