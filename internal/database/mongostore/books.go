package mongostore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

var _ services.BookStore = (*BookRepository)(nil)

type bookDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Owner       string             `bson:"owner"`
	Title       string             `bson:"title"`
	Author      string             `bson:"author"`
	Description string             `bson:"description"`
	Genre       []string           `bson:"genre"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d bookDocument) entity() *entities.Book {
	return &entities.Book{
		ID:          d.ID.Hex(),
		OwnerID:     d.Owner,
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		Genre:       d.Genre,
		Status:      entities.BookStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type BookRepository struct {
	coll *mongo.Collection
}

// ValidID reports whether id is a 24-character hex ObjectID.
func (r *BookRepository) ValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

func (r *BookRepository) CreateBook(ctx context.Context, book *entities.Book) error {
	now := time.Now().UTC()
	doc := bookDocument{
		ID:          primitive.NewObjectID(),
		Owner:       book.OwnerID,
		Title:       book.Title,
		Author:      book.Author,
		Description: book.Description,
		Genre:       book.Genre,
		Status:      string(book.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return apperr.Internal("books.create", err)
	}

	book.ID = doc.ID.Hex()
	book.CreatedAt = now
	book.UpdatedAt = now
	return nil
}

// ListBooks returns the owner's books. Title and author match substrings,
// genre matches any element of the stored list; all ignore case.
func (r *BookRepository) ListBooks(ctx context.Context, ownerID string, filter entities.BookFilter) ([]entities.Book, error) {
	query := bson.M{"owner": ownerID}

	if title := strings.TrimSpace(filter.Title); title != "" {
		query["title"] = containsRegex(title)
	}
	if author := strings.TrimSpace(filter.Author); author != "" {
		query["author"] = containsRegex(author)
	}
	if genre := strings.TrimSpace(filter.Genre); genre != "" {
		query["genre"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(genre) + "$", Options: "i"}
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query["status"] = strings.ToLower(status)
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, apperr.Internal("books.list", err)
	}
	defer cursor.Close(ctx)

	var docs []bookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperr.Internal("books.list", err)
	}

	books := make([]entities.Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, *d.entity())
	}
	return books, nil
}

func (r *BookRepository) GetOwnedBook(ctx context.Context, id, ownerID string) (*entities.Book, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, apperr.ErrNotFound
	}

	var doc bookDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFoundOr("books.get", err)
	}
	return doc.entity(), nil
}

// ReplaceOwnedBook overwrites every mutable field. ID, owner and creation
// time are kept.
func (r *BookRepository) ReplaceOwnedBook(ctx context.Context, id, ownerID string, book *entities.Book) (*entities.Book, error) {
	set := bson.M{
		"title":       book.Title,
		"author":      book.Author,
		"description": book.Description,
		"genre":       book.Genre,
		"status":      string(book.Status),
	}
	return r.updateOwned(ctx, id, ownerID, set, "books.update")
}

func (r *BookRepository) UpdateOwnedBook(ctx context.Context, id, ownerID string, fields entities.BookFields) (*entities.Book, error) {
	set := bson.M{}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Author != nil {
		set["author"] = *fields.Author
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Genre != nil {
		set["genre"] = fields.Genre
	}
	if fields.Status != nil {
		set["status"] = string(*fields.Status)
	}
	return r.updateOwned(ctx, id, ownerID, set, "books.patch")
}

// updateOwned applies $set to the owned document and returns the result
// in a single round trip.
func (r *BookRepository) updateOwned(ctx context.Context, id, ownerID string, set bson.M, op string) (*entities.Book, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bookDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		return nil, notFoundOr(op, err)
	}
	return doc.entity(), nil
}

func (r *BookRepository) DeleteOwnedBook(ctx context.Context, id, ownerID string) error {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return apperr.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return apperr.Internal("books.delete", err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func ownedFilter(id, ownerID string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "owner": ownerID}, true
}

func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func notFoundOr(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.ErrNotFound
	}
	return apperr.Internal(op, err)
}
