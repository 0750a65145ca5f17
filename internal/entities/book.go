package entities

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type BookStatus string

const (
	BookStatusAvailable BookStatus = "available"
	BookStatusBorrowed  BookStatus = "borrowed"
	BookStatusReading   BookStatus = "reading"
	BookStatusFinished  BookStatus = "finished"
	BookStatusWishlist  BookStatus = "wishlist"
)

// DefaultBookStatus is assigned when a book is written without a status.
const DefaultBookStatus = BookStatusAvailable

// BookStatuses lists every allowed status value.
var BookStatuses = []string{
	string(BookStatusAvailable),
	string(BookStatusBorrowed),
	string(BookStatusReading),
	string(BookStatusFinished),
	string(BookStatusWishlist),
}

// Genres lists every allowed genre, in its canonical spelling.
var Genres = []string{
	"Fantasy",
	"Sci-Fi",
	"Mystery",
	"Thriller",
	"Romance",
	"Horror",
	"Historical Fiction",
	"Literary Fiction",
	"Non-Fiction",
	"Biography",
	"History",
	"Science",
	"Philosophy",
	"Poetry",
	"Drama",
	"Adventure",
	"Young Adult",
	"Children",
	"Classic",
	"Self-Help",
}

// Book is a single book on a user's shelf. OwnerID is set once, from the
// authenticated caller, and never reassigned.
type Book struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string     `gorm:"index;size:36;not null" json:"owner"`
	Title       string     `gorm:"size:512;not null" json:"title"`
	Author      string     `gorm:"size:256;not null" json:"author"`
	Description string     `gorm:"type:text" json:"description"`
	Genre       []string   `gorm:"serializer:json;type:text;not null" json:"genre"`
	Status      BookStatus `gorm:"size:20;index" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Search keys. SQLite's LOWER only folds ASCII, so folding happens here.
	TitleKey  string `gorm:"size:512" json:"-"`
	AuthorKey string `gorm:"size:256" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// BeforeSave refreshes the search keys on every create and save.
func (b *Book) BeforeSave(*gorm.DB) error {
	b.TitleKey = strings.ToLower(b.Title)
	b.AuthorKey = strings.ToLower(b.Author)
	return nil
}

// BookFilter narrows a list query. Empty fields are ignored.
// Title and Author match case-insensitive substrings; Genre and Status
// match case-insensitive whole values.
type BookFilter struct {
	Title  string
	Author string
	Genre  string
	Status string
}

// BookFields holds the mutable fields of a book. A nil pointer means the
// field is left untouched by a partial update.
type BookFields struct {
	Title       *string
	Author      *string
	Description *string
	Genre       []string
	Status      *BookStatus
}

// Apply merges the set fields onto b.
func (f BookFields) Apply(b *Book) {
	if f.Title != nil {
		b.Title = *f.Title
	}
	if f.Author != nil {
		b.Author = *f.Author
	}
	if f.Description != nil {
		b.Description = *f.Description
	}
	if f.Genre != nil {
		b.Genre = append([]string(nil), f.Genre...)
	}
	if f.Status != nil {
		b.Status = *f.Status
	}
}
