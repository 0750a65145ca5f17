package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookFields_Apply(t *testing.T) {
	title := "Dune Messiah"
	status := BookStatusReading
	book := &Book{
		ID:      "1",
		OwnerID: "owner",
		Title:   "Dune",
		Author:  "Herbert",
		Genre:   []string{"Sci-Fi"},
		Status:  BookStatusAvailable,
	}

	BookFields{Title: &title, Status: &status}.Apply(book)

	assert.Equal(t, "Dune Messiah", book.Title)
	assert.Equal(t, "Herbert", book.Author)
	assert.Equal(t, []string{"Sci-Fi"}, book.Genre)
	assert.Equal(t, BookStatusReading, book.Status)
	assert.Equal(t, "owner", book.OwnerID)
}

func TestBook_BeforeSaveFoldsSearchKeys(t *testing.T) {
	book := &Book{Title: "ÉTUDES", Author: "Émile Zola"}

	assert.NoError(t, book.BeforeSave(nil))

	assert.Equal(t, "études", book.TitleKey)
	assert.Equal(t, "émile zola", book.AuthorKey)
}

func TestUser_PublicOmitsSecrets(t *testing.T) {
	u := &User{ID: "1", Name: "Ann", Email: "ann@example.com", Login: "ann@example.com", PasswordHash: "hash"}

	pub := u.Public()

	assert.Equal(t, PublicUser{Name: "Ann", Email: "ann@example.com"}, pub)
}
