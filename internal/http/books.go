package http

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// BooksController serves the /books resource. Every handler runs behind
// the auth middleware and scopes its work to the authenticated user.
type BooksController struct {
	books BookOperations
}

func NewBooksController(books BookOperations) *BooksController {
	return &BooksController{books: books}
}

// Create handles POST /books.
func (bc *BooksController) Create(c *gin.Context) {
	var in validation.BookInput
	if !bindBody(c, &in) {
		return
	}
	res, err := bc.books.Create(c.Request.Context(), in, auth.GetUserID(c))
	respondResult(c, res, err)
}

// List handles GET /books?title=&author=&genre=&status=
func (bc *BooksController) List(c *gin.Context) {
	filter := entities.BookFilter{
		Title:  c.Query("title"),
		Author: c.Query("author"),
		Genre:  c.Query("genre"),
		Status: c.Query("status"),
	}
	res, err := bc.books.List(c.Request.Context(), filter, auth.GetUserID(c))
	respondResult(c, res, err)
}

// Get handles GET /books/:id
func (bc *BooksController) Get(c *gin.Context) {
	res, err := bc.books.Get(c.Request.Context(), c.Param("id"), auth.GetUserID(c))
	respondResult(c, res, err)
}

// Update handles PUT /books/:id
func (bc *BooksController) Update(c *gin.Context) {
	var in validation.BookInput
	if !bindBody(c, &in) {
		return
	}
	res, err := bc.books.Update(c.Request.Context(), c.Param("id"), auth.GetUserID(c), in)
	respondResult(c, res, err)
}

// Patch handles PATCH /books/:id. The body is kept raw so the validator
// can tell absent fields from explicit nulls and reject unknown ones.
func (bc *BooksController) Patch(c *gin.Context) {
	var raw map[string]json.RawMessage
	if !bindBody(c, &raw) {
		return
	}
	res, err := bc.books.Patch(c.Request.Context(), c.Param("id"), auth.GetUserID(c), raw)
	respondResult(c, res, err)
}

// Delete handles DELETE /books/:id
func (bc *BooksController) Delete(c *gin.Context) {
	res, err := bc.books.Delete(c.Request.Context(), c.Param("id"), auth.GetUserID(c))
	respondResult(c, res, err)
}
