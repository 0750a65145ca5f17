package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/services"
)

const msgInvalidBody = "Request body must be valid JSON."

// MessageResponse is the body of every response that carries no data.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondMessage sends {message} with the given status.
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

// respondResult writes a service result, or hands err to the error
// middleware when the service failed unexpectedly.
func respondResult(c *gin.Context, res *services.Result, err error) {
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(res.Status, res)
}

// bindBody decodes the JSON body into obj. An empty body leaves obj
// untouched so the service reports the missing fields. Returns false after
// responding 400 on malformed input.
func bindBody(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		respondMessage(c, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}
