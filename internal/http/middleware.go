package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/apperr"
)

var errPanic = errors.New("panic")

// RequestLogger logs one line per request after it has been served.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// Recovery turns panics into a JSON 500.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", fmt.Sprint(recovered),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			MessageResponse{Message: apperr.PublicMessage(errPanic)})
	})
}

// ErrorHandler maps the last error attached by a handler to a JSON
// response. Internal errors are logged with their operation and answered
// with a generic message.
func ErrorHandler(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.Status(err)
		if status >= http.StatusInternalServerError {
			op := ""
			var appErr *apperr.Error
			if errors.As(err, &appErr) {
				op = appErr.Op
			}
			log.Error("request failed", "op", op, "path", c.Request.URL.Path, "error", err)
		}
		c.JSON(status, MessageResponse{Message: apperr.PublicMessage(err)})
	}
}

// notFound answers requests no route matched.
func notFound(c *gin.Context) {
	respondMessage(c, http.StatusNotFound,
		fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path))
}
