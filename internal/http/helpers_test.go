package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondResult_WritesEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondResult(c, services.NewResult(http.StatusCreated, "Created.", map[string]string{"id": "1"}), nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Created.","data":{"id":"1"}}`, w.Body.String())
}

func TestRespondResult_OmitsNilData(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondResult(c, services.NewResult(http.StatusOK, "Book deleted successfully.", nil), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Book deleted successfully."}`, w.Body.String())
}

func TestRespondResult_AttachesError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondResult(c, nil, apperr.Internal("books.list", errors.New("boom")))

	require.Len(t, c.Errors, 1)
	assert.False(t, c.Writer.Written())
}

func newBodyContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBindBody(t *testing.T) {
	t.Run("valid object", func(t *testing.T) {
		c, _ := newBodyContext(`{"message":"hi"}`)
		var out MessageResponse
		assert.True(t, bindBody(c, &out))
		assert.Equal(t, "hi", out.Message)
	})

	t.Run("empty body is allowed", func(t *testing.T) {
		c, w := newBodyContext("")
		var out MessageResponse
		assert.True(t, bindBody(c, &out))
		assert.Empty(t, out.Message)
		assert.False(t, c.Writer.Written())
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		c, w := newBodyContext(`{"message":`)
		var out MessageResponse
		assert.False(t, bindBody(c, &out))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Request body must be valid JSON."}`, w.Body.String())
	})
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"internal", apperr.Internal("books.create", errors.New("disk full")), http.StatusInternalServerError, "Internal Server Error."},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error."},
		{"not found", apperr.New(apperr.KindNotFound, "books.get", "Book not found."), http.StatusNotFound, "Book not found."},
		{"conflict", apperr.ErrConflict, http.StatusConflict, "already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorHandler(logging.Discard()))
			router.GET("/", func(c *gin.Context) { _ = c.Error(tt.err) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, `{"message":"`+tt.message+`"}`, w.Body.String())
		})
	}
}

func TestErrorHandler_KeepsWrittenResponse(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(logging.Discard()))
	router.GET("/", func(c *gin.Context) {
		_ = c.Error(errors.New("logged elsewhere"))
		c.JSON(http.StatusAccepted, MessageResponse{Message: "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(logging.Discard()))
	router.GET("/", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error."}`, w.Body.String())
}
