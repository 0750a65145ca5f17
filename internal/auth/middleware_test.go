package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(issuer *TokenIssuer) *gin.Engine {
	router := gin.New()
	// Renders attached errors the way the HTTP layer's error handler does.
	router.Use(func(c *gin.Context) {
		c.Next()
		if last := c.Errors.Last(); last != nil {
			c.JSON(apperr.Status(last.Err), gin.H{
				"message": apperr.PublicMessage(last.Err),
				"kind":    string(apperr.KindOf(last.Err)),
			})
		}
	})
	router.Use(NewMiddleware(issuer, logging.Discard()).Handler())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	return router
}

func TestMiddleware_ValidToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	router := setupRouter(issuer)

	token, err := issuer.GenerateToken("user-42")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "user-42", body["user_id"])
}

func TestMiddleware_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	router := setupRouter(issuer)

	expiredIssuer := NewTokenIssuer("secret", time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	expired, err := expiredIssuer.GenerateToken("user-42")
	require.NoError(t, err)

	foreign, err := NewTokenIssuer("other", time.Hour).GenerateToken("user-42")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{name: "missing header", header: "", message: "Access denied. No token provided."},
		{name: "wrong scheme", header: "Basic abc", message: "Access denied. No token provided."},
		{name: "empty bearer", header: "Bearer ", message: "Access denied. No token provided."},
		{name: "garbage", header: "Bearer abc.def.ghi", message: "Invalid token."},
		{name: "wrong secret", header: "Bearer " + foreign, message: "Invalid token."},
		{name: "expired", header: "Bearer " + expired, message: "Token expired."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, string(apperr.KindAuthentication), body["kind"])
		})
	}
}

func TestGetUserID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", GetUserID(c))
}
