package auth

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/apperr"
)

// ContextKeyUserID is the gin context key holding the authenticated user id.
const ContextKeyUserID = "auth_user_id"

// TokenParser resolves a bearer token to a user id.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// Middleware rejects requests without a valid bearer token.
type Middleware struct {
	tokens TokenParser
	log    *slog.Logger
}

func NewMiddleware(tokens TokenParser, log *slog.Logger) *Middleware {
	return &Middleware{tokens: tokens, log: log}
}

// Handler returns a gin middleware that stores the token subject under
// ContextKeyUserID or aborts with an authentication error (401).
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			deny(c, "Access denied. No token provided.")
			return
		}

		userID, err := m.tokens.ParseToken(token)
		if err != nil {
			message := "Invalid token."
			if errors.Is(err, ErrTokenExpired) {
				message = "Token expired."
			}
			m.log.Debug("rejected bearer token", "path", c.Request.URL.Path, "error", err)
			deny(c, message)
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// deny attaches an authentication error for the error handler to render
// and stops the chain.
func deny(c *gin.Context, message string) {
	_ = c.Error(apperr.New(apperr.KindAuthentication, "auth.middleware", message))
	c.Abort()
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetUserID retrieves the authenticated user's id from the context.
// Returns "" when the request did not pass through the middleware.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(string); ok {
			return userID
		}
	}
	return ""
}
