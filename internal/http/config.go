package http

import (
	"log/slog"

	"github.com/mrlokans/bookshelf/internal/auth"
)

// RouterConfig contains all dependencies needed to build the router.
type RouterConfig struct {
	Books          BookOperations
	Accounts       AccountOperations
	AuthMiddleware *auth.Middleware

	// Datastore is pinged by /health; nil reports "not configured".
	Datastore     Pinger
	DatastoreName string

	Logger  *slog.Logger
	Version string
}
