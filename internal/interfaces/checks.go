package interfaces

// This file contains compile-time interface implementation checks that
// cross package boundaries. Checks local to a package live next to the
// implementation.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database"
	auditrepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/mongostore"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/services"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookStore implementations
var _ services.BookStore = (*books.Repository)(nil)
var _ services.BookStore = (*mongostore.BookRepository)(nil)

// UserStore implementations
var _ services.UserStore = (*users.Repository)(nil)
var _ services.UserStore = (*mongostore.UserRepository)(nil)

// Audit Store implementations
var _ audit.Store = (*auditrepo.Repository)(nil)
var _ audit.Store = (*mongostore.AuditRepository)(nil)

// Health checks
var _ http.Pinger = (*database.Database)(nil)
var _ http.Pinger = (*mongostore.Store)(nil)

// =============================================================================
// Services
// =============================================================================

var _ services.AuditLogger = (*audit.Service)(nil)
var _ scheduler.EventPruner = (*audit.Service)(nil)
var _ auth.TokenParser = (*auth.TokenIssuer)(nil)
