// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: Owner-scoped book persistence (internal/services/interfaces.go)
//   - UserStore: User lookup and creation (internal/services/interfaces.go)
//   - Store: Audit event persistence (internal/audit/service.go)
//
// Each has two implementations: GORM/SQLite under internal/database/ and
// MongoDB under internal/database/mongostore/. The DATASTORE setting picks
// one at startup (internal/entrypoint/datastore.go).
//
// ## Service Interfaces
//
//   - BookOperations, AccountOperations: what the controllers call (internal/http/stores.go)
//   - AuditLogger: fire-and-forget audit recording (internal/services/interfaces.go)
//   - TokenParser: bearer token verification (internal/auth/middleware.go)
//   - EventPruner: audit retention (internal/scheduler/audit_cleanup.go)
//   - Pinger: datastore health (internal/http/stores.go)
//
// # Adding a New Datastore
//
//  1. Create a sub-package under internal/database/ with repositories for
//     books, users and audit events.
//
//  2. Return apperr.ErrNotFound when an owner-scoped lookup matches nothing
//     and apperr.ErrConflict on a duplicate login.
//
//  3. Add compile-time checks to checks.go:
//
//     var _ services.BookStore = (*mystore.BookRepository)(nil)
//
//  4. Add a case to openDatastore in internal/entrypoint/datastore.go.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
