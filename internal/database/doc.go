// Package database provides the embedded SQLite datastore.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── books/           # Owner-scoped book CRUD
//	├── users/           # Account storage, unique login
//	├── audit/           # Audit event storage and retention
//	└── mongostore/      # The same repositories on MongoDB
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./bookshelf.db", logger)
//
//	booksRepo := books.NewRepository(db.DB)
//	usersRepo := users.NewRepository(db.DB)
//
// # Interface Implementations
//
//   - books.Repository: implements services.BookStore
//   - users.Repository: implements services.UserStore
//   - audit.Repository: implements audit.Store
//
// Repositories report a missing row as apperr.ErrNotFound and a unique
// constraint violation as apperr.ErrConflict. Any other failure is
// wrapped with apperr.Internal.
package database
