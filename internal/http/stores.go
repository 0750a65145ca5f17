package http

import (
	"context"
	"encoding/json"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// This file collects the service interfaces the controllers depend on.
// Each is satisfied by a concrete type from services or auth.

// BookOperations is implemented by services.BookService.
type BookOperations interface {
	Create(ctx context.Context, in validation.BookInput, ownerID string) (*services.Result, error)
	List(ctx context.Context, filter entities.BookFilter, ownerID string) (*services.Result, error)
	Get(ctx context.Context, id, ownerID string) (*services.Result, error)
	Update(ctx context.Context, id, ownerID string, in validation.BookInput) (*services.Result, error)
	Patch(ctx context.Context, id, ownerID string, raw map[string]json.RawMessage) (*services.Result, error)
	Delete(ctx context.Context, id, ownerID string) (*services.Result, error)
}

// AccountOperations is implemented by auth.Service.
type AccountOperations interface {
	Register(ctx context.Context, creds auth.Credentials) (*services.Result, error)
	Login(ctx context.Context, creds auth.Credentials) (*services.Result, error)
}

// Pinger reports datastore reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ BookOperations    = (*services.BookService)(nil)
	_ AccountOperations = (*auth.Service)(nil)
)
