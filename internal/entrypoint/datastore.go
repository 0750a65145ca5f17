package entrypoint

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	auditrepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/mongostore"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/services"

	http_controllers "github.com/mrlokans/bookshelf/internal/http"
)

// datastore holds the repositories of the configured driver.
type datastore struct {
	name   string
	books  services.BookStore
	users  services.UserStore
	audit  audit.Store
	pinger http_controllers.Pinger
	close  func(ctx context.Context) error
}

func openDatastore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*datastore, error) {
	switch cfg.Datastore.Driver {
	case config.DriverMongo, "":
		store, err := mongostore.Connect(ctx, cfg.Mongo, log)
		if err != nil {
			return nil, err
		}
		return &datastore{
			name:   string(config.DriverMongo),
			books:  store.Books(),
			users:  store.Users(),
			audit:  store.Audit(),
			pinger: store,
			close:  store.Close,
		}, nil

	case config.DriverSQLite:
		db, err := database.NewDatabase(cfg.Database.Path, log)
		if err != nil {
			return nil, err
		}
		return &datastore{
			name:   string(config.DriverSQLite),
			books:  books.NewRepository(db.DB),
			users:  users.NewRepository(db.DB),
			audit:  auditrepo.NewRepository(db.DB),
			pinger: db,
			close:  func(context.Context) error { return db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unknown datastore %q: use %q or %q",
			cfg.Datastore.Driver, config.DriverMongo, config.DriverSQLite)
	}
}
