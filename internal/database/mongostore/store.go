// Package mongostore implements the book, user and audit repositories on
// MongoDB. It is the default datastore.
//
// # Usage
//
//	store, err := mongostore.Connect(ctx, cfg.Mongo, logger)
//	defer store.Close(context.Background())
//
//	books := store.Books()   // services.BookStore
//	users := store.Users()   // services.UserStore
//	events := store.Audit()  // audit.Store
package mongostore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mrlokans/bookshelf/internal/config"
)

const (
	booksCollection = "books"
	usersCollection = "users"
	auditCollection = "audit_events"
)

const connectTimeout = 10 * time.Second

// Store owns the client and hands out repositories bound to one database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB, verifies the connection and creates the indexes
// the repositories rely on.
func Connect(ctx context.Context, cfg config.Mongo, log *slog.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	store := New(client.Database(cfg.DBName))
	if err := store.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info("database initialized", "driver", "mongo", "database", cfg.DBName)
	return store, nil
}

// New wraps an existing database handle.
func New(db *mongo.Database) *Store {
	return &Store{client: db.Client(), db: db}
}

// EnsureIndexes creates the unique login index and the lookup indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "login", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		booksCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}}},
		},
		auditCollection: {
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
	}

	for _, name := range []string{usersCollection, booksCollection, auditCollection} {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, indexes[name]); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Books() *BookRepository {
	return &BookRepository{coll: s.db.Collection(booksCollection)}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{coll: s.db.Collection(usersCollection)}
}

func (s *Store) Audit() *AuditRepository {
	return &AuditRepository{coll: s.db.Collection(auditCollection)}
}
