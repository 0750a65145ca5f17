package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Database is the embedded SQLite datastore.
type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string, log *slog.Logger) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Book{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := backfillBookKeys(db); err != nil {
		return nil, fmt.Errorf("failed to backfill book search keys: %w", err)
	}

	log.Info("database initialized", "driver", "sqlite", "path", dbPath)

	return &Database{DB: db}, nil
}

// backfillBookKeys fills the search keys of rows written before the
// key columns existed.
func backfillBookKeys(db *gorm.DB) error {
	var stale []entities.Book
	return db.Where("title_key IS NULL OR title_key = ''").
		FindInBatches(&stale, 200, func(_ *gorm.DB, _ int) error {
			for i := range stale {
				book := &stale[i]
				err := db.Model(book).UpdateColumns(map[string]any{
					"title_key":  strings.ToLower(book.Title),
					"author_key": strings.ToLower(book.Author),
				}).Error
				if err != nil {
					return err
				}
			}
			return nil
		}).Error
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// dsn enables WAL and a busy timeout so request writes and async audit
// writes can share a file database.
func dsn(dbPath string) string {
	if dbPath == ":memory:" || strings.Contains(dbPath, "?") {
		return dbPath
	}
	return dbPath + "?_journal=WAL&_busy_timeout=5000"
}
