package entrypoint

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/logging"
)

func TestOpenDatastore_SQLite(t *testing.T) {
	cfg := &config.Config{
		Datastore: config.Datastore{Driver: config.DriverSQLite},
		Database:  config.Database{Path: filepath.Join(t.TempDir(), "bookshelf.db")},
	}

	store, err := openDatastore(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", store.name)
	assert.NotNil(t, store.books)
	assert.NotNil(t, store.users)
	assert.NotNil(t, store.audit)
	assert.NoError(t, store.pinger.Ping(context.Background()))

	require.NoError(t, store.close(context.Background()))
	assert.Error(t, store.pinger.Ping(context.Background()))
}

func TestOpenDatastore_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Datastore: config.Datastore{Driver: "postgres"}}

	_, err := openDatastore(context.Background(), cfg, logging.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown datastore "postgres"`)
}
