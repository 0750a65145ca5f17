package mongostore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestUserRepository_CreateUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := New(mt.DB).Users()
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &entities.User{Email: "ann@example.com", Login: "ann@example.com", PasswordHash: "hash"}
		require.NoError(t, repo.CreateUser(context.Background(), user))
		_, err := primitive.ObjectIDFromHex(user.ID)
		assert.NoError(t, err)

		inserted := mt.GetStartedEvent().Command.Lookup("documents", "0").Document()
		assert.Equal(t, "ann@example.com", inserted.Lookup("login").StringValue())
		assert.Equal(t, "hash", inserted.Lookup("password").StringValue())
	})

	mt.Run("duplicate login", func(mt *mtest.T) {
		repo := New(mt.DB).Users()
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: bookshelf.users index: login_1",
		}))

		err := repo.CreateUser(context.Background(), &entities.User{Login: "ann@example.com"})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestUserRepository_GetUserByLogin(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := New(mt.DB).Users()
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bookshelf.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Ann"},
			{Key: "email", Value: "ann@example.com"},
			{Key: "login", Value: "ann@example.com"},
			{Key: "password", Value: "hash"},
			{Key: "created_at", Value: time.Now().UTC()},
		}))

		user, err := repo.GetUserByLogin(context.Background(), "ann@example.com")
		require.NoError(t, err)
		assert.Equal(t, id.Hex(), user.ID)
		assert.Equal(t, "Ann", user.Name)
		assert.Equal(t, "hash", user.PasswordHash)
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := New(mt.DB).Users()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bookshelf.users", mtest.FirstBatch))

		_, err := repo.GetUserByLogin(context.Background(), "bob@example.com")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
