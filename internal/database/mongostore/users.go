package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

var _ services.UserStore = (*UserRepository)(nil)

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name,omitempty"`
	Email        string             `bson:"email,omitempty"`
	Username     string             `bson:"username,omitempty"`
	Login        string             `bson:"login"`
	PasswordHash string             `bson:"password"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d userDocument) entity() *entities.User {
	return &entities.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		Username:     d.Username,
		Login:        d.Login,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

type UserRepository struct {
	coll *mongo.Collection
}

// CreateUser inserts the user. The unique login index turns a taken login
// into apperr.ErrConflict.
func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Name:         user.Name,
		Email:        user.Email,
		Username:     user.Username,
		Login:        user.Login,
		PasswordHash: user.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.ErrConflict
		}
		return apperr.Internal("users.create", err)
	}

	user.ID = doc.ID.Hex()
	user.CreatedAt = doc.CreatedAt
	return nil
}

func (r *UserRepository) GetUserByLogin(ctx context.Context, login string) (*entities.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"login": login}).Decode(&doc); err != nil {
		return nil, notFoundOr("users.get", err)
	}
	return doc.entity(), nil
}
