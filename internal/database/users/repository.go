// Package users provides account storage on SQLite.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByLogin(ctx, "reader@example.com")
package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

var _ services.UserStore = (*Repository)(nil)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts the user with a fresh id. A taken login is reported
// as apperr.ErrConflict.
func (r *Repository) CreateUser(ctx context.Context, user *entities.User) error {
	user.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.ErrConflict
		}
		return apperr.Internal("users.create", err)
	}
	return nil
}

func (r *Repository) GetUserByLogin(ctx context.Context, login string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("login = ?", login).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, apperr.Internal("users.get", err)
	}
	return &user, nil
}
