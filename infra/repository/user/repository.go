// Package user is the gorm implementation of the user repository.
package user

import (
	"context"

	"finbook/infra"
	"finbook/infra/repository/model"
	"finbook/pkg/dto"
	repo "finbook/pkg/repository/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates the user repository over the given session.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.UserCreate) error {
	u := model.User{
		ID:       create.ID,
		Username: create.Username,
		Email:    create.Email,
		Password: create.Password,
		Role:     create.Role,
	}
	return infra.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&u).Error
	})
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	var u model.User
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) GetByIdentity(ctx context.Context, identity string) (*dto.UserRead, error) {
	var u model.User
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			First(&u, "username = ? OR email = ?", identity, identity).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func mapModelToDTO(u *model.User) *dto.UserRead {
	return &dto.UserRead{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
