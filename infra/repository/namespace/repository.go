// Package namespace is the gorm implementation of the namespace repository.
package namespace

import (
	"context"

	"finbook/infra"
	"finbook/infra/repository/model"
	"finbook/pkg/dto"
	repo "finbook/pkg/repository/namespace"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates the namespace repository over the given session.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.NamespaceCreate) error {
	ns := model.Namespace{
		ID:     create.ID,
		UserID: create.UserID,
		Name:   create.Name,
	}
	return infra.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&ns).Error
	})
}

func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.NamespaceRead, error) {
	var ns model.Namespace
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			First(&ns, "id = ? AND user_id = ?", id, userID).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&ns), nil
}

func (r *repository) GetByName(ctx context.Context, userID uuid.UUID, name string) (*dto.NamespaceRead, error) {
	var ns model.Namespace
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			First(&ns, "user_id = ? AND name = ?", userID, name).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&ns), nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.NamespaceRead, error) {
	var namespaces []model.Namespace
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("name ASC").
			Find(&namespaces).Error
	})
	if err != nil {
		return nil, err
	}
	result := make([]*dto.NamespaceRead, 0, len(namespaces))
	for i := range namespaces {
		result = append(result, mapModelToDTO(&namespaces[i]))
	}
	return result, nil
}

// Delete removes the namespace; the CASCADE constraint removes its accounts.
func (r *repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return infra.WrapError(func() error {
		res := r.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			Delete(&model.Namespace{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func mapModelToDTO(ns *model.Namespace) *dto.NamespaceRead {
	return &dto.NamespaceRead{
		ID:        ns.ID,
		UserID:    ns.UserID,
		Name:      ns.Name,
		CreatedAt: ns.CreatedAt,
		UpdatedAt: ns.UpdatedAt,
	}
}
