// Package account is the gorm implementation of the account repository.
package account

import (
	"context"
	"time"

	"finbook/infra"
	"finbook/infra/repository/model"
	"finbook/pkg/dto"
	repo "finbook/pkg/repository/account"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates the account repository over the given session.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.AccountCreate) error {
	acct := model.Account{
		ID:          create.ID,
		UserID:      create.UserID,
		NamespaceID: create.NamespaceID,
		Name:        create.Name,
		Balance:     create.BalanceMinor,
		Currency:    create.Currency,
	}
	return infra.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&acct).Error
	})
}

func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.AccountRead, error) {
	var acct model.Account
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			First(&acct, "id = ? AND user_id = ?", id, userID).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&acct), nil
}

// GetForUpdate takes a SELECT ... FOR UPDATE row lock. The lock lives until
// the surrounding transaction commits or rolls back.
func (r *repository) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*dto.AccountRead, error) {
	var acct model.Account
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&acct, "id = ? AND user_id = ?", id, userID).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&acct), nil
}

func (r *repository) GetByName(ctx context.Context, userID, namespaceID uuid.UUID, name string) (*dto.AccountRead, error) {
	var acct model.Account
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			First(&acct, "user_id = ? AND namespace_id = ? AND name = ?", userID, namespaceID, name).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&acct), nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	var accts []model.Account
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("name ASC").
			Find(&accts).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelsToDTOs(accts), nil
}

func (r *repository) ListByNamespace(ctx context.Context, userID, namespaceID uuid.UUID) ([]*dto.AccountRead, error) {
	var accts []model.Account
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ? AND namespace_id = ?", userID, namespaceID).
			Order("name ASC").
			Find(&accts).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelsToDTOs(accts), nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.BalanceMinor != nil {
		updates["balance"] = *update.BalanceMinor
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()
	return infra.WrapError(func() error {
		res := r.db.WithContext(ctx).
			Model(&model.Account{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *repository) UpdateBalance(ctx context.Context, id uuid.UUID, balanceMinor int64) error {
	return r.Update(ctx, id, dto.AccountUpdate{BalanceMinor: &balanceMinor})
}

// Delete removes the account row. The SET NULL constraint on transactions
// nulls the weak references to this account.
func (r *repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return infra.WrapError(func() error {
		res := r.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			Delete(&model.Account{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func mapModelToDTO(acct *model.Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:           acct.ID,
		UserID:       acct.UserID,
		NamespaceID:  acct.NamespaceID,
		Name:         acct.Name,
		Currency:     acct.Currency,
		BalanceMinor: acct.Balance,
		CreatedAt:    acct.CreatedAt,
		UpdatedAt:    acct.UpdatedAt,
	}
}

func mapModelsToDTOs(accts []model.Account) []*dto.AccountRead {
	result := make([]*dto.AccountRead, 0, len(accts))
	for i := range accts {
		result = append(result, mapModelToDTO(&accts[i]))
	}
	return result
}
