// Package transaction is the gorm implementation of the ledger repository.
// Rows are append-only; there is no update or delete path.
package transaction

import (
	"context"

	"finbook/infra"
	"finbook/infra/repository/model"
	"finbook/pkg/dto"
	repo "finbook/pkg/repository/transaction"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates the ledger repository over the given session.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.TransactionCreate) error {
	row := model.Transaction{
		ID:                   create.ID,
		UserID:               create.UserID,
		Type:                 create.Type,
		Amount:               create.AmountMinor,
		Currency:             create.Currency,
		DestinationAmount:    create.DestinationAmountMinor,
		DestinationCurrency:  create.DestinationCurrency,
		SourceRate:           create.SourceRate,
		DestinationRate:      create.DestinationRate,
		SourceAccountID:      create.SourceAccountID,
		DestinationAccountID: create.DestinationAccountID,
		Description:          create.Description,
	}
	return infra.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.TransactionRead, error) {
	var row model.Transaction
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			First(&row, "id = ? AND user_id = ?", id, userID).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&row), nil
}

// List returns matching rows newest first. The id tie-break keeps the order
// stable when rows share a created_at timestamp.
func (r *repository) List(ctx context.Context, userID uuid.UUID, filter dto.TransactionFilter) ([]*dto.TransactionRead, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if filter.AccountID != nil {
		q = q.Where("source_account_id = ? OR destination_account_id = ?",
			*filter.AccountID, *filter.AccountID)
	}

	var rows []model.Transaction
	err := infra.WrapError(func() error {
		return q.Order("created_at DESC, id DESC").Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	result := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func mapModelToDTO(row *model.Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:                     row.ID,
		UserID:                 row.UserID,
		Type:                   row.Type,
		AmountMinor:            row.Amount,
		Currency:               row.Currency,
		DestinationAmountMinor: row.DestinationAmount,
		DestinationCurrency:    row.DestinationCurrency,
		SourceRate:             row.SourceRate,
		DestinationRate:        row.DestinationRate,
		SourceAccountID:        row.SourceAccountID,
		DestinationAccountID:   row.DestinationAccountID,
		Description:            row.Description,
		CreatedAt:              row.CreatedAt,
	}
}
