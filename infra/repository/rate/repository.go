// Package rate is the gorm implementation of the conversion-rate repository.
package rate

import (
	"context"
	"time"

	"finbook/infra"
	"finbook/infra/repository/model"
	"finbook/pkg/dto"
	repo "finbook/pkg/repository/rate"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates the conversion-rate repository over the given session.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.RateCreate) error {
	row := model.ConversionRate{
		ID:     create.ID,
		UserID: create.UserID,
		From:   create.From,
		To:     create.To,
		Rate:   create.Rate,
	}
	return infra.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&row).Error
	})
}

func (r *repository) Get(ctx context.Context, userID uuid.UUID, from, to string) (*dto.RateRead, error) {
	var row model.ConversionRate
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			First(&row, "user_id = ? AND from_currency = ? AND to_currency = ?", userID, from, to).Error
	})
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&row), nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.RateRead, error) {
	var rows []model.ConversionRate
	err := infra.WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("from_currency ASC, to_currency ASC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	result := make([]*dto.RateRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) Update(ctx context.Context, userID uuid.UUID, from, to string, update dto.RateUpdate) error {
	return infra.WrapError(func() error {
		res := r.db.WithContext(ctx).
			Model(&model.ConversionRate{}).
			Where("user_id = ? AND from_currency = ? AND to_currency = ?", userID, from, to).
			Updates(map[string]any{"rate": update.Rate, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, userID uuid.UUID, from, to string) error {
	return infra.WrapError(func() error {
		res := r.db.WithContext(ctx).
			Where("user_id = ? AND from_currency = ? AND to_currency = ?", userID, from, to).
			Delete(&model.ConversionRate{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func mapModelToDTO(row *model.ConversionRate) *dto.RateRead {
	return &dto.RateRead{
		ID:        row.ID,
		UserID:    row.UserID,
		From:      row.From,
		To:        row.To,
		Rate:      row.Rate,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
