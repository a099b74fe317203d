package infra

import (
	"errors"

	"finbook/pkg/domain"

	"gorm.io/gorm"
)

// MapGormErrorToDomain converts gorm errors to domain categories so the
// service layer never imports gorm. The chain is traversed because gorm
// wraps driver errors.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	current := err
	for current != nil {
		switch {
		case errors.Is(current, gorm.ErrDuplicatedKey):
			return domain.ErrConflict
		case errors.Is(current, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		case errors.Is(current, gorm.ErrForeignKeyViolated):
			return domain.ErrValidation
		}
		current = errors.Unwrap(current)
	}

	return err
}

// WrapError runs a gorm operation and maps its error.
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
