// Package repository holds the gorm-backed stores, one per entity.
// Every method translates driver errors into apperr kinds.
package repository

import (
	"errors"

	"textile-backend/internal/apperr"

	"gorm.io/gorm"
)

func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(entity + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Duplicate(entity + " already exists")
	}
	return apperr.Storage(entity+" storage failure", err)
}
