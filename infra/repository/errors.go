// Package repository provides shared helpers for the gorm-backed repositories.
package repository

import (
	"errors"

	"github.com/sevatrust/donation-api/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors so database
// concerns stay inside the infrastructure layer. It traverses the error chain
// since GORM wraps the driver errors it translates.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
		currentErr = errors.Unwrap(currentErr)
	}

	return err
}
