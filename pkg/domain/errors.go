// Package domain defines errors shared across all domain packages.
package domain

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when creating a record that already exists.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails.
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a request lacks valid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller's role does not allow the action.
	ErrForbidden = errors.New("forbidden")
)
