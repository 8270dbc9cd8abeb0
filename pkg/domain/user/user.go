// Package user contains the user entity shared by auth, profile and admin flows.
package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sevatrust/donation-api/pkg/utils"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserUnauthorized is returned when credentials do not match.
	ErrUserUnauthorized = errors.New("user unauthorized")
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
)

// Role controls which API surface a user may reach.
type Role string

const (
	// RoleUser is the default role for registered donors.
	RoleUser Role = "user"
	// RoleAdmin grants access to the admin dashboard and exports.
	RoleAdmin Role = "admin"
)

// User represents a registered donor or administrator.
type User struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a User with a bcrypt-hashed password and the default role.
func New(fullName, email, phone, password string) (*User, error) {
	if fullName == "" {
		return nil, errors.New("full name cannot be empty")
	}
	if !utils.IsEmail(email) {
		return nil, errors.New("invalid email address")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		FullName:  fullName,
		Email:     email,
		Phone:     phone,
		Password:  hashed,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewFromData creates a User from raw data (used for DB hydration).
func NewFromData(
	id uuid.UUID,
	fullName, email, phone, password string,
	role Role,
	created, updated time.Time,
) *User {
	return &User{
		ID:        id,
		FullName:  fullName,
		Email:     email,
		Phone:     phone,
		Password:  password,
		Role:      role,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
