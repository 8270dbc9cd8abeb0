// Package user implements the user repository on gorm/postgres.
package user

import (
	"context"

	"github.com/google/uuid"
	infrarepo "github.com/sevatrust/donation-api/infra/repository"
	domainuser "github.com/sevatrust/donation-api/pkg/domain/user"
	"github.com/sevatrust/donation-api/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

// New creates a gorm-backed UserRepository.
func New(db *gorm.DB) repository.UserRepository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, u *domainuser.User) error {
	model := &User{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		Password:  u.Password,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(model).Error,
	)
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*domainuser.User, error) {
	var model User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDomain(&model), nil
}

func (r *repo) GetByEmail(ctx context.Context, email string) (*domainuser.User, error) {
	var model User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&model).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDomain(&model), nil
}
