// Package registration implements the registration repository on gorm/postgres.
package registration

import (
	"context"
	"time"

	"github.com/google/uuid"
	infrarepo "github.com/sevatrust/donation-api/infra/repository"
	domainreg "github.com/sevatrust/donation-api/pkg/domain/registration"
	"github.com/sevatrust/donation-api/pkg/dto"
	"github.com/sevatrust/donation-api/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

// New creates a gorm-backed RegistrationRepository.
func New(db *gorm.DB) repository.RegistrationRepository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, reg *domainreg.Registration) error {
	model := &Registration{
		ID:           reg.ID,
		UserID:       reg.UserID,
		CauseName:    reg.CauseName,
		Status:       string(reg.Status),
		RegisteredAt: reg.RegisteredAt,
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(model).Error,
	)
}

func (r *repo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domainreg.Registration, error) {
	var model Registration
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("registered_at DESC").
		First(&model).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDomain(&model), nil
}

type registrationRow struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	Phone        string
	CauseName    string
	Status       string
	RegisteredAt time.Time
}

func (r *repo) ListRows(
	ctx context.Context,
	filter repository.ListFilter,
) ([]*dto.RegistrationRow, int64, error) {
	base := r.db.WithContext(ctx).Model(&Registration{})
	if filter.Status != "" {
		base = base.Where("registrations.status = ?", filter.Status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, infrarepo.MapGormErrorToDomain(err)
	}

	query := base.Session(&gorm.Session{}).
		Select(`registrations.id, users.full_name, users.email, users.phone,
			registrations.cause_name, registrations.status,
			registrations.registered_at`).
		Joins("JOIN users ON users.id = registrations.user_id").
		Order("registrations.registered_at DESC")
	if filter.Limit > 0 {
		query = query.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var rows []registrationRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, infrarepo.MapGormErrorToDomain(err)
	}

	result := make([]*dto.RegistrationRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, &dto.RegistrationRow{
			ID:           row.ID,
			FullName:     row.FullName,
			Email:        row.Email,
			Phone:        row.Phone,
			CauseName:    row.CauseName,
			Status:       row.Status,
			RegisteredAt: row.RegisteredAt,
		})
	}
	return result, total, nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Registration{}).
		Count(&count).Error; err != nil {
		return 0, infrarepo.MapGormErrorToDomain(err)
	}
	return count, nil
}
