// Package donation implements the donation repository on gorm/postgres.
//
// The terminal transitions are implemented as single conditional UPDATE
// statements guarded by "status = 'pending'", so a redirect confirmation and
// a webhook racing for the same donation resolve in the database: whichever
// statement runs first wins, the loser sees zero affected rows.
package donation

import (
	"context"
	"time"

	"github.com/google/uuid"
	infrarepo "github.com/sevatrust/donation-api/infra/repository"
	domaindonation "github.com/sevatrust/donation-api/pkg/domain/donation"
	"github.com/sevatrust/donation-api/pkg/dto"
	"github.com/sevatrust/donation-api/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

// New creates a gorm-backed DonationRepository.
func New(db *gorm.DB) repository.DonationRepository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, d *domaindonation.Donation) error {
	model := &Donation{
		ID:               d.ID,
		UserID:           d.UserID,
		Amount:           d.Amount,
		Currency:         d.Currency,
		Status:           string(d.Status),
		GatewayOrderID:   nullable(d.GatewayOrderID),
		GatewayPaymentID: nullable(d.GatewayPaymentID),
		GatewaySignature: nullable(d.GatewaySignature),
		FailureReason:    nullable(d.FailureReason),
		AttemptedAt:      d.AttemptedAt,
		CompletedAt:      d.CompletedAt,
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(model).Error,
	)
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*domaindonation.Donation, error) {
	var model Donation
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDomain(&model), nil
}

func (r *repo) GetByOrderID(ctx context.Context, orderID string) (*domaindonation.Donation, error) {
	var model Donation
	if err := r.db.WithContext(ctx).
		Where("gateway_order_id = ?", orderID).
		First(&model).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDomain(&model), nil
}

func (r *repo) AttachOrder(ctx context.Context, id uuid.UUID, orderID string) error {
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Model(&Donation{}).
			Where("id = ?", id).
			Update("gateway_order_id", orderID).Error,
	)
}

func (r *repo) MarkSucceededIfPending(
	ctx context.Context,
	id uuid.UUID,
	paymentID, signature string,
	completedAt time.Time,
) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Donation{}).
		Where("id = ? AND status = ?", id, string(domaindonation.StatusPending)).
		Updates(map[string]interface{}{
			"status":             string(domaindonation.StatusSuccess),
			"gateway_payment_id": nullable(paymentID),
			"gateway_signature":  nullable(signature),
			"completed_at":       completedAt,
		})
	if res.Error != nil {
		return false, infrarepo.MapGormErrorToDomain(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) MarkFailedIfPending(
	ctx context.Context,
	id uuid.UUID,
	reason string,
	completedAt time.Time,
) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Donation{}).
		Where("id = ? AND status = ?", id, string(domaindonation.StatusPending)).
		Updates(map[string]interface{}{
			"status":         string(domaindonation.StatusFailed),
			"failure_reason": nullable(reason),
			"completed_at":   completedAt,
		})
	if res.Error != nil {
		return false, infrarepo.MapGormErrorToDomain(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domaindonation.Donation, error) {
	var models []Donation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("attempted_at DESC").
		Find(&models).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}

	result := make([]*domaindonation.Donation, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDomain(&models[i]))
	}
	return result, nil
}

// donationRow scans the donations/users join for admin listings.
type donationRow struct {
	ID               uuid.UUID
	DonorName        string
	DonorEmail       string
	DonorPhone       string
	Amount           int64
	Currency         string
	Status           string
	GatewayPaymentID *string
	AttemptedAt      time.Time
	CompletedAt      *time.Time
}

func (r *repo) ListRows(
	ctx context.Context,
	filter repository.ListFilter,
) ([]*dto.DonationRow, int64, error) {
	base := r.db.WithContext(ctx).Model(&Donation{})
	if filter.Status != "" {
		base = base.Where("donations.status = ?", filter.Status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, infrarepo.MapGormErrorToDomain(err)
	}

	query := base.Session(&gorm.Session{}).
		Select(`donations.id, users.full_name AS donor_name,
			users.email AS donor_email, users.phone AS donor_phone,
			donations.amount, donations.currency, donations.status,
			donations.gateway_payment_id, donations.attempted_at,
			donations.completed_at`).
		Joins("JOIN users ON users.id = donations.user_id").
		Order("donations.attempted_at DESC")
	if filter.Limit > 0 {
		query = query.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var rows []donationRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, infrarepo.MapGormErrorToDomain(err)
	}

	result := make([]*dto.DonationRow, 0, len(rows))
	for _, row := range rows {
		paymentID := ""
		if row.GatewayPaymentID != nil {
			paymentID = *row.GatewayPaymentID
		}
		result = append(result, &dto.DonationRow{
			ID:               row.ID,
			DonorName:        row.DonorName,
			DonorEmail:       row.DonorEmail,
			DonorPhone:       row.DonorPhone,
			Amount:           row.Amount,
			Currency:         row.Currency,
			Status:           row.Status,
			GatewayPaymentID: paymentID,
			AttemptedAt:      row.AttemptedAt,
			CompletedAt:      row.CompletedAt,
		})
	}
	return result, total, nil
}

func (r *repo) CountByStatus(ctx context.Context, status domaindonation.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Donation{}).
		Where("status = ?", string(status)).
		Count(&count).Error; err != nil {
		return 0, infrarepo.MapGormErrorToDomain(err)
	}
	return count, nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Donation{}).
		Count(&count).Error; err != nil {
		return 0, infrarepo.MapGormErrorToDomain(err)
	}
	return count, nil
}

func (r *repo) SumAmountByStatus(ctx context.Context, status domaindonation.Status) (int64, error) {
	var sum int64
	if err := r.db.WithContext(ctx).Model(&Donation{}).
		Where("status = ?", string(status)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error; err != nil {
		return 0, infrarepo.MapGormErrorToDomain(err)
	}
	return sum, nil
}
