package donation

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	domaindonation "github.com/sevatrust/donation-api/pkg/domain/donation"
)

// Donation represents a donation attempt record in the database. The gateway
// order id carries a partial unique index so two attempts can never share an
// order, while attempts that never reached the gateway keep a NULL.
type Donation struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index"`
	Amount           int64          `gorm:"not null"`
	Currency         string         `gorm:"not null;size:3;default:INR"`
	Status           string         `gorm:"not null;size:10;default:pending;index"`
	GatewayOrderID   sql.NullString `gorm:"size:64"`
	GatewayPaymentID sql.NullString `gorm:"size:64"`
	GatewaySignature sql.NullString `gorm:"size:128"`
	FailureReason    sql.NullString `gorm:"size:255"`
	AttemptedAt      time.Time      `gorm:"not null"`
	CompletedAt      *time.Time
}

// TableName specifies the table name for the Donation model.
func (Donation) TableName() string {
	return "donations"
}

func mapModelToDomain(m *Donation) *domaindonation.Donation {
	return domaindonation.NewFromData(
		m.ID,
		m.UserID,
		m.Amount,
		m.Currency,
		domaindonation.Status(m.Status),
		m.GatewayOrderID.String,
		m.GatewayPaymentID.String,
		m.GatewaySignature.String,
		m.FailureReason.String,
		m.AttemptedAt,
		m.CompletedAt,
	)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
