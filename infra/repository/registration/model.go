package registration

import (
	"time"

	"github.com/google/uuid"
	domainreg "github.com/sevatrust/donation-api/pkg/domain/registration"
)

// Registration represents a cause registration record in the database.
type Registration struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CauseName    string    `gorm:"not null;size:255;default:General Support"`
	Status       string    `gorm:"not null;size:10;default:active"`
	RegisteredAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for the Registration model.
func (Registration) TableName() string {
	return "registrations"
}

func mapModelToDomain(m *Registration) *domainreg.Registration {
	return domainreg.NewFromData(
		m.ID,
		m.UserID,
		m.CauseName,
		domainreg.Status(m.Status),
		m.RegisteredAt,
	)
}
