package user

import (
	"time"

	"github.com/google/uuid"
	domainuser "github.com/sevatrust/donation-api/pkg/domain/user"
)

// User represents a user record in the database.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	FullName  string    `gorm:"not null;size:255"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	Phone     string    `gorm:"size:20"`
	Password  string    `gorm:"not null;size:255"`
	Role      string    `gorm:"not null;size:10;default:user"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

func mapModelToDomain(m *User) *domainuser.User {
	return domainuser.NewFromData(
		m.ID,
		m.FullName,
		m.Email,
		m.Phone,
		m.Password,
		domainuser.Role(m.Role),
		m.CreatedAt,
		m.UpdatedAt,
	)
}
