// Package registration holds the cause registration entity created at signup.
package registration

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCause is used when a signup does not name a specific cause.
const DefaultCause = "General Support"

// Status marks whether a registration is still active.
type Status string

const (
	// StatusActive is the initial status of every registration.
	StatusActive Status = "active"
	// StatusInactive marks registrations that have been retired.
	StatusInactive Status = "inactive"
)

// Registration links a user to a supported cause.
type Registration struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	CauseName    string    `json:"cause_name"`
	Status       Status    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}

// New creates an active registration for the given user.
func New(userID uuid.UUID, causeName string) *Registration {
	if causeName == "" {
		causeName = DefaultCause
	}
	return &Registration{
		ID:           uuid.New(),
		UserID:       userID,
		CauseName:    causeName,
		Status:       StatusActive,
		RegisteredAt: time.Now().UTC(),
	}
}

// NewFromData hydrates a Registration from raw storage data.
func NewFromData(
	id, userID uuid.UUID,
	causeName string,
	status Status,
	registeredAt time.Time,
) *Registration {
	return &Registration{
		ID:           id,
		UserID:       userID,
		CauseName:    causeName,
		Status:       status,
		RegisteredAt: registeredAt,
	}
}
