// Package repository defines the data access interfaces implemented by the
// infra layer.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sevatrust/donation-api/pkg/domain/adminlog"
	"github.com/sevatrust/donation-api/pkg/domain/donation"
	"github.com/sevatrust/donation-api/pkg/domain/registration"
	"github.com/sevatrust/donation-api/pkg/domain/user"
	"github.com/sevatrust/donation-api/pkg/dto"
)

// ListFilter narrows and paginates admin listings. A zero Status means no
// status filter. Page is 1-based.
type ListFilter struct {
	Status string
	Page   int
	Limit  int
}

// DonationRepository persists donation attempts and applies the terminal
// transitions of the reconciliation state machine.
//
// MarkSucceededIfPending and MarkFailedIfPending must execute as one atomic
// conditional update ("set terminal state where status is still pending").
// They return false with a nil error when the donation was already terminal,
// which callers treat as "already reconciled, no-op". This is what makes a
// redirect confirmation and a webhook racing for the same donation safe:
// exactly one of them flips the status.
type DonationRepository interface {
	Create(ctx context.Context, d *donation.Donation) error
	Get(ctx context.Context, id uuid.UUID) (*donation.Donation, error)
	GetByOrderID(ctx context.Context, orderID string) (*donation.Donation, error)
	AttachOrder(ctx context.Context, id uuid.UUID, orderID string) error
	MarkSucceededIfPending(
		ctx context.Context,
		id uuid.UUID,
		paymentID, signature string,
		completedAt time.Time,
	) (bool, error)
	MarkFailedIfPending(
		ctx context.Context,
		id uuid.UUID,
		reason string,
		completedAt time.Time,
	) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*donation.Donation, error)
	ListRows(ctx context.Context, filter ListFilter) ([]*dto.DonationRow, int64, error)
	CountByStatus(ctx context.Context, status donation.Status) (int64, error)
	Count(ctx context.Context) (int64, error)
	SumAmountByStatus(ctx context.Context, status donation.Status) (int64, error)
}

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// RegistrationRepository persists cause registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, r *registration.Registration) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*registration.Registration, error)
	ListRows(ctx context.Context, filter ListFilter) ([]*dto.RegistrationRow, int64, error)
	Count(ctx context.Context) (int64, error)
}

// AdminLogRepository appends admin action records. Entries are write-only
// from the application's point of view.
type AdminLogRepository interface {
	Create(ctx context.Context, e *adminlog.Entry) error
}
