// Package donation holds the donation entity and its reconciliation state machine.
package donation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrDonationNotFound is returned when no donation matches the given
	// id or gateway order id.
	ErrDonationNotFound = errors.New("donation not found")
	// ErrInvalidAmount is returned when the donation amount is below the minimum.
	ErrInvalidAmount = errors.New("amount must be at least 1")
	// ErrOrderAlreadyAttached is returned when a gateway order id is attached twice.
	ErrOrderAlreadyAttached = errors.New("gateway order already attached")
)

// MinAmount is the smallest accepted donation amount in major currency units.
const MinAmount int64 = 1

// Status represents the payment status of a donation attempt.
type Status string

const (
	// StatusPending is the initial status of every donation attempt.
	StatusPending Status = "pending"
	// StatusSuccess is the terminal status of a verified, captured payment.
	StatusSuccess Status = "success"
	// StatusFailed is the terminal status of a failed or unverifiable payment.
	StatusFailed Status = "failed"
)

// Donation represents one donation attempt. A retried payment creates a new
// Donation rather than reusing an old one; records are never deleted so the
// history stays a complete audit trail.
type Donation struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	Amount           int64      `json:"amount"`
	Currency         string     `json:"currency"`
	Status           Status     `json:"status"`
	GatewayOrderID   string     `json:"gateway_order_id,omitempty"`
	GatewayPaymentID string     `json:"gateway_payment_id,omitempty"`
	GatewaySignature string     `json:"gateway_signature,omitempty"`
	FailureReason    string     `json:"failure_reason,omitempty"`
	AttemptedAt      time.Time  `json:"attempted_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// New creates a pending donation attempt for the given user and amount.
func New(userID uuid.UUID, amount int64, currency string) (*Donation, error) {
	if amount < MinAmount {
		return nil, ErrInvalidAmount
	}
	if userID == uuid.Nil {
		return nil, errors.New("user id cannot be nil")
	}
	return &Donation{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Currency:    currency,
		Status:      StatusPending,
		AttemptedAt: time.Now().UTC(),
	}, nil
}

// NewFromData hydrates a Donation from raw storage data.
func NewFromData(
	id, userID uuid.UUID,
	amount int64,
	currency string,
	status Status,
	orderID, paymentID, signature, failureReason string,
	attemptedAt time.Time,
	completedAt *time.Time,
) *Donation {
	return &Donation{
		ID:               id,
		UserID:           userID,
		Amount:           amount,
		Currency:         currency,
		Status:           status,
		GatewayOrderID:   orderID,
		GatewayPaymentID: paymentID,
		GatewaySignature: signature,
		FailureReason:    failureReason,
		AttemptedAt:      attemptedAt,
		CompletedAt:      completedAt,
	}
}

// Terminal reports whether the donation already reached success or failed.
// Terminal donations never transition again; repeated confirmations are no-ops.
func (d *Donation) Terminal() bool {
	return d.Status == StatusSuccess || d.Status == StatusFailed
}

// AttachOrder records the gateway order id. The order id is assigned exactly
// once per donation and is the reconciliation lookup key.
func (d *Donation) AttachOrder(orderID string) error {
	if d.GatewayOrderID != "" {
		return ErrOrderAlreadyAttached
	}
	d.GatewayOrderID = orderID
	return nil
}
