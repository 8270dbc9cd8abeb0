// Package dto holds read-optimized models for listings and exports where
// donation or registration rows are joined with their owning user.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// DonationRow is a donation joined with donor details for admin listings
// and CSV exports.
type DonationRow struct {
	ID               uuid.UUID  `json:"id"`
	DonorName        string     `json:"donor_name"`
	DonorEmail       string     `json:"donor_email"`
	DonorPhone       string     `json:"donor_phone,omitempty"`
	Amount           int64      `json:"amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	GatewayPaymentID string     `json:"gateway_payment_id,omitempty"`
	AttemptedAt      time.Time  `json:"attempted_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// RegistrationRow is a registration joined with user details for admin
// listings and CSV exports.
type RegistrationRow struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	CauseName    string    `json:"cause_name"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}

// DonationStats aggregates a user's donation history.
type DonationStats struct {
	TotalAttempts int64 `json:"total_attempts"`
	Succeeded     int64 `json:"succeeded"`
	Pending       int64 `json:"pending"`
	Failed        int64 `json:"failed"`
	TotalAmount   int64 `json:"total_amount"`
}

// DashboardStats aggregates platform-wide numbers for the admin dashboard.
type DashboardStats struct {
	TotalRegistrations int64 `json:"total_registrations"`
	TotalDonations     int64 `json:"total_donations"`
	Succeeded          int64 `json:"succeeded"`
	Pending            int64 `json:"pending"`
	Failed             int64 `json:"failed"`
	TotalAmount        int64 `json:"total_amount"`
}
