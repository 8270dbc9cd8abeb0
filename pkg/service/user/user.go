// Package user provides profile and donation history queries for donors.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sevatrust/donation-api/pkg/domain/donation"
	"github.com/sevatrust/donation-api/pkg/domain/registration"
	"github.com/sevatrust/donation-api/pkg/domain/user"
	"github.com/sevatrust/donation-api/pkg/dto"
	"github.com/sevatrust/donation-api/pkg/repository"
)

// Service provides donor-facing queries.
type Service struct {
	users         repository.UserRepository
	registrations repository.RegistrationRepository
	donations     repository.DonationRepository
	logger        *slog.Logger
}

// New creates a user Service.
func New(
	users repository.UserRepository,
	registrations repository.RegistrationRepository,
	donations repository.DonationRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:         users,
		registrations: registrations,
		donations:     donations,
		logger:        logger,
	}
}

// Profile bundles a user with their cause registration.
type Profile struct {
	User         *user.User                 `json:"user"`
	Registration *registration.Registration `json:"registration,omitempty"`
}

// GetProfile returns the user and their registration. A missing registration
// is not an error; older accounts may predate cause registrations.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	reg, err := s.registrations.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Debug("no registration for user", "user_id", userID, "error", err)
		reg = nil
	}
	return &Profile{User: u, Registration: reg}, nil
}

// History bundles a user's donations, newest first, with aggregate stats.
type History struct {
	Donations []*donation.Donation `json:"donations"`
	Stats     dto.DonationStats    `json:"stats"`
}

// GetDonationHistory lists a user's donation attempts with aggregates. All
// attempts are included: the history is an honest audit trail, failed and
// pending attempts are not hidden.
func (s *Service) GetDonationHistory(ctx context.Context, userID uuid.UUID) (*History, error) {
	ds, err := s.donations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	var stats dto.DonationStats
	stats.TotalAttempts = int64(len(ds))
	for _, d := range ds {
		switch d.Status {
		case donation.StatusSuccess:
			stats.Succeeded++
			stats.TotalAmount += d.Amount
		case donation.StatusPending:
			stats.Pending++
		case donation.StatusFailed:
			stats.Failed++
		}
	}
	return &History{Donations: ds, Stats: stats}, nil
}
