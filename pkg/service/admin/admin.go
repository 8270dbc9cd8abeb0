// Package admin provides dashboard aggregates, listings and CSV exports.
// Every operation appends an audit log entry for the acting admin.
package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sevatrust/donation-api/pkg/domain/adminlog"
	"github.com/sevatrust/donation-api/pkg/domain/donation"
	"github.com/sevatrust/donation-api/pkg/dto"
	"github.com/sevatrust/donation-api/pkg/repository"
)

// Service provides admin-facing aggregates and exports.
type Service struct {
	donations     repository.DonationRepository
	registrations repository.RegistrationRepository
	logs          repository.AdminLogRepository
	logger        *slog.Logger
}

// New creates an admin Service.
func New(
	donations repository.DonationRepository,
	registrations repository.RegistrationRepository,
	logs repository.AdminLogRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		donations:     donations,
		registrations: registrations,
		logs:          logs,
		logger:        logger,
	}
}

// audit appends an admin log entry. Logging failures are reported but never
// fail the admin operation itself.
func (s *Service) audit(ctx context.Context, adminID uuid.UUID, action adminlog.Action, details map[string]any) {
	if err := s.logs.Create(ctx, adminlog.New(adminID, action, details)); err != nil {
		s.logger.Error("failed to write admin log", "action", action, "error", err)
	}
}

// DashboardStats aggregates platform-wide donation and registration numbers.
func (s *Service) DashboardStats(ctx context.Context, adminID uuid.UUID) (*dto.DashboardStats, error) {
	s.audit(ctx, adminID, adminlog.ActionViewDashboard, nil)

	stats := &dto.DashboardStats{}
	var err error
	if stats.TotalRegistrations, err = s.registrations.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}
	if stats.TotalDonations, err = s.donations.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count donations: %w", err)
	}
	if stats.Succeeded, err = s.donations.CountByStatus(ctx, donation.StatusSuccess); err != nil {
		return nil, fmt.Errorf("failed to count succeeded donations: %w", err)
	}
	if stats.Pending, err = s.donations.CountByStatus(ctx, donation.StatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending donations: %w", err)
	}
	if stats.Failed, err = s.donations.CountByStatus(ctx, donation.StatusFailed); err != nil {
		return nil, fmt.Errorf("failed to count failed donations: %w", err)
	}
	if stats.TotalAmount, err = s.donations.SumAmountByStatus(ctx, donation.StatusSuccess); err != nil {
		return nil, fmt.Errorf("failed to sum donation amounts: %w", err)
	}
	return stats, nil
}

// Page is a paginated listing result.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Count      int64 `json:"count"`
	TotalPages int64 `json:"total_pages"`
	Page       int   `json:"page"`
}

func normalize(filter repository.ListFilter) repository.ListFilter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	return filter
}

func totalPages(count int64, limit int) int64 {
	pages := count / int64(limit)
	if count%int64(limit) != 0 {
		pages++
	}
	return pages
}

// ListRegistrations returns registrations joined with user details.
func (s *Service) ListRegistrations(
	ctx context.Context,
	adminID uuid.UUID,
	filter repository.ListFilter,
) (*Page[*dto.RegistrationRow], error) {
	filter = normalize(filter)
	s.audit(ctx, adminID, adminlog.ActionViewRegistrations, map[string]any{
		"status": filter.Status, "page": filter.Page, "limit": filter.Limit,
	})

	rows, count, err := s.registrations.ListRows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return &Page[*dto.RegistrationRow]{
		Items:      rows,
		Count:      count,
		TotalPages: totalPages(count, filter.Limit),
		Page:       filter.Page,
	}, nil
}

// ListDonations returns donations joined with donor details.
func (s *Service) ListDonations(
	ctx context.Context,
	adminID uuid.UUID,
	filter repository.ListFilter,
) (*Page[*dto.DonationRow], error) {
	filter = normalize(filter)
	s.audit(ctx, adminID, adminlog.ActionViewDonations, map[string]any{
		"status": filter.Status, "page": filter.Page, "limit": filter.Limit,
	})

	rows, count, err := s.donations.ListRows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return &Page[*dto.DonationRow]{
		Items:      rows,
		Count:      count,
		TotalPages: totalPages(count, filter.Limit),
		Page:       filter.Page,
	}, nil
}

// exportLimit caps export queries; listings and exports share the same
// repository method.
const exportLimit = 100000

// ExportRegistrationsCSV renders all registrations as CSV.
func (s *Service) ExportRegistrationsCSV(ctx context.Context, adminID uuid.UUID) ([]byte, error) {
	s.audit(ctx, adminID, adminlog.ActionExportRegistrations, nil)

	rows, _, err := s.registrations.ListRows(ctx, repository.ListFilter{Page: 1, Limit: exportLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Full Name", "Email", "Phone", "Registration Date", "Status"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		phone := r.Phone
		if phone == "" {
			phone = "N/A"
		}
		record := []string{
			r.FullName,
			r.Email,
			phone,
			r.RegisteredAt.UTC().Format(time.RFC3339),
			r.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportDonationsCSV renders all donations as CSV.
func (s *Service) ExportDonationsCSV(ctx context.Context, adminID uuid.UUID) ([]byte, error) {
	s.audit(ctx, adminID, adminlog.ActionExportDonations, nil)

	rows, _, err := s.donations.ListRows(ctx, repository.ListFilter{Page: 1, Limit: exportLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"Full Name", "Email", "Amount", "Currency", "Status", "Attempted At", "Completed At", "Payment ID"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, d := range rows {
		completedAt := "N/A"
		if d.CompletedAt != nil {
			completedAt = d.CompletedAt.UTC().Format(time.RFC3339)
		}
		paymentID := d.GatewayPaymentID
		if paymentID == "" {
			paymentID = "N/A"
		}
		record := []string{
			d.DonorName,
			d.DonorEmail,
			strconv.FormatInt(d.Amount, 10),
			d.Currency,
			d.Status,
			d.AttemptedAt.UTC().Format(time.RFC3339),
			completedAt,
			paymentID,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
