package admin_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sevatrust/donation-api/internal/fixtures/mocks"
	"github.com/sevatrust/donation-api/pkg/domain/donation"
	"github.com/sevatrust/donation-api/pkg/dto"
	"github.com/sevatrust/donation-api/pkg/repository"
	adminsvc "github.com/sevatrust/donation-api/pkg/service/admin"
)

func newAdminService(t *testing.T) (*adminsvc.Service, *mocks.MockDonationRepository, *mocks.MockRegistrationRepository, *mocks.MockAdminLogRepository) {
	donations := mocks.NewMockDonationRepository(t)
	regs := mocks.NewMockRegistrationRepository(t)
	logs := mocks.NewMockAdminLogRepository(t)
	return adminsvc.New(donations, regs, logs, slog.Default()), donations, regs, logs
}

func TestDashboardStats(t *testing.T) {
	t.Parallel()
	svc, donations, regs, logs := newAdminService(t)
	adminID := uuid.New()

	logs.On("Create", mock.Anything, mock.Anything).Return(nil)
	regs.On("Count", mock.Anything).Return(int64(12), nil)
	donations.On("Count", mock.Anything).Return(int64(30), nil)
	donations.On("CountByStatus", mock.Anything, donation.StatusSuccess).Return(int64(20), nil)
	donations.On("CountByStatus", mock.Anything, donation.StatusPending).Return(int64(4), nil)
	donations.On("CountByStatus", mock.Anything, donation.StatusFailed).Return(int64(6), nil)
	donations.On("SumAmountByStatus", mock.Anything, donation.StatusSuccess).Return(int64(15000), nil)

	stats, err := svc.DashboardStats(context.Background(), adminID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalRegistrations)
	assert.Equal(t, int64(30), stats.TotalDonations)
	assert.Equal(t, int64(20), stats.Succeeded)
	assert.Equal(t, int64(15000), stats.TotalAmount)
}

func TestListDonations_PaginationDefaults(t *testing.T) {
	t.Parallel()
	svc, donations, _, logs := newAdminService(t)
	adminID := uuid.New()

	logs.On("Create", mock.Anything, mock.Anything).Return(nil)
	donations.On("ListRows", mock.Anything, repository.ListFilter{Page: 1, Limit: 10}).
		Return([]*dto.DonationRow{}, int64(25), nil)

	page, err := svc.ListDonations(context.Background(), adminID, repository.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Count)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Equal(t, 1, page.Page)
}

func TestExportDonationsCSV(t *testing.T) {
	t.Parallel()
	svc, donations, _, logs := newAdminService(t)
	adminID := uuid.New()
	completed := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	logs.On("Create", mock.Anything, mock.Anything).Return(nil)
	donations.On("ListRows", mock.Anything, mock.Anything).Return([]*dto.DonationRow{
		{
			DonorName:        "Asha Rao",
			DonorEmail:       "asha@example.com",
			Amount:           500,
			Currency:         "INR",
			Status:           "success",
			GatewayPaymentID: "pay_123",
			AttemptedAt:      completed.Add(-time.Minute),
			CompletedAt:      &completed,
		},
		{
			DonorName:   "Vikram Shah",
			DonorEmail:  "vikram@example.com",
			Amount:      100,
			Currency:    "INR",
			Status:      "pending",
			AttemptedAt: completed,
		},
	}, int64(2), nil)

	out, err := svc.ExportDonationsCSV(context.Background(), adminID)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Full Name")
	assert.Contains(t, lines[1], "pay_123")
	assert.Contains(t, lines[2], "N/A")
}

func TestExportRegistrationsCSV_AuditFailureDoesNotBlock(t *testing.T) {
	t.Parallel()
	svc, _, regs, logs := newAdminService(t)
	adminID := uuid.New()

	logs.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
	regs.On("ListRows", mock.Anything, mock.Anything).Return([]*dto.RegistrationRow{}, int64(0), nil)

	out, err := svc.ExportRegistrationsCSV(context.Background(), adminID)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Full Name")
}
