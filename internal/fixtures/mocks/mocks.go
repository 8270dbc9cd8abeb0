// Package mocks provides testify mocks for the repository and provider
// interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/sevatrust/donation-api/pkg/domain/adminlog"
	"github.com/sevatrust/donation-api/pkg/domain/donation"
	"github.com/sevatrust/donation-api/pkg/domain/registration"
	"github.com/sevatrust/donation-api/pkg/domain/user"
	"github.com/sevatrust/donation-api/pkg/dto"
	"github.com/sevatrust/donation-api/pkg/provider"
	"github.com/sevatrust/donation-api/pkg/repository"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockDonationRepository mocks repository.DonationRepository.
type MockDonationRepository struct {
	mock.Mock
}

// NewMockDonationRepository creates a mock that asserts its expectations on cleanup.
func NewMockDonationRepository(t testingT) *MockDonationRepository {
	m := &MockDonationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDonationRepository) Create(ctx context.Context, d *donation.Donation) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDonationRepository) Get(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*donation.Donation); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDonationRepository) GetByOrderID(ctx context.Context, orderID string) (*donation.Donation, error) {
	args := m.Called(ctx, orderID)
	if d, ok := args.Get(0).(*donation.Donation); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDonationRepository) AttachOrder(ctx context.Context, id uuid.UUID, orderID string) error {
	return m.Called(ctx, id, orderID).Error(0)
}

func (m *MockDonationRepository) MarkSucceededIfPending(
	ctx context.Context,
	id uuid.UUID,
	paymentID, signature string,
	completedAt time.Time,
) (bool, error) {
	args := m.Called(ctx, id, paymentID, signature, completedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockDonationRepository) MarkFailedIfPending(
	ctx context.Context,
	id uuid.UUID,
	reason string,
	completedAt time.Time,
) (bool, error) {
	args := m.Called(ctx, id, reason, completedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockDonationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*donation.Donation, error) {
	args := m.Called(ctx, userID)
	if ds, ok := args.Get(0).([]*donation.Donation); ok {
		return ds, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDonationRepository) ListRows(ctx context.Context, filter repository.ListFilter) ([]*dto.DonationRow, int64, error) {
	args := m.Called(ctx, filter)
	if rows, ok := args.Get(0).([]*dto.DonationRow); ok {
		return rows, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockDonationRepository) CountByStatus(ctx context.Context, status donation.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRepository) SumAmountByStatus(ctx context.Context, status donation.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock that asserts its expectations on cleanup.
func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRegistrationRepository mocks repository.RegistrationRepository.
type MockRegistrationRepository struct {
	mock.Mock
}

// NewMockRegistrationRepository creates a mock that asserts its expectations on cleanup.
func NewMockRegistrationRepository(t testingT) *MockRegistrationRepository {
	m := &MockRegistrationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRegistrationRepository) Create(ctx context.Context, r *registration.Registration) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRegistrationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*registration.Registration, error) {
	args := m.Called(ctx, userID)
	if r, ok := args.Get(0).(*registration.Registration); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegistrationRepository) ListRows(ctx context.Context, filter repository.ListFilter) ([]*dto.RegistrationRow, int64, error) {
	args := m.Called(ctx, filter)
	if rows, ok := args.Get(0).([]*dto.RegistrationRow); ok {
		return rows, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockRegistrationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAdminLogRepository mocks repository.AdminLogRepository.
type MockAdminLogRepository struct {
	mock.Mock
}

// NewMockAdminLogRepository creates a mock that asserts its expectations on cleanup.
func NewMockAdminLogRepository(t testingT) *MockAdminLogRepository {
	m := &MockAdminLogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAdminLogRepository) Create(ctx context.Context, e *adminlog.Entry) error {
	return m.Called(ctx, e).Error(0)
}

// MockOrderIssuer mocks provider.OrderIssuer.
type MockOrderIssuer struct {
	mock.Mock
}

// NewMockOrderIssuer creates a mock that asserts its expectations on cleanup.
func NewMockOrderIssuer(t testingT) *MockOrderIssuer {
	m := &MockOrderIssuer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOrderIssuer) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*provider.Order, error) {
	args := m.Called(ctx, amount, currency, receipt)
	if o, ok := args.Get(0).(*provider.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
