package donation_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sevatrust/donation-api/internal/fixtures/mocks"
	"github.com/sevatrust/donation-api/pkg/config"
	"github.com/sevatrust/donation-api/pkg/domain/donation"
	"github.com/sevatrust/donation-api/pkg/dto"
	"github.com/sevatrust/donation-api/pkg/provider"
	"github.com/sevatrust/donation-api/pkg/repository"
	donationsvc "github.com/sevatrust/donation-api/pkg/service/donation"
)

func testConfig() *config.Razorpay {
	return &config.Razorpay{
		KeyID:         "rzp_test_key",
		KeySecret:     "key_secret",
		WebhookSecret: "webhook_secret",
		Currency:      "INR",
	}
}

func signHex(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func pendingDonation(t *testing.T, amount int64) *donation.Donation {
	t.Helper()
	d, err := donation.New(uuid.New(), amount, "INR")
	require.NoError(t, err)
	return d
}

func TestCreate_Success(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockDonationRepository(t)
	issuer := mocks.NewMockOrderIssuer(t)
	svc := donationsvc.New(repo, issuer, testConfig(), slog.Default())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	issuer.On("CreateOrder", mock.Anything, int64(500), "INR", mock.MatchedBy(func(receipt string) bool {
		return len(receipt) > len("receipt_")
	})).Return(&provider.Order{OrderID: "order_abc", Amount: 50000, Currency: "INR"}, nil)
	repo.On("AttachOrder", mock.Anything, mock.Anything, "order_abc").Return(nil)

	res, err := svc.Create(context.Background(), uuid.New(), 500)
	require.NoError(t, err)
	assert.Equal(t, donation.StatusPending, res.Donation.Status)
	assert.Equal(t, "order_abc", res.Donation.GatewayOrderID)
	assert.Equal(t, "order_abc", res.Order.OrderID)
	assert.Nil(t, res.Donation.CompletedAt)
	assert.False(t, res.Donation.AttemptedAt.IsZero())
}

func TestCreate_InvalidAmount(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockDonationRepository(t)
	issuer := mocks.NewMockOrderIssuer(t)
	svc := donationsvc.New(repo, issuer, testConfig(), slog.Default())

	res, err := svc.Create(context.Background(), uuid.New(), 0)
	require.ErrorIs(t, err, donation.ErrInvalidAmount)
	assert.Nil(t, res)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_GatewayUnavailable_DonationStaysPending(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockDonationRepository(t)
	issuer := mocks.NewMockOrderIssuer(t)
	svc := donationsvc.New(repo, issuer, testConfig(), slog.Default())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	issuer.On("CreateOrder", mock.Anything, int64(500), "INR", mock.Anything).
		Return(nil, provider.ErrGatewayUnavailable)

	res, err := svc.Create(context.Background(), uuid.New(), 500)
	require.ErrorIs(t, err, provider.ErrGatewayUnavailable)
	assert.Nil(t, res)
	// The pending record was written before the gateway call and survives it.
	repo.AssertCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "AttachOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmRedirect_ValidSignature(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockDonationRepository(t)
	issuer := mocks.NewMockOrderIssuer(t)
	svc := donationsvc.New(repo, issuer, testConfig(), slog.Default())

	d := pendingDonation(t, 500)
	require.NoError(t, d.AttachOrder("order_abc"))
	sig := signHex("key_secret", "order_abc|pay_123")

	completed := time.Now().UTC()
	reconciled := *d
	reconciled.Status = donation.StatusSuccess
	reconciled.GatewayPaymentID = "pay_123"
	reconciled.GatewaySignature = sig
	reconciled.CompletedAt = &completed

	repo.On("GetByOrderID", mock.Anything, "order_abc").Return(d, nil)
	repo.On("MarkSucceededIfPending", mock.Anything, d.ID, "pay_123", sig, mock.Anything).
		Return(true, nil)
	repo.On("Get", mock.Anything, d.ID).Return(&reconciled, nil)

	got, err := svc.ConfirmRedirect(context.Background(), "order_abc", "pay_123", sig)
	require.NoError(t, err)
	assert.Equal(t, donation.StatusSuccess, got.Status)
	assert.Equal(t, "pay_123", got.GatewayPaymentID)
	assert.NotNil(t, got.CompletedAt)
}

func TestConfirmRedirect_BadSignature_MarksFailed(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockDonationRepository(t)
	issuer := mocks.NewMockOrderIssuer(t)
	svc := donationsvc.New(repo, issuer, testConfig(), slog.Default())

	d := pendingDonation(t, 500)
	require.NoError(t, d.AttachOrder("order_abc"))

	failed := *d
	failed.Status = donation.StatusFailed
	failed.FailureReason = "signature mismatch"

	repo.On("GetByOrderID", mock.Anything, "order_abc").Return(d, nil)
	repo.On("MarkFailedIfPending", mock.Anything, d.ID, "signature mismatch", mock.Anything).
		Return(true, nil)
	repo.On("Get", mock.Anything, d.ID).Return(&failed, nil)

	got, err := svc.ConfirmRedirect(context.Background(), "order_abc", "pay_123", "bogus")
	require.NoError(t, err)
	assert.Equal(t, donation.StatusFailed, got.Status)
	assert.Equal(t, "signature mismatch", got.FailureReason)
}

func TestConfirmRedirect_AlreadyTerminal_NoOp(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockDonationRepository(t)
	issuer := mocks.NewMockOrderIssuer(t)
	svc := donationsvc.New(repo, issuer, testConfig(), slog.Default())

	d := pendingDonation(t, 500)
	require.NoError(t, d.AttachOrder("order_abc"))
	d.Status = donation.StatusSuccess
	d.GatewayPaymentID = "pay_123"

	repo.On("GetByOrderID", mock.Anything, "order_abc").Return(d, nil)

	sig := signHex("key_secret", "order_abc|pay_123")
	got, err := svc.ConfirmRedirect(context.Background(), "order_abc", "pay_123", sig)
	require.NoError(t, err)
	assert.Equal(t, d, got)
	repo.AssertNotCalled(t, "MarkSucceededIfPending",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkFailedIfPending",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmRedirect_UnknownOrder(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockDonationRepository(t)
	issuer := mocks.NewMockOrderIssuer(t)
	svc := donationsvc.New(repo, issuer, testConfig(), slog.Default())

	repo.On("GetByOrderID", mock.Anything, "order_missing").
		Return(nil, donation.ErrDonationNotFound)

	got, err := svc.ConfirmRedirect(context.Background(), "order_missing", "pay_123", "sig")
	require.ErrorIs(t, err, donation.ErrDonationNotFound)
	assert.Nil(t, got)
}

func TestHandleWebhook_BadSignature_NoLookup(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockDonationRepository(t)
	issuer := mocks.NewMockOrderIssuer(t)
	svc := donationsvc.New(repo, issuer, testConfig(), slog.Default())

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_123","order_id":"order_abc"}}}}`)
	err := svc.HandleWebhook(context.Background(), body, "bad-signature")
	require.ErrorIs(t, err, donationsvc.ErrWebhookAuth)
	repo.AssertNotCalled(t, "GetByOrderID", mock.Anything, mock.Anything)
}

func TestHandleWebhook_PaymentCaptured(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockDonationRepository(t)
	issuer := mocks.NewMockOrderIssuer(t)
	svc := donationsvc.New(repo, issuer, testConfig(), slog.Default())

	d := pendingDonation(t, 500)
	require.NoError(t, d.AttachOrder("order_abc"))

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_123","order_id":"order_abc"}}}}`)
	sig := signHex("webhook_secret", string(body))

	repo.On("GetByOrderID", mock.Anything, "order_abc").Return(d, nil)
	repo.On("MarkSucceededIfPending", mock.Anything, d.ID, "pay_123", "", mock.Anything).
		Return(true, nil)

	require.NoError(t, svc.HandleWebhook(context.Background(), body, sig))
}

func TestHandleWebhook_PaymentFailed(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockDonationRepository(t)
	issuer := mocks.NewMockOrderIssuer(t)
	svc := donationsvc.New(repo, issuer, testConfig(), slog.Default())

	d := pendingDonation(t, 500)
	require.NoError(t, d.AttachOrder("order_abc"))

	body := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_123","order_id":"order_abc","error_description":"insufficient funds"}}}}`)
	sig := signHex("webhook_secret", string(body))

	repo.On("GetByOrderID", mock.Anything, "order_abc").Return(d, nil)
	repo.On("MarkFailedIfPending", mock.Anything, d.ID, "insufficient funds", mock.Anything).
		Return(true, nil)

	require.NoError(t, svc.HandleWebhook(context.Background(), body, sig))
}

func TestHandleWebhook_UnknownEvent_Acknowledged(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockDonationRepository(t)
	issuer := mocks.NewMockOrderIssuer(t)
	svc := donationsvc.New(repo, issuer, testConfig(), slog.Default())

	body := []byte(`{"event":"refund.created","payload":{"payment":{"entity":{"id":"pay_123","order_id":"order_abc"}}}}`)
	sig := signHex("webhook_secret", string(body))

	require.NoError(t, svc.HandleWebhook(context.Background(), body, sig))
	repo.AssertNotCalled(t, "GetByOrderID", mock.Anything, mock.Anything)
}

func TestHandleWebhook_TerminalDonation_Acknowledged(t *testing.T) {
	t.Parallel()
	repo := mocks.NewMockDonationRepository(t)
	issuer := mocks.NewMockOrderIssuer(t)
	svc := donationsvc.New(repo, issuer, testConfig(), slog.Default())

	d := pendingDonation(t, 500)
	require.NoError(t, d.AttachOrder("order_abc"))
	d.Status = donation.StatusFailed
	d.FailureReason = "signature mismatch"

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_123","order_id":"order_abc"}}}}`)
	sig := signHex("webhook_secret", string(body))

	repo.On("GetByOrderID", mock.Anything, "order_abc").Return(d, nil)

	require.NoError(t, svc.HandleWebhook(context.Background(), body, sig))
	repo.AssertNotCalled(t, "MarkSucceededIfPending",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// memDonationRepo is a minimal in-memory repository with the same atomic
// conditional-update semantics the SQL implementation provides. It backs the
// race test below.
type memDonationRepo struct {
	mu sync.Mutex
	d  *donation.Donation

	succeedApplied int
	failApplied    int
}

func (r *memDonationRepo) Create(ctx context.Context, d *donation.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.d = &cp
	return nil
}

func (r *memDonationRepo) Get(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.d == nil || r.d.ID != id {
		return nil, donation.ErrDonationNotFound
	}
	cp := *r.d
	return &cp, nil
}

func (r *memDonationRepo) GetByOrderID(ctx context.Context, orderID string) (*donation.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.d == nil || r.d.GatewayOrderID != orderID {
		return nil, donation.ErrDonationNotFound
	}
	cp := *r.d
	return &cp, nil
}

func (r *memDonationRepo) AttachOrder(ctx context.Context, id uuid.UUID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.d.GatewayOrderID = orderID
	return nil
}

func (r *memDonationRepo) MarkSucceededIfPending(
	ctx context.Context, id uuid.UUID, paymentID, signature string, completedAt time.Time,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.d == nil || r.d.ID != id || r.d.Status != donation.StatusPending {
		return false, nil
	}
	r.d.Status = donation.StatusSuccess
	r.d.GatewayPaymentID = paymentID
	r.d.GatewaySignature = signature
	r.d.CompletedAt = &completedAt
	r.succeedApplied++
	return true, nil
}

func (r *memDonationRepo) MarkFailedIfPending(
	ctx context.Context, id uuid.UUID, reason string, completedAt time.Time,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.d == nil || r.d.ID != id || r.d.Status != donation.StatusPending {
		return false, nil
	}
	r.d.Status = donation.StatusFailed
	r.d.FailureReason = reason
	r.d.CompletedAt = &completedAt
	r.failApplied++
	return true, nil
}

func (r *memDonationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*donation.Donation, error) {
	return nil, nil
}

func (r *memDonationRepo) ListRows(ctx context.Context, filter repository.ListFilter) ([]*dto.DonationRow, int64, error) {
	return nil, 0, nil
}

func (r *memDonationRepo) CountByStatus(ctx context.Context, status donation.Status) (int64, error) {
	return 0, nil
}

func (r *memDonationRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (r *memDonationRepo) SumAmountByStatus(ctx context.Context, status donation.Status) (int64, error) {
	return 0, nil
}

func TestConcurrentRedirectAndWebhook_ExactlyOneWins(t *testing.T) {
	t.Parallel()
	for i := 0; i < 50; i++ {
		repo := &memDonationRepo{}
		issuer := mocks.NewMockOrderIssuer(t)
		issuer.On("CreateOrder", mock.Anything, int64(500), "INR", mock.Anything).
			Return(&provider.Order{OrderID: "order_abc", Amount: 50000, Currency: "INR"}, nil)
		svc := donationsvc.New(repo, issuer, testConfig(), slog.Default())

		_, err := svc.Create(context.Background(), uuid.New(), 500)
		require.NoError(t, err)

		redirectSig := signHex("key_secret", "order_abc|pay_123")
		body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_123","order_id":"order_abc"}}}}`)
		webhookSig := signHex("webhook_secret", string(body))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.ConfirmRedirect(context.Background(), "order_abc", "pay_123", redirectSig)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.HandleWebhook(context.Background(), body, webhookSig))
		}()
		wg.Wait()

		final, err := repo.GetByOrderID(context.Background(), "order_abc")
		require.NoError(t, err)
		assert.Equal(t, donation.StatusSuccess, final.Status)
		assert.Equal(t, "pay_123", final.GatewayPaymentID)
		require.NotNil(t, final.CompletedAt)
		// Exactly one confirmation applied the transition.
		assert.Equal(t, 1, repo.succeedApplied+repo.failApplied)
	}
}
