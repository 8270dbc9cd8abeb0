// Package donation implements donation creation and payment reconciliation.
//
// A donation is created as a pending record before the gateway order is
// minted, so a failed gateway call never loses the attempt. Later, either the
// client's redirect confirmation or the gateway's webhook reconciles the
// record to a terminal state. Both paths funnel into the repository's
// conditional updates: the first confirmation wins and every later one is an
// acknowledged no-op.
package donation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sevatrust/donation-api/pkg/config"
	"github.com/sevatrust/donation-api/pkg/domain"
	"github.com/sevatrust/donation-api/pkg/domain/donation"
	"github.com/sevatrust/donation-api/pkg/provider"
	"github.com/sevatrust/donation-api/pkg/repository"
)

// ErrWebhookAuth is returned when a webhook signature does not match. The
// request is rejected before any donation is looked up or mutated.
var ErrWebhookAuth = errors.New("webhook authentication failed")

// sigMismatchReason is recorded when a redirect confirmation carries a bad
// signature. A mismatch is a business outcome (a failed donation), not a
// system error.
const sigMismatchReason = "signature mismatch"

// Service is the reconciliation engine: it creates pending donations, mints
// gateway orders and applies verified payment outcomes exactly once.
type Service struct {
	donations repository.DonationRepository
	issuer    provider.OrderIssuer
	cfg       *config.Razorpay
	logger    *slog.Logger
}

// New creates a donation Service.
func New(
	donations repository.DonationRepository,
	issuer provider.OrderIssuer,
	cfg *config.Razorpay,
	logger *slog.Logger,
) *Service {
	return &Service{
		donations: donations,
		issuer:    issuer,
		cfg:       cfg,
		logger:    logger,
	}
}

// CreateResult carries the new pending donation together with the gateway
// order the client needs to open checkout.
type CreateResult struct {
	Donation *donation.Donation `json:"donation"`
	Order    *provider.Order    `json:"order"`
}

// Create persists a pending donation and mints a gateway order for it.
// Returns donation.ErrInvalidAmount when amount is below the minimum and
// provider.ErrGatewayUnavailable when the order call fails; in the latter
// case the pending record already exists and the user simply retries with a
// fresh attempt.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	amount int64,
) (*CreateResult, error) {
	log := s.logger.With("operation", "donation.Create", "user_id", userID, "amount", amount)

	d, err := donation.New(userID, amount, s.cfg.Currency)
	if err != nil {
		return nil, err
	}
	if err = s.donations.Create(ctx, d); err != nil {
		log.Error("failed to persist donation", "error", err)
		return nil, fmt.Errorf("failed to persist donation: %w", err)
	}

	// Receipt is derived from the donation id so the gateway-side order is
	// traceable back to the local record.
	receipt := "receipt_" + d.ID.String()
	order, err := s.issuer.CreateOrder(ctx, d.Amount, d.Currency, receipt)
	if err != nil {
		log.Error("gateway order creation failed, donation stays pending",
			"donation_id", d.ID, "error", err)
		return nil, err
	}

	if err = d.AttachOrder(order.OrderID); err != nil {
		return nil, err
	}
	if err = s.donations.AttachOrder(ctx, d.ID, order.OrderID); err != nil {
		log.Error("failed to attach order id", "donation_id", d.ID, "error", err)
		return nil, fmt.Errorf("failed to attach order id: %w", err)
	}

	log.Info("donation created", "donation_id", d.ID, "order_id", order.OrderID)
	return &CreateResult{Donation: d, Order: order}, nil
}

// ConfirmRedirect applies the checkout redirect confirmation for orderID.
// Returns donation.ErrDonationNotFound for an unknown order id. An authentic
// signature moves a pending donation to success; a mismatch moves it to
// failed. A donation that is already terminal is returned unchanged, so
// double-submitted redirects cause no further side effects.
func (s *Service) ConfirmRedirect(
	ctx context.Context,
	orderID, paymentID, signature string,
) (*donation.Donation, error) {
	log := s.logger.With("operation", "donation.ConfirmRedirect", "order_id", orderID)

	d, err := s.donations.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, donation.ErrDonationNotFound
		}
		return nil, err
	}
	if d.Terminal() {
		log.Info("donation already reconciled", "donation_id", d.ID, "status", d.Status)
		return d, nil
	}

	now := time.Now().UTC()
	if provider.VerifyRedirectSignature(s.cfg.KeySecret, orderID, paymentID, signature) {
		applied, err := s.donations.MarkSucceededIfPending(ctx, d.ID, paymentID, signature, now)
		if err != nil {
			return nil, fmt.Errorf("failed to record payment success: %w", err)
		}
		if !applied {
			log.Info("lost reconciliation race, keeping existing terminal state",
				"donation_id", d.ID)
		} else {
			log.Info("payment verified", "donation_id", d.ID, "payment_id", paymentID)
		}
	} else {
		applied, err := s.donations.MarkFailedIfPending(ctx, d.ID, sigMismatchReason, now)
		if err != nil {
			return nil, fmt.Errorf("failed to record signature mismatch: %w", err)
		}
		if applied {
			log.Warn("redirect signature mismatch", "donation_id", d.ID)
		}
	}

	// Re-read so the caller always sees the terminal record that actually won.
	return s.donations.Get(ctx, d.ID)
}

// HandleWebhook applies a gateway webhook notification. The signature is
// verified against the raw body before anything is parsed or looked up; a
// mismatch returns ErrWebhookAuth with no state touched. Unknown event types
// and already-terminal donations are acknowledged without changes, since the
// gateway may redeliver events. An unknown order id is a referential
// integrity problem and surfaces as donation.ErrDonationNotFound.
func (s *Service) HandleWebhook(
	ctx context.Context,
	rawBody []byte,
	signatureHeader string,
) error {
	log := s.logger.With("operation", "donation.HandleWebhook")

	if !provider.VerifyWebhookSignature(s.cfg.WebhookSecret, rawBody, signatureHeader) {
		log.Warn("webhook signature mismatch")
		return ErrWebhookAuth
	}

	ev, err := provider.ParseWebhookEvent(rawBody)
	if err != nil {
		return err
	}
	if ev.Kind == provider.EventUnknown {
		log.Info("ignoring unhandled webhook event")
		return nil
	}

	d, err := s.donations.GetByOrderID(ctx, ev.OrderID)
	if err != nil {
		log.Error("webhook references unknown order", "order_id", ev.OrderID, "error", err)
		if errors.Is(err, domain.ErrNotFound) {
			return donation.ErrDonationNotFound
		}
		return err
	}
	if d.Terminal() {
		log.Info("webhook for already reconciled donation",
			"donation_id", d.ID, "status", d.Status)
		return nil
	}

	now := time.Now().UTC()
	switch ev.Kind {
	case provider.EventPaymentCaptured:
		applied, err := s.donations.MarkSucceededIfPending(ctx, d.ID, ev.PaymentID, "", now)
		if err != nil {
			return fmt.Errorf("failed to record captured payment: %w", err)
		}
		if applied {
			log.Info("payment captured via webhook",
				"donation_id", d.ID, "payment_id", ev.PaymentID)
		}
	case provider.EventPaymentFailed:
		reason := ev.ErrorDescription
		if reason == "" {
			reason = "payment failed"
		}
		applied, err := s.donations.MarkFailedIfPending(ctx, d.ID, reason, now)
		if err != nil {
			return fmt.Errorf("failed to record failed payment: %w", err)
		}
		if applied {
			log.Info("payment failed via webhook", "donation_id", d.ID, "reason", reason)
		}
	}
	return nil
}
