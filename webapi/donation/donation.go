// Package donation exposes the checkout and payment reconciliation endpoints.
package donation

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sevatrust/donation-api/pkg/config"
	domaindonation "github.com/sevatrust/donation-api/pkg/domain/donation"
	"github.com/sevatrust/donation-api/pkg/middleware"
	"github.com/sevatrust/donation-api/pkg/provider"
	authsvc "github.com/sevatrust/donation-api/pkg/service/auth"
	donationsvc "github.com/sevatrust/donation-api/pkg/service/donation"
	"github.com/sevatrust/donation-api/webapi/common"
)

// SignatureHeader is the webhook signature header set by the gateway.
const SignatureHeader = "X-Razorpay-Signature"

// Routes registers the donation endpoints. The webhook endpoint is public;
// the gateway authenticates itself through the body signature instead of a
// bearer token.
func Routes(app *fiber.App, donationSvc *donationsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/donations", middleware.JwtProtected(cfg.Auth.Jwt), Create(donationSvc, authSvc))
	app.Post("/donations/verify", middleware.JwtProtected(cfg.Auth.Jwt), Verify(donationSvc))
	app.Post("/webhooks/razorpay", Webhook(donationSvc))
}

// Create starts a donation attempt: a pending record plus a gateway order
// the client opens checkout with.
func Create(donationSvc *donationsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil,
				fiber.StatusUnauthorized)
		}
		userID, err := authSvc.CurrentUserID(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err,
				fiber.StatusUnauthorized)
		}

		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err
		}

		result, err := donationSvc.Create(c.Context(), userID, input.Amount)
		if err != nil {
			switch {
			case errors.Is(err, domaindonation.ErrInvalidAmount):
				return common.ProblemDetailsJSON(c, "Invalid amount", err,
					fiber.StatusBadRequest)
			case errors.Is(err, provider.ErrGatewayUnavailable):
				return common.ProblemDetailsJSON(c, "Payment gateway unavailable",
					nil, "Could not reach the payment gateway, please retry",
					fiber.StatusBadGateway)
			}
			return common.ProblemDetailsJSON(c, "Failed to create donation", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated,
			"Donation created", result)
	}
}

// Verify applies the checkout redirect confirmation and returns the
// donation's terminal state.
func Verify(donationSvc *donationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[VerifyInput](c)
		if input == nil {
			return err
		}

		d, err := donationSvc.ConfirmRedirect(c.Context(),
			input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature)
		if err != nil {
			if errors.Is(err, domaindonation.ErrDonationNotFound) {
				return common.ProblemDetailsJSON(c, "Unknown order", err,
					fiber.StatusNotFound)
			}
			return common.ProblemDetailsJSON(c, "Verification failed", err,
				common.ErrorToStatusCode(err))
		}

		message := "Payment verified"
		if d.Status == domaindonation.StatusFailed {
			message = "Payment verification failed"
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, message, d)
	}
}

// Webhook applies a gateway notification. The signature is checked over the
// exact raw body bytes; the payload must not be re-parsed or re-serialized
// before verification.
func Webhook(donationSvc *donationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawBody := c.Body()
		signature := c.Get(SignatureHeader)

		if err := donationSvc.HandleWebhook(c.Context(), rawBody, signature); err != nil {
			switch {
			case errors.Is(err, donationsvc.ErrWebhookAuth):
				return common.ProblemDetailsJSON(c, "Webhook authentication failed",
					nil, "Signature verification failed", fiber.StatusUnauthorized)
			case errors.Is(err, domaindonation.ErrDonationNotFound):
				return common.ProblemDetailsJSON(c, "Unknown order", err,
					fiber.StatusNotFound)
			}
			return common.ProblemDetailsJSON(c, "Webhook processing failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "ok", nil)
	}
}
