// Package common holds the shared response envelope, RFC 9457 problem
// details and request binding helpers used by all handler packages.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sevatrust/donation-api/pkg/domain"
	"github.com/sevatrust/donation-api/pkg/domain/donation"
	"github.com/sevatrust/donation-api/pkg/domain/user"
	"github.com/sevatrust/donation-api/pkg/provider"
	donationsvc "github.com/sevatrust/donation-api/pkg/service/donation"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem response. Extra arguments may
// carry a detail string and an explicit status code; without a status the
// response defaults to 500.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, extra ...any) error {
	status := fiber.StatusInternalServerError
	detail := ""
	for _, e := range extra {
		switch v := e.(type) {
		case int:
			status = v
		case string:
			detail = v
		}
	}
	if detail == "" && err != nil {
		detail = err.Error()
	}

	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, donation.ErrDonationNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, donation.ErrInvalidAmount):
		return fiber.StatusBadRequest
	case errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, user.ErrUserUnauthorized),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, donationsvc.ErrWebhookAuth):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, provider.ErrGatewayUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it with
// go-playground/validator. On failure it writes the error response itself and
// returns a nil struct.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}
