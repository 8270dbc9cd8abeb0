// Package webapi provides HTTP handlers and API endpoints for the donation
// platform. It is organized into sub-packages for different domains:
// - auth: signup and login endpoints
// - user: donor profile and donation history endpoints
// - donation: checkout, redirect verification and webhook endpoints
// - admin: dashboard, listings and CSV exports
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sevatrust/donation-api/pkg/app"
	adminweb "github.com/sevatrust/donation-api/webapi/admin"
	authweb "github.com/sevatrust/donation-api/webapi/auth"
	"github.com/sevatrust/donation-api/webapi/common"
	donationweb "github.com/sevatrust/donation-api/webapi/donation"
	userweb "github.com/sevatrust/donation-api/webapi/user"
)

// SetupApp initializes Fiber with the shared middleware and all routes.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return common.ProblemDetailsJSON(c, fe.Message, nil, fe.Code)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Rate limiting keyed on the client IP; X-Forwarded-For takes precedence
	// so the limiter works behind a load balancer.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Donation API is running!")
	})

	authweb.Routes(fiberApp, a.AuthService)
	userweb.Routes(fiberApp, a.UserService, a.AuthService, a.Config)
	donationweb.Routes(fiberApp, a.DonationService, a.AuthService, a.Config)
	adminweb.Routes(fiberApp, a.AdminService, a.AuthService, a.Config)
	return fiberApp
}
