// Package user exposes the donor profile and donation history endpoints.
package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sevatrust/donation-api/pkg/config"
	"github.com/sevatrust/donation-api/pkg/middleware"
	authsvc "github.com/sevatrust/donation-api/pkg/service/auth"
	usersvc "github.com/sevatrust/donation-api/pkg/service/user"
	"github.com/sevatrust/donation-api/webapi/common"
)

// Routes registers the authenticated donor endpoints.
func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Get("/user/profile", middleware.JwtProtected(cfg.Auth.Jwt), GetProfile(userSvc, authSvc))
	app.Get("/user/donations", middleware.JwtProtected(cfg.Auth.Jwt), GetDonationHistory(userSvc, authSvc))
}

// GetProfile returns the caller's account and registration details.
func GetProfile(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
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
		profile, err := userSvc.GetProfile(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load profile", err,
				common.ErrorToStatusCode(err))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile", profile)
	}
}

// GetDonationHistory returns the caller's donation attempts with aggregate
// stats.
func GetDonationHistory(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
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
		history, err := userSvc.GetDonationHistory(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load donations", err,
				common.ErrorToStatusCode(err))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Donation history", history)
	}
}
