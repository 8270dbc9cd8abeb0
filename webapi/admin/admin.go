// Package admin exposes the dashboard, listing and CSV export endpoints.
// Every route requires the admin role.
package admin

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sevatrust/donation-api/pkg/config"
	"github.com/sevatrust/donation-api/pkg/domain/user"
	"github.com/sevatrust/donation-api/pkg/middleware"
	"github.com/sevatrust/donation-api/pkg/repository"
	adminsvc "github.com/sevatrust/donation-api/pkg/service/admin"
	authsvc "github.com/sevatrust/donation-api/pkg/service/auth"
	"github.com/sevatrust/donation-api/webapi/common"
)

// Routes registers the admin endpoints.
func Routes(app *fiber.App, adminSvc *adminsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	group := app.Group("/admin",
		middleware.JwtProtected(cfg.Auth.Jwt),
		middleware.RequireRole(user.RoleAdmin),
	)
	group.Get("/dashboard", Dashboard(adminSvc, authSvc))
	group.Get("/registrations", ListRegistrations(adminSvc, authSvc))
	group.Get("/donations", ListDonations(adminSvc, authSvc))
	group.Get("/export/registrations", ExportRegistrations(adminSvc, authSvc))
	group.Get("/export/donations", ExportDonations(adminSvc, authSvc))
}

// currentAdmin extracts the caller's user id from the JWT. On failure it
// writes the problem response and reports false.
func currentAdmin(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		_ = common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		return uuid.Nil, false
	}
	id, err := authSvc.CurrentUserID(token)
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}

// Dashboard returns platform-wide aggregate stats.
func Dashboard(adminSvc *adminsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := currentAdmin(c, authSvc)
		if !ok {
			return nil
		}
		stats, err := adminSvc.DashboardStats(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load dashboard", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Dashboard stats", stats)
	}
}

func listFilter(c *fiber.Ctx) repository.ListFilter {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	return repository.ListFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}
}

// ListRegistrations returns a paginated registration listing.
func ListRegistrations(adminSvc *adminsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := currentAdmin(c, authSvc)
		if !ok {
			return nil
		}
		page, err := adminSvc.ListRegistrations(c.Context(), id, listFilter(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list registrations", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Registrations", page)
	}
}

// ListDonations returns a paginated donation listing.
func ListDonations(adminSvc *adminsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := currentAdmin(c, authSvc)
		if !ok {
			return nil
		}
		page, err := adminSvc.ListDonations(c.Context(), id, listFilter(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list donations", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Donations", page)
	}
}

func sendCSV(c *fiber.Ctx, name string, data []byte) error {
	filename := name + "_" + time.Now().UTC().Format("2006-01-02") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ExportRegistrations streams all registrations as a CSV attachment.
func ExportRegistrations(adminSvc *adminsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := currentAdmin(c, authSvc)
		if !ok {
			return nil
		}
		data, err := adminSvc.ExportRegistrationsCSV(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to export registrations", err)
		}
		return sendCSV(c, "registrations", data)
	}
}

// ExportDonations streams all donations as a CSV attachment.
func ExportDonations(adminSvc *adminsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := currentAdmin(c, authSvc)
		if !ok {
			return nil
		}
		data, err := adminSvc.ExportDonationsCSV(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to export donations", err)
		}
		return sendCSV(c, "donations", data)
	}
}
