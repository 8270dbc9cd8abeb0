// Package app assembles the services from their infrastructure dependencies.
package app

import (
	"github.com/sevatrust/donation-api/pkg/config"
	"github.com/sevatrust/donation-api/pkg/service/admin"
	"github.com/sevatrust/donation-api/pkg/service/auth"
	"github.com/sevatrust/donation-api/pkg/service/donation"
	"github.com/sevatrust/donation-api/pkg/service/user"
)

// App wires the services on top of the injected dependencies.
type App struct {
	Deps   *config.Deps
	Config *config.App

	AuthService     *auth.Service
	UserService     *user.Service
	DonationService *donation.Service
	AdminService    *admin.Service
}

// New builds the service graph from deps and cfg.
func New(deps *config.Deps, cfg *config.App) *App {
	return &App{
		Deps:   deps,
		Config: cfg,
		AuthService: auth.New(
			deps.Users, deps.Registrations, cfg.Auth.Jwt, deps.Logger),
		UserService: user.New(
			deps.Users, deps.Registrations, deps.Donations, deps.Logger),
		DonationService: donation.New(
			deps.Donations, deps.OrderIssuer, cfg.Razorpay, deps.Logger),
		AdminService: admin.New(
			deps.Donations, deps.Registrations, deps.AdminLogs, deps.Logger),
	}
}
