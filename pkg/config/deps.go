package config

import (
	"log/slog"

	"github.com/sevatrust/donation-api/pkg/provider"
	"github.com/sevatrust/donation-api/pkg/repository"
)

// Deps holds all infrastructure dependencies for building the app and services.
type Deps struct {
	Donations     repository.DonationRepository
	Users         repository.UserRepository
	Registrations repository.RegistrationRepository
	AdminLogs     repository.AdminLogRepository
	OrderIssuer   provider.OrderIssuer
	Logger        *slog.Logger
	Config        *App
}
