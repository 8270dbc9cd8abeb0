// Package initializer builds the infrastructure dependency graph the server
// starts from: logger, database, repositories and the payment gateway client.
package initializer

import (
	"fmt"

	"github.com/sevatrust/donation-api/infra"
	infraprovider "github.com/sevatrust/donation-api/infra/provider"
	adminlogrepo "github.com/sevatrust/donation-api/infra/repository/adminlog"
	donationrepo "github.com/sevatrust/donation-api/infra/repository/donation"
	registrationrepo "github.com/sevatrust/donation-api/infra/repository/registration"
	userrepo "github.com/sevatrust/donation-api/infra/repository/user"
	"github.com/sevatrust/donation-api/pkg/config"
)

// InitializeDependencies wires all application dependencies from cfg.
func InitializeDependencies(cfg *config.App) (*config.Deps, error) {
	deps := &config.Deps{Config: cfg}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	if err := infra.RunMigrations(cfg.DB.Url); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	deps.Users = userrepo.New(db)
	deps.Registrations = registrationrepo.New(db)
	deps.Donations = donationrepo.New(db)
	deps.AdminLogs = adminlogrepo.New(db)
	deps.OrderIssuer = infraprovider.NewRazorpayOrderIssuer(cfg.Razorpay, logger)

	logger.Info("dependencies initialized", "env", cfg.Env)
	return deps, nil
}
