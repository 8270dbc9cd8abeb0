package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, optionally loading one of
// the given .env files first. Paths are tried in order; the nearest match
// walking up from the working directory wins.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	if len(envFilePath) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found in current directory")
		}
		return loadFromEnv()
	}

	for _, path := range envFilePath {
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		logger.Info("Environment loaded", "path", foundPath)
		return loadFromEnv()
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"db", maskValue(cfg.DB.Url),
		"jwt_expiry", cfg.Auth.Jwt.Expiry,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"razorpay_key_id", maskValue(cfg.Razorpay.KeyID),
		"razorpay_currency", cfg.Razorpay.Currency,
		"razorpay_order_timeout", cfg.Razorpay.OrderTimeout,
	)
	return &cfg, nil
}

// FindEnvFile searches for the nearest file with the given name, walking up
// from the current working directory. An empty name means ".env".
func FindEnvFile(filename string) (string, error) {
	if filename == "" {
		filename = ".env"
	}
	curr, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(curr, filename)
		if _, err = os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(curr)
		if parent == curr {
			break
		}
		curr = parent
	}
	return "", os.ErrNotExist
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
