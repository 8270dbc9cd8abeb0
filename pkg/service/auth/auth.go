// Package auth provides registration, login and JWT token handling.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sevatrust/donation-api/pkg/config"
	"github.com/sevatrust/donation-api/pkg/domain"
	"github.com/sevatrust/donation-api/pkg/domain/registration"
	"github.com/sevatrust/donation-api/pkg/domain/user"
	"github.com/sevatrust/donation-api/pkg/repository"
	"github.com/sevatrust/donation-api/pkg/utils"
)

// dummyHash keeps the bcrypt comparison running even for unknown emails so
// login time does not reveal whether an account exists.
const dummyHash = "$2a$14$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Service handles user registration and authentication.
type Service struct {
	users         repository.UserRepository
	registrations repository.RegistrationRepository
	cfg           *config.Jwt
	logger        *slog.Logger
}

// New creates an auth Service.
func New(
	users repository.UserRepository,
	registrations repository.RegistrationRepository,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:         users,
		registrations: registrations,
		cfg:           cfg,
		logger:        logger,
	}
}

// Register creates a user account plus its cause registration.
// Returns user.ErrEmailTaken when the email already exists.
func (s *Service) Register(
	ctx context.Context,
	fullName, email, phone, password string,
) (*user.User, error) {
	log := s.logger.With("operation", "auth.Register", "email", email)

	u, err := user.New(fullName, email, phone, password)
	if err != nil {
		return nil, err
	}
	if err = s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, user.ErrEmailTaken
		}
		log.Error("failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	reg := registration.New(u.ID, registration.DefaultCause)
	if err = s.registrations.Create(ctx, reg); err != nil {
		log.Error("failed to create registration", "user_id", u.ID, "error", err)
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	log.Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login authenticates by email and password. Failures are uniformly
// user.ErrUserUnauthorized to prevent account enumeration.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (*user.User, error) {
	log := s.logger.With("operation", "auth.Login")

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		// Burn a bcrypt comparison anyway to keep timing flat.
		_ = utils.CheckPasswordHash(password, dummyHash)
		log.Warn("login failed", "error", user.ErrUserUnauthorized)
		return nil, user.ErrUserUnauthorized
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		log.Warn("login failed", "user_id", u.ID)
		return nil, user.ErrUserUnauthorized
	}

	log.Info("login successful", "user_id", u.ID)
	return u, nil
}

// GenerateToken signs a JWT for the given user with HS256.
func (s *Service) GenerateToken(u *user.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["email"] = u.Email
	claims["role"] = string(u.Role)
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()

	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("failed to sign token", "user_id", u.ID, "error", err)
		return "", err
	}
	return signed, nil
}

// CurrentUserID extracts the user id claim from a verified token.
func (s *Service) CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("unexpected token claims")
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("token missing user_id claim")
	}
	return uuid.Parse(raw)
}

// CurrentRole extracts the role claim from a verified token.
func (s *Service) CurrentRole(token *jwt.Token) (user.Role, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("unexpected token claims")
	}
	raw, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("token missing role claim")
	}
	return user.Role(raw), nil
}
