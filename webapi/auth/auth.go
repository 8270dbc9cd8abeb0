// Package auth exposes the signup and login endpoints.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sevatrust/donation-api/pkg/domain/user"
	authsvc "github.com/sevatrust/donation-api/pkg/service/auth"
	"github.com/sevatrust/donation-api/webapi/common"
)

// Routes registers the public authentication endpoints.
func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/register", Register(authSvc))
	app.Post("/auth/login", Login(authSvc))
}

// Register creates a new donor account and its cause registration.
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Register(
			c.Context(), input.FullName, input.Email, input.Phone, input.Password)
		if err != nil {
			if errors.Is(err, user.ErrEmailTaken) {
				return common.ProblemDetailsJSON(c, "Email already registered",
					err, fiber.StatusConflict)
			}
			return common.ProblemDetailsJSON(c, "Registration failed", err,
				common.ErrorToStatusCode(err))
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated,
			"Registration successful", fiber.Map{"user": u, "token": token})
	}
}

// Login authenticates a user and returns a JWT token.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			if errors.Is(err, user.ErrUserUnauthorized) {
				return common.ProblemDetailsJSON(c, "Invalid email or password",
					nil, "Email or password is incorrect", fiber.StatusUnauthorized)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK,
			"Success login", fiber.Map{"token": token})
	}
}
