package user_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sevatrust/donation-api/internal/fixtures/mocks"
	"github.com/sevatrust/donation-api/pkg/config"
	"github.com/sevatrust/donation-api/pkg/domain"
	domainreg "github.com/sevatrust/donation-api/pkg/domain/registration"
	domainuser "github.com/sevatrust/donation-api/pkg/domain/user"
	authsvc "github.com/sevatrust/donation-api/pkg/service/auth"
	usersvc "github.com/sevatrust/donation-api/pkg/service/user"
	userweb "github.com/sevatrust/donation-api/webapi/user"
	"github.com/sevatrust/donation-api/webapi/common"
)

const jwtSecret = "user-test-secret"

func newApp(t *testing.T) (*fiber.App, *mocks.MockUserRepository, *mocks.MockRegistrationRepository, *mocks.MockDonationRepository) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := mocks.NewMockUserRepository(t)
	registrations := mocks.NewMockRegistrationRepository(t)
	donations := mocks.NewMockDonationRepository(t)

	cfg := &config.App{
		Auth: &config.Auth{Jwt: &config.Jwt{Secret: jwtSecret, Expiry: time.Hour}},
	}
	svc := usersvc.New(users, registrations, donations, logger)
	auth := authsvc.New(users, registrations, cfg.Auth.Jwt, logger)

	app := fiber.New()
	userweb.Routes(app, svc, auth, cfg)
	return app, users, registrations, donations
}

func bearer(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   "donor@example.com",
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return signed
}

func TestGetProfile_Success(t *testing.T) {
	t.Parallel()
	app, users, registrations, _ := newApp(t)

	u, err := domainuser.New("Asha Verma", "asha@example.com", "", "secret123")
	require.NoError(t, err)
	reg := domainreg.New(u.ID, "")

	users.On("Get", mock.Anything, u.ID).Return(u, nil)
	registrations.On("GetByUserID", mock.Anything, u.ID).Return(reg, nil)

	req := httptest.NewRequest(fiber.MethodGet, "/user/profile", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer(t, u.ID))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	data := response.Data.(map[string]any)
	assert.NotNil(t, data["user"])
	assert.NotNil(t, data["registration"])
}

func TestGetProfile_UserNotFound(t *testing.T) {
	t.Parallel()
	app, users, _, _ := newApp(t)
	userID := uuid.New()

	users.On("Get", mock.Anything, userID).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(fiber.MethodGet, "/user/profile", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer(t, userID))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetDonationHistory_Success(t *testing.T) {
	t.Parallel()
	app, _, _, donations := newApp(t)
	userID := uuid.New()

	donations.On("ListByUser", mock.Anything, userID).Return(nil, nil)

	req := httptest.NewRequest(fiber.MethodGet, "/user/donations", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer(t, userID))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
