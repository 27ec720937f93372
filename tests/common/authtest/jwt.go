//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"store-fulfillment/internal/domain/user"
	"store-fulfillment/internal/handler/middleware"
	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/pkg/jwt"
	"store-fulfillment/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) service(t *testing.T, duration time.Duration) *jwt.Service {
	t.Helper()
	subject, err := uuid.Parse(h.cfg.ServiceSubject)
	require.NoError(t, err)
	return jwt.NewService(h.cfg.Secret, duration, subject)
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := h.service(t, duration).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) ServiceToken(t *testing.T) string {
	t.Helper()
	token, err := h.service(t, time.Hour).GenerateServiceToken()
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service(t, time.Millisecond).GenerateToken(userID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}

// Middleware builds the production auth middleware over the same secret.
func (h *JWTHelper) Middleware(t *testing.T) *middleware.AuthMiddleware {
	t.Helper()
	return middleware.NewAuthMiddleware(usecase.NewTokenValidator(h.service(t, time.Hour)))
}
