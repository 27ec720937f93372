package bootstrap

import (
	"time"

	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/pkg/jwt"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		panic("invalid JWT_DURATION: " + err.Error())
	}

	subject, err := uuid.Parse(cfg.JWT.ServiceSubject)
	if err != nil {
		panic("invalid JWT_SERVICE_SUBJECT: " + err.Error())
	}

	return jwt.NewService(cfg.JWT.Secret, duration, subject)
}
