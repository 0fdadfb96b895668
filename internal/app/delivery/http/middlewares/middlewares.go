package middlewares

import (
	"ptmd-service/internal/app/config"
	"ptmd-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	SessionService contracts.SessionService
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewMiddlewares(sessionService contracts.SessionService, internalConfig *config.InternalConfig, logger *zap.Logger) *Middlewares {
	return &Middlewares{
		SessionService: sessionService,
		InternalConfig: internalConfig,
		Log:            logger,
	}
}
