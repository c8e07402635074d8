package app

import (
	internalhttp "github.com/oriently/oriently-backend/internal/http"
	"github.com/oriently/oriently-backend/internal/observability"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
)

func wireServer(log *logger.Logger, handlers Handlers, mw Middleware) *internalhttp.Server {
	return internalhttp.NewServer(internalhttp.RouterConfig{
		Log:            log,
		TracingEnabled: observability.Enabled(),
		HealthHandler:  handlers.Health,
		QuizHandler:    handlers.Quiz,
		EmailHandler:   handlers.Email,
		CityHandler:    handlers.City,
		AdminHandler:   handlers.Admin,
		AuthMiddleware: mw.Auth,
	})
}
