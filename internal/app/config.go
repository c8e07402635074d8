package app

import (
	"github.com/oriently/oriently-backend/internal/pkg/envutil"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
	"github.com/oriently/oriently-backend/internal/services"
)

type Config struct {
	Environment string
	Version     string
	Port        string

	// AdminAuth is nil when the admin surface is not configured; the
	// admin routes are then not mounted.
	AdminAuth *services.AdminAuthConfig
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Environment: envutil.Str("APP_ENV", "development"),
		Version:     envutil.Str("APP_VERSION", "dev"),
		Port:        envutil.Str("PORT", "8080"),
	}

	adminCfg, err := services.AdminAuthConfigFromEnv()
	if err != nil {
		log.Warn("Admin auth not configured, admin routes disabled", "error", err.Error())
	} else {
		cfg.AdminAuth = &adminCfg
	}

	return cfg
}
