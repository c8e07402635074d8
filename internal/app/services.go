package app

import (
	"fmt"

	"github.com/oriently/oriently-backend/internal/pkg/logger"
	"github.com/oriently/oriently-backend/internal/quiz"
	"github.com/oriently/oriently-backend/internal/services"
)

type Services struct {
	Profile      services.ProfileService
	Notification services.NotificationService
	Submission   services.SubmissionService
	City         services.CityService

	// AdminAuth is nil when Config.AdminAuth is nil.
	AdminAuth services.AdminAuthService
}

func wireServices(log *logger.Logger, cfg Config, bank *quiz.Bank, reposet Repos, clients Clients) (Services, error) {
	var svcs Services

	svcs.Profile = services.NewProfileService(log, bank, clients.OpenAI)
	svcs.Notification = services.NewNotificationService(log, clients.MailerLite)
	svcs.Submission = services.NewSubmissionService(log, bank, reposet.Submission, svcs.Notification, clients.Idempotency)

	cityService, err := services.NewCityService(log, reposet.City)
	if err != nil {
		return Services{}, fmt.Errorf("init city service: %w", err)
	}
	svcs.City = cityService

	if cfg.AdminAuth != nil {
		svcs.AdminAuth = services.NewAdminAuthService(log, *cfg.AdminAuth)
	}

	return svcs, nil
}
