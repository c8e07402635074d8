package app

import (
	httpH "github.com/oriently/oriently-backend/internal/http/handlers"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
	"github.com/oriently/oriently-backend/internal/quiz"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Quiz   *httpH.QuizHandler
	Email  *httpH.EmailHandler
	City   *httpH.CityHandler
	Admin  *httpH.AdminHandler
}

func wireHandlers(log *logger.Logger, bank *quiz.Bank, svcs Services) Handlers {
	handlers := Handlers{
		Health: httpH.NewHealthHandler(),
		Quiz:   httpH.NewQuizHandler(log, bank, svcs.Profile, svcs.Submission),
		Email:  httpH.NewEmailHandler(log, svcs.Notification),
		City:   httpH.NewCityHandler(log, svcs.City),
	}
	if svcs.AdminAuth != nil {
		handlers.Admin = httpH.NewAdminHandler(log, svcs.AdminAuth, svcs.Submission)
	}
	return handlers
}
