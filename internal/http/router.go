package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/oriently/oriently-backend/internal/http/handlers"
	httpMW "github.com/oriently/oriently-backend/internal/http/middleware"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	TracingEnabled bool

	HealthHandler *httpH.HealthHandler
	QuizHandler   *httpH.QuizHandler
	EmailHandler  *httpH.EmailHandler
	CityHandler   *httpH.CityHandler

	AdminHandler   *httpH.AdminHandler
	AuthMiddleware *httpMW.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware("oriently"))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Quiz (public)
		if cfg.QuizHandler != nil {
			api.GET("/questions", cfg.QuizHandler.ListQuestions)
			api.POST("/generate-profile", cfg.QuizHandler.GenerateProfile)
			api.POST("/quiz-submit", cfg.QuizHandler.SubmitQuiz)
		}

		// Email (public, always 200)
		if cfg.EmailHandler != nil {
			api.POST("/send-quiz-result", cfg.EmailHandler.SendQuizResult)
		}

		// Cities (public)
		if cfg.CityHandler != nil {
			api.GET("/cities", cfg.CityHandler.SearchCities)
			api.GET("/cities/:name", cfg.CityHandler.GetCity)
		}

		// Admin
		if cfg.AdminHandler != nil {
			api.POST("/admin/login", cfg.AdminHandler.Login)

			protected := api.Group("/admin")
			if cfg.AuthMiddleware != nil {
				protected.Use(cfg.AuthMiddleware.RequireAdmin())
			}
			protected.GET("/submissions", cfg.AdminHandler.ListSubmissions)
		}
	}

	return r
}
