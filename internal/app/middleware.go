package app

import (
	httpMW "github.com/oriently/oriently-backend/internal/http/middleware"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, svcs Services) Middleware {
	var mw Middleware
	if svcs.AdminAuth != nil {
		mw.Auth = httpMW.NewAuthMiddleware(log, svcs.AdminAuth)
	}
	return mw
}
