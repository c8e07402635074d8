package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/oriently/oriently-backend/internal/pkg/logger"
	"github.com/oriently/oriently-backend/internal/services"
)

func protectedEngine(t *testing.T) (*gin.Engine, services.AdminAuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("segreto"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	authService := services.NewAdminAuthService(log, services.AdminAuthConfig{
		AdminEmail:   "admin@oriently.it",
		PasswordHash: string(hash),
		JWTSecret:    []byte("test-secret"),
		TokenTTL:     time.Hour,
	})

	r := gin.New()
	r.Use(NewAuthMiddleware(log, authService).RequireAdmin())
	r.GET("/api/admin/submissions", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, authService
}

func TestRequireAdminRejectsMissingToken(t *testing.T) {
	r, _ := protectedEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdminRejectsBadToken(t *testing.T) {
	r, _ := protectedEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer ab.cd.ef")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdminAcceptsValidToken(t *testing.T) {
	r, authService := protectedEngine(t)

	token, err := authService.Login("admin@oriently.it", "segreto")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
