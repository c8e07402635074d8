package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/oriently/oriently-backend/internal/pkg/envutil"
	pkgerrors "github.com/oriently/oriently-backend/internal/pkg/errors"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
)

// AdminAuthService guards the submissions export. There is a single admin
// identity configured through the environment; no user table.
type AdminAuthService interface {
	Login(email, password string) (string, error)
	ValidateToken(token string) (string, error)
}

type AdminAuthConfig struct {
	AdminEmail   string
	PasswordHash string
	JWTSecret    []byte
	TokenTTL     time.Duration
}

func AdminAuthConfigFromEnv() (AdminAuthConfig, error) {
	email := envutil.Str("ADMIN_EMAIL", "")
	hash := envutil.Str("ADMIN_PASSWORD_HASH", "")
	secret := envutil.Str("JWT_SECRET", "")
	if email == "" || hash == "" || secret == "" {
		return AdminAuthConfig{}, fmt.Errorf("ADMIN_EMAIL, ADMIN_PASSWORD_HASH and JWT_SECRET must all be set")
	}
	return AdminAuthConfig{
		AdminEmail:   email,
		PasswordHash: hash,
		JWTSecret:    []byte(secret),
		TokenTTL:     envutil.DurationSeconds("JWT_TTL_SECONDS", 24*time.Hour),
	}, nil
}

type adminAuthService struct {
	log *logger.Logger
	cfg AdminAuthConfig
}

func NewAdminAuthService(log *logger.Logger, cfg AdminAuthConfig) AdminAuthService {
	return &adminAuthService{
		log: log.With("service", "AdminAuthService"),
		cfg: cfg,
	}
}

func (s *adminAuthService) Login(email, password string) (string, error) {
	if !strings.EqualFold(strings.TrimSpace(email), s.cfg.AdminEmail) {
		s.log.Warn("Login rejected, unknown email")
		return "", pkgerrors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("Login rejected, bad password")
		return "", pkgerrors.ErrUnauthorized
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   s.cfg.AdminEmail,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		Issuer:    "oriently",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("Admin logged in")
	return token, nil
}

// ValidateToken returns the subject of a valid, unexpired admin token.
func (s *adminAuthService) ValidateToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.cfg.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return "", pkgerrors.ErrUnauthorized
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", pkgerrors.ErrUnauthorized
	}
	return claims.Subject, nil
}
