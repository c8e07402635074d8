package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	pkgerrors "github.com/oriently/oriently-backend/internal/pkg/errors"
)

func newAuthService(t *testing.T, ttl time.Duration) AdminAuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("segretissimo"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAdminAuthService(testLogger(t), AdminAuthConfig{
		AdminEmail:   "admin@oriently.it",
		PasswordHash: string(hash),
		JWTSecret:    []byte("test-secret"),
		TokenTTL:     ttl,
	})
}

func TestAdminLoginAndValidate(t *testing.T) {
	svc := newAuthService(t, time.Hour)

	token, err := svc.Login("admin@oriently.it", "segretissimo")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "admin@oriently.it", subject)
}

func TestAdminLoginEmailIsCaseInsensitive(t *testing.T) {
	svc := newAuthService(t, time.Hour)

	_, err := svc.Login("ADMIN@Oriently.IT", "segretissimo")
	require.NoError(t, err)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t, time.Hour)

	_, err := svc.Login("admin@oriently.it", "sbagliata")
	require.ErrorIs(t, err, pkgerrors.ErrUnauthorized)

	_, err = svc.Login("intruso@example.com", "segretissimo")
	require.ErrorIs(t, err, pkgerrors.ErrUnauthorized)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t, time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	require.ErrorIs(t, err, pkgerrors.ErrUnauthorized)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newAuthService(t, -time.Minute)

	token, err := svc.Login("admin@oriently.it", "segretissimo")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.ErrorIs(t, err, pkgerrors.ErrUnauthorized)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	svc := newAuthService(t, time.Hour)
	other := NewAdminAuthService(testLogger(t), AdminAuthConfig{
		AdminEmail:   "admin@oriently.it",
		PasswordHash: "unused",
		JWTSecret:    []byte("another-secret"),
		TokenTTL:     time.Hour,
	})

	token, err := svc.Login("admin@oriently.it", "segretissimo")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.ErrorIs(t, err, pkgerrors.ErrUnauthorized)
}
