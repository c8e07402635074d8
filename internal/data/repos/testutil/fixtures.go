package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/oriently/oriently-backend/internal/domain"
)

// SeedSubmission inserts a minimal valid submission for repo tests.
func SeedSubmission(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.QuizSubmission {
	tb.Helper()
	sub := &types.QuizSubmission{
		ID:               uuid.New(),
		FirstName:        "Giulia",
		Email:            email,
		City:             "Milano",
		Province:         "MI",
		Region:           "Lombardia",
		Country:          "Italy",
		GDPRConsent:      true,
		Answers:          datatypes.JSON([]byte(`[{"questionId":"interests","answer":"technology"}]`)),
		ProfileResult:    datatypes.JSON([]byte(`{"id":"digital","title":"Innovatore Digitale"}`)),
		SuggestedCourses: datatypes.JSON([]byte(`["Corso Full Stack Developer"]`)),
		CreatedAt:        time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(sub).Error; err != nil {
		tb.Fatalf("seed submission: %v", err)
	}
	return sub
}
