package repos

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/oriently/oriently-backend/internal/data/repos/testutil"
	pkgerrors "github.com/oriently/oriently-backend/internal/pkg/errors"
)

func TestSubmissionCreateAssignsID(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewSubmissionRepo(tx, testutil.Logger(t))

	sub := testutil.SeedSubmission(t, ctx, tx, "uno@example.com")
	sub.ID = uuid.Nil
	sub.Email = "due@example.com"

	created, err := repo.Create(ctx, nil, sub)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("create did not assign an id")
	}
}

func TestSubmissionGetByID(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewSubmissionRepo(tx, testutil.Logger(t))

	seeded := testutil.SeedSubmission(t, ctx, tx, "tre@example.com")

	got, err := repo.GetByID(ctx, nil, seeded.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "tre@example.com" {
		t.Fatalf("unexpected email: %q", got.Email)
	}
	if !got.GDPRConsent {
		t.Fatal("gdpr consent flag lost")
	}

	_, err = repo.GetByID(ctx, nil, uuid.New())
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmissionListOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewSubmissionRepo(tx, testutil.Logger(t))

	for i := 0; i < 5; i++ {
		sub := testutil.SeedSubmission(t, ctx, tx, fmt.Sprintf("user%d@example.com", i))
		// Spread created_at so the ordering is observable.
		if err := tx.Exec(
			"UPDATE quiz_submissions SET created_at = datetime('now', ?) WHERE id = ?",
			fmt.Sprintf("-%d minutes", 5-i), sub.ID,
		).Error; err != nil {
			t.Fatalf("backdate: %v", err)
		}
	}

	got, err := repo.List(ctx, nil, 3, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("unexpected page size: got=%d want=3", len(got))
	}
	if got[0].Email != "user4@example.com" {
		t.Fatalf("newest submission not first: %q", got[0].Email)
	}

	rest, err := repo.List(ctx, nil, 3, 3)
	if err != nil {
		t.Fatalf("list offset: %v", err)
	}
	if len(rest) != 2 {
		t.Fatalf("unexpected remainder: got=%d want=2", len(rest))
	}
}

func TestSubmissionCount(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewSubmissionRepo(tx, testutil.Logger(t))

	before, err := repo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	testutil.SeedSubmission(t, ctx, tx, "conta@example.com")

	after, err := repo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if after != before+1 {
		t.Fatalf("count did not grow: before=%d after=%d", before, after)
	}
}
