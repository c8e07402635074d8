package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/oriently/oriently-backend/internal/data/repos/testutil"
	pkgerrors "github.com/oriently/oriently-backend/internal/pkg/errors"
)

func TestCitySearchMatchesSubstring(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewCityRepo(tx, testutil.Logger(t))

	got, err := repo.Search(ctx, nil, "MILA", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("no match for MILA")
	}
	if got[0].City != "Milano" {
		t.Fatalf("unexpected first match: %q", got[0].City)
	}
}

func TestCitySearchEmptyQueryReturnsNothing(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewCityRepo(tx, testutil.Logger(t))

	got, err := repo.Search(ctx, nil, "  ", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}

func TestCitySearchClampsLimit(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewCityRepo(tx, testutil.Logger(t))

	got, err := repo.Search(ctx, nil, "o", 5000)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) > 10 {
		t.Fatalf("limit not clamped: got %d rows", len(got))
	}
}

func TestCityGetByNameIgnoresCase(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewCityRepo(tx, testutil.Logger(t))

	got, err := repo.GetByName(ctx, nil, "nApOlI")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.City != "Napoli" {
		t.Fatalf("unexpected city: %q", got.City)
	}
	if got.Region != "Campania" {
		t.Fatalf("unexpected region: %q", got.Region)
	}
}

func TestCityGetByNameErrors(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewCityRepo(tx, testutil.Logger(t))

	if _, err := repo.GetByName(ctx, nil, "Atlantide"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByName(ctx, nil, ""); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
