package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oriently/oriently-backend/internal/data/repos"
	"github.com/oriently/oriently-backend/internal/data/repos/testutil"
	types "github.com/oriently/oriently-backend/internal/domain"
	pkgerrors "github.com/oriently/oriently-backend/internal/pkg/errors"
)

type fakeNotifier struct {
	sent bool
	last ProfileEmail
}

func (f *fakeNotifier) SendProfileEmail(_ context.Context, req ProfileEmail) bool {
	f.last = req
	return f.sent
}

type fakeIdempotencyStore struct {
	claimed bool
	prevID  uuid.UUID
	err     error
}

func (f *fakeIdempotencyStore) Claim(_ context.Context, _ string, _ uuid.UUID) (bool, uuid.UUID, error) {
	return f.claimed, f.prevID, f.err
}

func (f *fakeIdempotencyStore) Release(_ context.Context, _ string) error { return nil }

func (f *fakeIdempotencyStore) Close() error { return nil }

// memIdemStore is a stateful in-memory stand-in with real SETNX semantics.
type memIdemStore struct {
	keys map[string]uuid.UUID
}

func newMemIdemStore() *memIdemStore {
	return &memIdemStore{keys: map[string]uuid.UUID{}}
}

func (m *memIdemStore) Claim(_ context.Context, key string, id uuid.UUID) (bool, uuid.UUID, error) {
	if prev, ok := m.keys[key]; ok {
		return false, prev, nil
	}
	m.keys[key] = id
	return true, id, nil
}

func (m *memIdemStore) Release(_ context.Context, key string) error {
	delete(m.keys, key)
	return nil
}

func (m *memIdemStore) Close() error { return nil }

// flakyRepo fails the first failuresLeft inserts, then delegates.
type flakyRepo struct {
	repos.SubmissionRepo
	failuresLeft int
}

func (f *flakyRepo) Create(ctx context.Context, tx *gorm.DB, sub *types.QuizSubmission) (*types.QuizSubmission, error) {
	if f.failuresLeft > 0 {
		f.failuresLeft--
		return nil, fmt.Errorf("connection reset by peer")
	}
	return f.SubmissionRepo.Create(ctx, tx, sub)
}

func fullAnswers() []types.Answer {
	return []types.Answer{
		{QuestionID: "interests", Value: "technology"},
		{QuestionID: "work_style", Value: "independent"},
		{QuestionID: "problem_solving", Value: "logical"},
		{QuestionID: "learning_style", Value: "theory"},
		{QuestionID: "career_goal", Value: "expertise"},
	}
}

func validSubmitRequest() SubmitRequest {
	return SubmitRequest{
		FirstName:        "Giulia",
		Email:            "giulia@example.com",
		City:             "Milano",
		Province:         "MI",
		Region:           "Lombardia",
		GDPRConsent:      true,
		Answers:          fullAnswers(),
		Profile:          types.Profile{ID: "analytical", Title: "Analista Strategico"},
		GeneratedProfile: "Ciao Giulia! Sei un'analista.",
		SuggestedCourses: []string{"A", "B", "C"},
	}
}

func newSubmissionService(t *testing.T, notifier NotificationService, idem *fakeIdempotencyStore) (SubmissionService, repos.SubmissionRepo) {
	t.Helper()
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	repo := repos.NewSubmissionRepo(tx, log)
	var svc SubmissionService
	if idem != nil {
		svc = NewSubmissionService(log, testBank(t), repo, notifier, idem)
	} else {
		svc = NewSubmissionService(log, testBank(t), repo, notifier, nil)
	}
	return svc, repo
}

func TestSubmitPersistsAndNotifies(t *testing.T) {
	notifier := &fakeNotifier{sent: true}
	svc, repo := newSubmissionService(t, notifier, nil)

	result, err := svc.Submit(context.Background(), validSubmitRequest())
	require.NoError(t, err)
	require.False(t, result.Duplicate)
	require.True(t, result.EmailSent)
	require.NotEqual(t, uuid.Nil, result.Submission.ID)

	stored, err := repo.GetByID(context.Background(), nil, result.Submission.ID)
	require.NoError(t, err)
	require.Equal(t, "giulia@example.com", stored.Email)
	require.Equal(t, "Italy", stored.Country)
	require.True(t, stored.GDPRConsent)

	require.Equal(t, "giulia@example.com", notifier.last.Email)
	require.Equal(t, []string{"A", "B", "C"}, notifier.last.SuggestedCourses)
}

func TestSubmitSucceedsWhenEmailFails(t *testing.T) {
	svc, repo := newSubmissionService(t, &fakeNotifier{sent: false}, nil)

	result, err := svc.Submit(context.Background(), validSubmitRequest())
	require.NoError(t, err)
	require.False(t, result.EmailSent)

	_, err = repo.GetByID(context.Background(), nil, result.Submission.ID)
	require.NoError(t, err)
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SubmitRequest)
	}{
		{"missing first name", func(r *SubmitRequest) { r.FirstName = "  " }},
		{"missing email", func(r *SubmitRequest) { r.Email = "" }},
		{"malformed email", func(r *SubmitRequest) { r.Email = "not-an-email" }},
		{"missing city", func(r *SubmitRequest) { r.City = "" }},
		{"no gdpr consent", func(r *SubmitRequest) { r.GDPRConsent = false }},
		{"unanswered question", func(r *SubmitRequest) { r.Answers = r.Answers[:3] }},
		{"no answers", func(r *SubmitRequest) { r.Answers = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newSubmissionService(t, &fakeNotifier{sent: true}, nil)
			req := validSubmitRequest()
			tc.mutate(&req)

			require.ErrorIs(t, svc.Validate(req), pkgerrors.ErrInvalidArgument)

			_, err := svc.Submit(context.Background(), req)
			require.ErrorIs(t, err, pkgerrors.ErrInvalidArgument)
		})
	}
}

func TestSubmitDuplicateAnswersForSameQuestionAccepted(t *testing.T) {
	svc, _ := newSubmissionService(t, &fakeNotifier{sent: true}, nil)
	req := validSubmitRequest()
	req.Answers = append(req.Answers, types.Answer{QuestionID: "interests", Value: "data"})

	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
}

func TestSubmitIdempotencyReplay(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	repo := repos.NewSubmissionRepo(tx, log)

	prev := testutil.SeedSubmission(t, context.Background(), tx, "prima@example.com")
	idem := &fakeIdempotencyStore{claimed: false, prevID: prev.ID}
	svc := NewSubmissionService(log, testBank(t), repo, &fakeNotifier{sent: true}, idem)

	req := validSubmitRequest()
	req.IdempotencyKey = "abc-123"

	result, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.Duplicate)
	require.Equal(t, prev.ID, result.Submission.ID)
	require.Equal(t, "prima@example.com", result.Submission.Email)

	// No second row was inserted.
	total, err := repo.Count(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

// A retry after a failed insert must be treated as a fresh submission, not
// answered as a duplicate of a row that was never stored.
func TestSubmitRetryAfterInsertFailure(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	base := repos.NewSubmissionRepo(tx, log)
	repo := &flakyRepo{SubmissionRepo: base, failuresLeft: 1}
	store := newMemIdemStore()
	svc := NewSubmissionService(log, testBank(t), repo, &fakeNotifier{sent: true}, store)

	req := validSubmitRequest()
	req.IdempotencyKey = "retry-1"

	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
	require.NotContains(t, store.keys, "retry-1", "claim survived the failed insert")

	result, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.Duplicate)

	total, err := base.Count(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	stored, err := base.GetByID(context.Background(), nil, result.Submission.ID)
	require.NoError(t, err)
	require.Equal(t, "giulia@example.com", stored.Email)
}

// A claim whose submission id is missing from storage is stale, not a
// replay: the submit proceeds and the key is repointed at the new row.
func TestSubmitStaleClaimResubmits(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	repo := repos.NewSubmissionRepo(tx, log)
	store := newMemIdemStore()
	store.keys["key-x"] = uuid.New() // claimed, never persisted
	svc := NewSubmissionService(log, testBank(t), repo, &fakeNotifier{sent: true}, store)

	req := validSubmitRequest()
	req.IdempotencyKey = "key-x"

	result, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.Duplicate)

	total, err := repo.Count(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, result.Submission.ID, store.keys["key-x"])
}

func TestSubmitProceedsWhenIdempotencyStoreFails(t *testing.T) {
	idem := &fakeIdempotencyStore{err: fmt.Errorf("redis down")}
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	repo := repos.NewSubmissionRepo(tx, log)
	svc := NewSubmissionService(log, testBank(t), repo, &fakeNotifier{sent: true}, idem)

	req := validSubmitRequest()
	req.IdempotencyKey = "abc-123"

	result, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.Duplicate)
}

func TestSubmitWithoutIdempotencyStoreIgnoresKey(t *testing.T) {
	svc, _ := newSubmissionService(t, &fakeNotifier{sent: true}, nil)
	req := validSubmitRequest()
	req.IdempotencyKey = "abc-123"

	result, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.Duplicate)
}
