package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	redisclient "github.com/oriently/oriently-backend/internal/clients/redis"
	"github.com/oriently/oriently-backend/internal/data/repos"
	types "github.com/oriently/oriently-backend/internal/domain"
	"github.com/oriently/oriently-backend/internal/pkg/ctxutil"
	pkgerrors "github.com/oriently/oriently-backend/internal/pkg/errors"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
	"github.com/oriently/oriently-backend/internal/quiz"
)

// SubmitRequest carries one completed quiz session.
type SubmitRequest struct {
	FirstName        string
	Email            string
	City             string
	Province         string
	Region           string
	Country          string
	GDPRConsent      bool
	Answers          []types.Answer
	Profile          types.Profile
	GeneratedProfile string
	SuggestedCourses []string

	// IdempotencyKey is optional. When set and a replay is detected the
	// stored submission is returned instead of inserting a second row.
	IdempotencyKey string
}

type SubmitResult struct {
	Submission *types.QuizSubmission
	Duplicate  bool
	EmailSent  bool
}

type SubmissionService interface {
	// Validate checks the contact fields, consent and answer completeness
	// without touching storage, so callers can reject bad input before
	// spending any remote calls.
	Validate(req SubmitRequest) error
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
	List(ctx context.Context, limit, offset int) ([]*types.QuizSubmission, int64, error)
}

type submissionService struct {
	log          *logger.Logger
	bank         *quiz.Bank
	repo         repos.SubmissionRepo
	notification NotificationService
	idempotency  redisclient.IdempotencyStore
}

// NewSubmissionService wires persistence and notification. The idempotency
// store may be nil; the key is then ignored, matching the original's
// behavior of allowing duplicate inserts on client retry.
func NewSubmissionService(
	log *logger.Logger,
	bank *quiz.Bank,
	repo repos.SubmissionRepo,
	notification NotificationService,
	idempotency redisclient.IdempotencyStore,
) SubmissionService {
	return &submissionService{
		log:          log.With("service", "SubmissionService"),
		bank:         bank,
		repo:         repo,
		notification: notification,
		idempotency:  idempotency,
	}
}

func (s *submissionService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	ctx = ctxutil.Default(ctx)
	log := s.log.With("email", req.Email)

	if err := s.Validate(req); err != nil {
		return nil, err
	}

	submissionID := uuid.New()

	// claimedKey is set only while this call holds the idempotency claim;
	// the claim is released again if the insert fails.
	claimedKey := ""
	if key := strings.TrimSpace(req.IdempotencyKey); key != "" && s.idempotency != nil {
		claimed, prevID, err := s.idempotency.Claim(ctx, key, submissionID)
		switch {
		case err != nil:
			// The store is a hardening layer, not a gate: proceed without it.
			log.Warn("Idempotency check failed, proceeding without dedup", "error", err.Error())
		case claimed:
			claimedKey = key
		default:
			prev, getErr := s.repo.GetByID(ctx, nil, prevID)
			if getErr == nil {
				log.Info("Idempotency replay detected", "submission_id", prevID)
				return &SubmitResult{Submission: prev, Duplicate: true}, nil
			}
			if !errors.Is(getErr, pkgerrors.ErrNotFound) {
				return nil, fmt.Errorf("load replayed submission: %w", getErr)
			}
			// The claimed id was never persisted: the earlier attempt
			// failed after claiming. Drop the stale claim and submit fresh.
			log.Warn("Idempotency claim points at a missing submission, resubmitting",
				"submission_id", prevID)
			if relErr := s.idempotency.Release(ctx, key); relErr != nil {
				log.Warn("Stale idempotency claim not released", "error", relErr.Error())
			} else if reclaimed, _, recErr := s.idempotency.Claim(ctx, key, submissionID); recErr == nil && reclaimed {
				claimedKey = key
			}
		}
	}

	sub, err := s.toModel(submissionID, req)
	if err != nil {
		return nil, err
	}

	// Persistence and notification both depend only on the resolved
	// profile, so they run concurrently; the response waits for both.
	var (
		created   *types.QuizSubmission
		emailSent bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var createErr error
		created, createErr = s.repo.Create(gctx, nil, sub)
		if createErr != nil {
			return fmt.Errorf("persist submission: %w", createErr)
		}
		return nil
	})
	g.Go(func() error {
		emailSent = s.notification.SendProfileEmail(gctx, ProfileEmail{
			FirstName:        req.FirstName,
			Email:            req.Email,
			Profile:          req.GeneratedProfile,
			SuggestedCourses: req.SuggestedCourses,
			City:             req.City,
			Province:         req.Province,
			Region:           req.Region,
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		if claimedKey != "" {
			if relErr := s.idempotency.Release(ctx, claimedKey); relErr != nil {
				log.Warn("Idempotency claim not released after failed insert", "error", relErr.Error())
			}
		}
		log.Error("Submission not saved", "error", err.Error())
		return nil, err
	}

	log.Info("Submission saved", "submission_id", created.ID, "email_sent", emailSent)
	return &SubmitResult{Submission: created, EmailSent: emailSent}, nil
}

func (s *submissionService) List(ctx context.Context, limit, offset int) ([]*types.QuizSubmission, int64, error) {
	ctx = ctxutil.Default(ctx)
	subs, err := s.repo.List(ctx, nil, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}
	total, err := s.repo.Count(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}
	return subs, total, nil
}

func (s *submissionService) Validate(req SubmitRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return fmt.Errorf("%w: first_name is required", pkgerrors.ErrInvalidArgument)
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: valid email is required", pkgerrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(req.City) == "" {
		return fmt.Errorf("%w: city is required", pkgerrors.ErrInvalidArgument)
	}
	if !req.GDPRConsent {
		return fmt.Errorf("%w: gdpr consent is required", pkgerrors.ErrInvalidArgument)
	}

	// Exactly one answer per question; a later answer for the same
	// question replaces the earlier one before the check.
	byQuestion := make(map[string]types.Answer, len(req.Answers))
	for _, a := range req.Answers {
		byQuestion[a.QuestionID] = a
	}
	for _, q := range s.bank.Questions {
		if _, ok := byQuestion[q.ID]; !ok {
			return fmt.Errorf("%w: question %q is unanswered", pkgerrors.ErrInvalidArgument, q.ID)
		}
	}
	return nil
}

func (s *submissionService) toModel(id uuid.UUID, req SubmitRequest) (*types.QuizSubmission, error) {
	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}
	profileJSON, err := json.Marshal(req.Profile)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	coursesJSON, err := json.Marshal(req.SuggestedCourses)
	if err != nil {
		return nil, fmt.Errorf("marshal courses: %w", err)
	}

	country := strings.TrimSpace(req.Country)
	if country == "" {
		country = "Italy"
	}

	return &types.QuizSubmission{
		ID:               id,
		FirstName:        strings.TrimSpace(req.FirstName),
		Email:            strings.TrimSpace(req.Email),
		City:             strings.TrimSpace(req.City),
		Province:         strings.TrimSpace(req.Province),
		Region:           strings.TrimSpace(req.Region),
		Country:          country,
		GDPRConsent:      req.GDPRConsent,
		Answers:          datatypes.JSON(answersJSON),
		ProfileResult:    datatypes.JSON(profileJSON),
		SuggestedCourses: datatypes.JSON(coursesJSON),
		CreatedAt:        time.Now().UTC(),
	}, nil
}
