package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/oriently/oriently-backend/internal/domain"
	pkgerrors "github.com/oriently/oriently-backend/internal/pkg/errors"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
)

type SubmissionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sub *types.QuizSubmission) (*types.QuizSubmission, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.QuizSubmission, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.QuizSubmission, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type submissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	return &submissionRepo{db: db, log: baseLog.With("repo", "SubmissionRepo")}
}

func (r *submissionRepo) Create(ctx context.Context, tx *gorm.DB, sub *types.QuizSubmission) (*types.QuizSubmission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if sub == nil {
		return nil, fmt.Errorf("nil submission")
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}

	if err := transaction.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.QuizSubmission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.QuizSubmission
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *submissionRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.QuizSubmission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var results []*types.QuizSubmission
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.QuizSubmission{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
