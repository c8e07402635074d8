package repos

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	types "github.com/oriently/oriently-backend/internal/domain"
	pkgerrors "github.com/oriently/oriently-backend/internal/pkg/errors"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
)

type CityRepo interface {
	// Search matches cities by case-insensitive substring, capped at limit.
	Search(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.ItalianCity, error)
	// GetByName returns the city matching name exactly (case-insensitive).
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.ItalianCity, error)
}

type cityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCityRepo(db *gorm.DB, baseLog *logger.Logger) CityRepo {
	return &cityRepo{db: db, log: baseLog.With("repo", "CityRepo")}
}

func (r *cityRepo) Search(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.ItalianCity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []*types.ItalianCity{}, nil
	}
	if limit <= 0 || limit > 10 {
		limit = 10
	}

	var results []*types.ItalianCity
	if err := transaction.WithContext(ctx).
		Where("LOWER(city) LIKE ?", "%"+strings.ToLower(query)+"%").
		Order("city ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *cityRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.ItalianCity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.ErrInvalidArgument
	}

	var result types.ItalianCity
	err := transaction.WithContext(ctx).
		Where("LOWER(city) = ?", strings.ToLower(name)).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
