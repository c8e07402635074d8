package services

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oriently/oriently-backend/internal/data/repos"
	types "github.com/oriently/oriently-backend/internal/domain"
	"github.com/oriently/oriently-backend/internal/pkg/ctxutil"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
)

const cityCacheSize = 256

type CityService interface {
	Search(ctx context.Context, query string, limit int) ([]*types.ItalianCity, error)
	GetByName(ctx context.Context, name string) (*types.ItalianCity, error)
}

type cityService struct {
	log         *logger.Logger
	repo        repos.CityRepo
	searchCache *lru.Cache[string, []*types.ItalianCity]
	cityCache   *lru.Cache[string, *types.ItalianCity]
}

// NewCityService caches lookups in-process. The city table is seeded once
// at migration time and never written afterwards, so entries are never
// invalidated.
func NewCityService(log *logger.Logger, repo repos.CityRepo) (CityService, error) {
	searchCache, err := lru.New[string, []*types.ItalianCity](cityCacheSize)
	if err != nil {
		return nil, fmt.Errorf("init search cache: %w", err)
	}
	cityCache, err := lru.New[string, *types.ItalianCity](cityCacheSize)
	if err != nil {
		return nil, fmt.Errorf("init city cache: %w", err)
	}
	return &cityService{
		log:         log.With("service", "CityService"),
		repo:        repo,
		searchCache: searchCache,
		cityCache:   cityCache,
	}, nil
}

func (s *cityService) Search(ctx context.Context, query string, limit int) ([]*types.ItalianCity, error) {
	ctx = ctxutil.Default(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return []*types.ItalianCity{}, nil
	}

	key := fmt.Sprintf("s:%s:%d", strings.ToLower(query), limit)
	if cached, ok := s.searchCache.Get(key); ok {
		return cached, nil
	}

	results, err := s.repo.Search(ctx, nil, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search cities: %w", err)
	}
	s.searchCache.Add(key, results)
	return results, nil
}

func (s *cityService) GetByName(ctx context.Context, name string) (*types.ItalianCity, error) {
	ctx = ctxutil.Default(ctx)

	key := "g:" + strings.ToLower(strings.TrimSpace(name))
	if cached, ok := s.cityCache.Get(key); ok {
		return cached, nil
	}

	city, err := s.repo.GetByName(ctx, nil, name)
	if err != nil {
		return nil, err
	}
	s.cityCache.Add(key, city)
	return city, nil
}
