package tags

import (
	"context"

	"gatherly/internal/shared/constants"
	"gatherly/pkg/cache"
)

type Service interface {
	GetTagCounts(ctx context.Context) ([]TagCount, error)
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetTagCounts(ctx context.Context) ([]TagCount, error) {
	cacheKey := constants.CACHE_PREFIX + ":tags:counts"

	if s.cacheService != nil {
		var cached []TagCount
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	counts, err := s.repo.GetTagCounts(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cacheKey, counts, constants.TTL_SEMI_STATIC_QUICK)
	}

	return counts, nil
}
