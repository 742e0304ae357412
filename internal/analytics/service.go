package analytics

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	GetOverviewStats(ctx context.Context) (*OverviewStats, error)
	GetEventStats(ctx context.Context, eventID uuid.UUID) (*EventStats, error)
	GetTopEvents(ctx context.Context, limit int) ([]EventStats, error)
	GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetOverviewStats(ctx context.Context) (*OverviewStats, error) {
	return s.repo.GetOverviewStats(ctx)
}

func (s *service) GetEventStats(ctx context.Context, eventID uuid.UUID) (*EventStats, error) {
	return s.repo.GetEventStats(ctx, eventID)
}

func (s *service) GetTopEvents(ctx context.Context, limit int) ([]EventStats, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.repo.GetTopEvents(ctx, limit)
}

func (s *service) GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStats, error) {
	if days < 1 || days > 90 {
		days = 30
	}
	return s.repo.GetDailyBookingStats(ctx, days)
}
