package events

import (
	"context"
	"errors"
	"time"

	"gatherly/internal/shared/clock"
	"gatherly/internal/shared/constants"
	"gatherly/pkg/cache"
	"gatherly/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventRetired      = errors.New("event is retired")
	ErrDateInPast        = errors.New("event date must be in the future")
	ErrCapacityImmutable = errors.New("total seat capacity cannot be changed after creation")
)

type Service interface {
	// Service dependency injection
	SetCacheService(cacheService cache.Service)

	CreateEvent(ctx context.Context, adminID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error)
	GetPastEvents(ctx context.Context, limit int) ([]EventResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, adminID uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	RetireEvent(ctx context.Context, id uuid.UUID, adminID uuid.UUID) error
}

type service struct {
	repo         Repository
	clock        clock.Clock
	cacheService cache.Service
}

func NewService(repo Repository, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		clock: clk,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateEvent(ctx context.Context, adminID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	if !req.Date.After(s.clock.Now()) {
		return nil, ErrDateInPast
	}

	event := &Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		TimeWindow:  req.TimeWindow,
		Location:    req.Location,
		Tags:        req.Tags,
		TotalSeats:  req.TotalSeats,
		ImageURL:    req.ImageURL,
		Status:      StatusActive,
		CreatedBy:   adminID,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	logger.GetDefault().LogEventCreated(ctx, event.ID.String())
	s.invalidateEventCache(ctx, nil)

	response := event.ToResponse()
	response.AvailableSeats = event.TotalSeats
	return &response, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	cacheKey := constants.BuildEventDetailKey(id.String())

	if s.cacheService != nil {
		var cached EventResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := event.ToResponse()
	if err := s.populateAvailability(ctx, event, &response); err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cacheKey, response, constants.TTL_EVENT_DETAIL)
	}

	return &response, nil
}

func (s *service) GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	events, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, err
	}

	responses, err := s.toResponses(ctx, events)
	if err != nil {
		return nil, err
	}

	totalPages := int((totalCount + int64(query.Limit) - 1) / int64(query.Limit))

	return &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error) {
	cacheKey := constants.BuildEventsUpcomingKey(limit)

	if s.cacheService != nil {
		var cached []EventResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	events, err := s.repo.GetUpcoming(ctx, s.clock.Now(), limit)
	if err != nil {
		return nil, err
	}

	responses, err := s.toResponses(ctx, events)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cacheKey, responses, constants.TTL_EVENT_UPCOMING)
	}

	return responses, nil
}

func (s *service) GetPastEvents(ctx context.Context, limit int) ([]EventResponse, error) {
	cacheKey := constants.BuildEventsPastKey(limit)

	if s.cacheService != nil {
		var cached []EventResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	events, err := s.repo.GetPast(ctx, s.clock.Now(), limit)
	if err != nil {
		return nil, err
	}

	responses, err := s.toResponses(ctx, events)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cacheKey, responses, constants.TTL_EVENT_PAST)
	}

	return responses, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, adminID uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if event.Status == StatusRetired {
		return nil, ErrEventRetired
	}

	// Capacity is fixed at creation; rejecting the field here keeps the
	// derived-availability invariant intact.
	if req.TotalSeats != nil && *req.TotalSeats != event.TotalSeats {
		return nil, ErrCapacityImmutable
	}

	updates := map[string]interface{}{
		"updated_by": adminID,
		"updated_at": s.clock.Now(),
	}

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Date != nil {
		if !req.Date.After(s.clock.Now()) {
			return nil, ErrDateInPast
		}
		updates["date"] = *req.Date
	}
	if req.TimeWindow != nil {
		updates["time_window"] = *req.TimeWindow
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx, &id)

	response := updated.ToResponse()
	if err := s.populateAvailability(ctx, updated, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// RetireEvent removes an event from the bookable catalog without
// deleting the row, so existing bookings keep their audit trail.
func (s *service) RetireEvent(ctx context.Context, id uuid.UUID, adminID uuid.UUID) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if event.Status == StatusRetired {
		return ErrEventRetired
	}

	_, err = s.repo.Update(ctx, id, map[string]interface{}{
		"status":     StatusRetired,
		"updated_by": adminID,
		"updated_at": s.clock.Now(),
	})
	if err != nil {
		return err
	}

	logger.GetDefault().LogEventRetired(ctx, id.String())
	s.invalidateEventCache(ctx, &id)
	return nil
}

// populateAvailability fills the derived available-seat count from the
// live ACTIVE booking sum.
func (s *service) populateAvailability(ctx context.Context, event *Event, response *EventResponse) error {
	sum, err := s.repo.ActiveSeatSum(ctx, event.ID)
	if err != nil {
		return err
	}

	available := event.TotalSeats - sum
	if available < 0 {
		available = 0
	}
	response.AvailableSeats = available
	return nil
}

func (s *service) toResponses(ctx context.Context, events []Event) ([]EventResponse, error) {
	ids := make([]uuid.UUID, len(events))
	for i, event := range events {
		ids[i] = event.ID
	}

	sums, err := s.repo.ActiveSeatSums(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, len(events))
	for i, event := range events {
		response := event.ToResponse()
		available := event.TotalSeats - sums[event.ID]
		if available < 0 {
			available = 0
		}
		response.AvailableSeats = available
		responses[i] = response
	}
	return responses, nil
}

func (s *service) invalidateEventCache(ctx context.Context, eventID *uuid.UUID) {
	if s.cacheService == nil {
		return
	}

	patterns := []string{constants.PATTERN_INVALIDATE_EVENT_ALL}
	if eventID != nil {
		patterns = append(patterns, constants.PATTERN_INVALIDATE_EVENT_DETAIL+eventID.String()+"*")
	}

	// Invalidation failures only mean stale reads until the TTL expires.
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	for _, pattern := range patterns {
		_ = s.cacheService.DeletePattern(ctx, pattern)
	}
}
