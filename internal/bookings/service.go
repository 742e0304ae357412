package bookings

import (
	"context"
	"math"
	"time"

	"gatherly/internal/events"
	"gatherly/internal/shared/clock"
	"gatherly/internal/shared/constants"
	"gatherly/pkg/logger"

	"github.com/google/uuid"
)

// Notifier publishes booking lifecycle events. Implementations must not
// block the request path for long; publish failures are logged, never
// surfaced to the caller.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *Booking, event *events.Event)
	BookingCancelled(ctx context.Context, booking *Booking)
}

// CacheInvalidator clears cached event reads whose derived availability a
// ledger write just changed.
type CacheInvalidator interface {
	DeletePattern(ctx context.Context, pattern string) error
}

type Service interface {
	Reserve(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	Cancel(ctx context.Context, bookingID, actorID uuid.UUID, actorIsAdmin bool) error
	GetBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorIsAdmin bool) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
	GetAvailability(ctx context.Context, eventID uuid.UUID) (*AvailabilityResponse, error)

	SetNotifier(n Notifier)
	SetCacheInvalidator(inv CacheInvalidator)
}

type service struct {
	repo     Repository
	clock    clock.Clock
	notifier Notifier
	cache    CacheInvalidator
}

func NewService(repo Repository, clk clock.Clock) Service {
	return &service{repo: repo, clock: clk}
}

func (s *service) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *service) SetCacheInvalidator(inv CacheInvalidator) {
	s.cache = inv
}

// Reserve creates an ACTIVE booking if and only if the event is bookable
// and enough derived capacity remains. The whole check-then-insert runs
// inside one transaction holding a row lock on the event, so two reserves
// on the same event cannot interleave between the sum and the insert.
func (s *service) Reserve(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	var booking *Booking
	var event *events.Event
	err = s.repo.WithTx(ctx, func(ctx context.Context) error {
		ev, err := s.repo.GetEventForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		// Retired events are invisible to the booking path.
		if ev.Status != events.StatusActive {
			return ErrEventNotFound
		}
		if !ev.Date.After(s.clock.Now()) {
			return ErrEventEnded
		}
		if req.NumberOfSeats < MinSeatsPerBooking || req.NumberOfSeats > MaxSeatsPerBooking {
			return ErrInvalidSeatCount
		}

		booked, err := s.repo.SumActiveSeats(ctx, eventID)
		if err != nil {
			return err
		}
		if booked+req.NumberOfSeats > ev.TotalSeats {
			return ErrInsufficientCapacity
		}

		now := s.clock.Now()
		b := &Booking{
			ID:        uuid.New(),
			UserID:    userID,
			EventID:   eventID,
			SeatCount: req.NumberOfSeats,
			Status:    StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.CreateBooking(ctx, b); err != nil {
			return err
		}
		booking = b
		event = ev
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.GetDefault().LogBookingCreated(ctx, booking.ID.String(), eventID.String(), userID.String())

	s.invalidateEventCaches(userID)
	if s.notifier != nil {
		s.notifier.BookingConfirmed(ctx, booking, event)
	}

	resp := booking.ToResponse()
	resp.Event = &BookingEventInfo{
		ID:       event.ID,
		Title:    event.Title,
		Date:     event.Date,
		Time:     event.TimeWindow,
		Location: event.Location,
	}
	return &resp, nil
}

// Cancel soft-cancels a booking. Only the owner or an admin may cancel;
// cancelling an already cancelled booking fails rather than silently
// succeeding, so callers can tell the two outcomes apart.
func (s *service) Cancel(ctx context.Context, bookingID, actorID uuid.UUID, actorIsAdmin bool) error {
	var cancelled *Booking
	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		booking, err := s.repo.GetBookingForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.UserID != actorID && !actorIsAdmin {
			return ErrForbidden
		}
		if !booking.Status.CanBeCancelled() {
			return ErrAlreadyCancelled
		}

		now := s.clock.Now()
		if err := s.repo.UpdateBookingStatus(ctx, bookingID, StatusCancelled, &now); err != nil {
			return err
		}
		booking.Cancel(now)
		cancelled = booking
		return nil
	})
	if err != nil {
		return err
	}

	logger.GetDefault().LogBookingCancelled(ctx, bookingID.String(), cancelled.EventID.String(), actorID.String())

	s.invalidateEventCaches(cancelled.UserID)
	if s.notifier != nil {
		s.notifier.BookingCancelled(ctx, cancelled)
	}
	return nil
}

func (s *service) GetBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorIsAdmin bool) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByIDWithRelations(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actorID && !actorIsAdmin {
		return nil, ErrForbidden
	}
	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error) {
	normalizeQuery(&query)
	bookings, total, err := s.repo.GetUserBookings(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	return paginate(bookings, total, query), nil
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	normalizeQuery(&query)
	bookings, total, err := s.repo.GetAllBookings(ctx, query)
	if err != nil {
		return nil, err
	}
	return paginate(bookings, total, query), nil
}

// GetAvailability reports derived availability outside any transaction.
// The number is advisory; Reserve recomputes it under the event lock.
func (s *service) GetAvailability(ctx context.Context, eventID uuid.UUID) (*AvailabilityResponse, error) {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	booked, err := s.repo.SumActiveSeats(ctx, eventID)
	if err != nil {
		return nil, err
	}
	available := event.TotalSeats - booked
	if available < 0 {
		available = 0
	}
	return &AvailabilityResponse{
		EventID:        eventID,
		TotalSeats:     event.TotalSeats,
		BookedSeats:    booked,
		AvailableSeats: available,
	}, nil
}

func normalizeQuery(query *BookingListQuery) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 10
	}
}

func paginate(bookings []Booking, total int64, query BookingListQuery) *PaginatedBookings {
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}
	return &PaginatedBookings{
		Bookings:   responses,
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(query.Limit))),
	}
}

func (s *service) invalidateEventCaches(userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENT_ALL)
	_ = s.cache.DeletePattern(ctx, constants.CACHE_KEY_USER_BOOKINGS+userID.String()+"*")
}
