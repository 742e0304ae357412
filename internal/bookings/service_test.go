package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gatherly/internal/events"
	"gatherly/internal/shared/clock"

	"github.com/google/uuid"
)

// fakeLedgerRepo keeps everything in memory. WithTx takes one mutex for
// the whole callback, which mirrors the serialization the row lock gives
// the real repository.
type fakeLedgerRepo struct {
	mu       sync.Mutex
	events   map[uuid.UUID]*events.Event
	bookings map[uuid.UUID]*Booking
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		events:   make(map[uuid.UUID]*events.Event),
		bookings: make(map[uuid.UUID]*Booking),
	}
}

func (f *fakeLedgerRepo) addEvent(event *events.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[event.ID] = event
}

func (f *fakeLedgerRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeLedgerRepo) CreateBooking(ctx context.Context, booking *Booking) error {
	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeLedgerRepo) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	booking, ok := f.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	booking.Status = status
	booking.CancelledAt = cancelledAt
	return nil
}

func (f *fakeLedgerRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeLedgerRepo) GetBookingByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := f.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event, ok := f.events[booking.EventID]; ok {
		copied := *event
		booking.Event = &copied
	}
	return booking, nil
}

func (f *fakeLedgerRepo) GetBookingForUpdate(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return f.GetBookingByID(ctx, id)
}

func (f *fakeLedgerRepo) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var result []Booking
	for _, booking := range f.bookings {
		if booking.UserID != userID {
			continue
		}
		if query.Status != "" && string(booking.Status) != query.Status {
			continue
		}
		result = append(result, *booking)
	}
	return result, int64(len(result)), nil
}

func (f *fakeLedgerRepo) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var result []Booking
	for _, booking := range f.bookings {
		result = append(result, *booking)
	}
	return result, int64(len(result)), nil
}

func (f *fakeLedgerRepo) GetEventForUpdate(ctx context.Context, eventID uuid.UUID) (*events.Event, error) {
	event, ok := f.events[eventID]
	if !ok {
		return nil, ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeLedgerRepo) GetEvent(ctx context.Context, eventID uuid.UUID) (*events.Event, error) {
	return f.GetEventForUpdate(ctx, eventID)
}

func (f *fakeLedgerRepo) SumActiveSeats(ctx context.Context, eventID uuid.UUID) (int, error) {
	sum := 0
	for _, booking := range f.bookings {
		if booking.EventID == eventID && booking.Status == StatusActive {
			sum += booking.SeatCount
		}
	}
	return sum, nil
}

func newTestEvent(totalSeats int, date time.Time) *events.Event {
	return &events.Event{
		ID:         uuid.New(),
		Title:      "Go Meetup",
		Date:       date,
		TimeWindow: "06:00 PM - 09:00 PM",
		Location:   "Community Hall",
		TotalSeats: totalSeats,
		Status:     events.StatusActive,
	}
}

func TestReserve(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	ctx := context.Background()

	t.Run("creates an active booking and reduces availability", func(t *testing.T) {
		t.Parallel()
		repo := newFakeLedgerRepo()
		event := newTestEvent(10, future)
		repo.addEvent(event)
		svc := NewService(repo, clock.NewFixed(now))

		userID := uuid.New()
		resp, err := svc.Reserve(ctx, userID, CreateBookingRequest{EventID: event.ID.String(), NumberOfSeats: 3})
		if err != nil {
			t.Fatalf("Reserve() error = %v", err)
		}
		if resp.Status != StatusActive {
			t.Errorf("booking status = %q, want %q", resp.Status, StatusActive)
		}
		if resp.SeatCount != 3 {
			t.Errorf("seat count = %d, want 3", resp.SeatCount)
		}

		availability, err := svc.GetAvailability(ctx, event.ID)
		if err != nil {
			t.Fatalf("GetAvailability() error = %v", err)
		}
		if availability.AvailableSeats != 7 {
			t.Errorf("available seats = %d, want 7", availability.AvailableSeats)
		}
	})

	t.Run("seat count bounds", func(t *testing.T) {
		t.Parallel()
		repo := newFakeLedgerRepo()
		event := newTestEvent(100, future)
		repo.addEvent(event)
		svc := NewService(repo, clock.NewFixed(now))

		cases := []struct {
			seats   int
			wantErr error
		}{
			{0, ErrInvalidSeatCount},
			{1, nil},
			{4, nil},
			{5, ErrInvalidSeatCount},
			{-1, ErrInvalidSeatCount},
		}
		for _, tc := range cases {
			_, err := svc.Reserve(ctx, uuid.New(), CreateBookingRequest{EventID: event.ID.String(), NumberOfSeats: tc.seats})
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Reserve(seats=%d) error = %v, want %v", tc.seats, err, tc.wantErr)
			}
		}
	})

	t.Run("rejects an event whose date has arrived", func(t *testing.T) {
		t.Parallel()
		repo := newFakeLedgerRepo()
		event := newTestEvent(10, now) // date == now counts as ended
		repo.addEvent(event)
		svc := NewService(repo, clock.NewFixed(now))

		_, err := svc.Reserve(ctx, uuid.New(), CreateBookingRequest{EventID: event.ID.String(), NumberOfSeats: 2})
		if !errors.Is(err, ErrEventEnded) {
			t.Errorf("Reserve() error = %v, want %v", err, ErrEventEnded)
		}
	})

	t.Run("treats a retired event as not found", func(t *testing.T) {
		t.Parallel()
		repo := newFakeLedgerRepo()
		event := newTestEvent(10, future)
		event.Status = events.StatusRetired
		repo.addEvent(event)
		svc := NewService(repo, clock.NewFixed(now))

		_, err := svc.Reserve(ctx, uuid.New(), CreateBookingRequest{EventID: event.ID.String(), NumberOfSeats: 2})
		if !errors.Is(err, ErrEventNotFound) {
			t.Errorf("Reserve() error = %v, want %v", err, ErrEventNotFound)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		t.Parallel()
		svc := NewService(newFakeLedgerRepo(), clock.NewFixed(now))

		_, err := svc.Reserve(ctx, uuid.New(), CreateBookingRequest{EventID: uuid.NewString(), NumberOfSeats: 2})
		if !errors.Is(err, ErrEventNotFound) {
			t.Errorf("Reserve() error = %v, want %v", err, ErrEventNotFound)
		}
	})

	t.Run("fills to exact capacity then rejects", func(t *testing.T) {
		t.Parallel()
		repo := newFakeLedgerRepo()
		event := newTestEvent(8, future)
		repo.addEvent(event)
		svc := NewService(repo, clock.NewFixed(now))

		for i := 0; i < 2; i++ {
			if _, err := svc.Reserve(ctx, uuid.New(), CreateBookingRequest{EventID: event.ID.String(), NumberOfSeats: 4}); err != nil {
				t.Fatalf("Reserve() #%d error = %v", i, err)
			}
		}

		_, err := svc.Reserve(ctx, uuid.New(), CreateBookingRequest{EventID: event.ID.String(), NumberOfSeats: 1})
		if !errors.Is(err, ErrInsufficientCapacity) {
			t.Errorf("Reserve() error = %v, want %v", err, ErrInsufficientCapacity)
		}

		availability, err := svc.GetAvailability(ctx, event.ID)
		if err != nil {
			t.Fatalf("GetAvailability() error = %v", err)
		}
		if availability.AvailableSeats != 0 {
			t.Errorf("available seats = %d, want 0", availability.AvailableSeats)
		}
	})
}

func TestReserveConcurrent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeLedgerRepo()
	event := newTestEvent(10, now.Add(24*time.Hour))
	repo.addEvent(event)
	svc := NewService(repo, clock.NewFixed(now))

	const attempts = 40
	var wg sync.WaitGroup
	errCh := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), uuid.New(), CreateBookingRequest{
				EventID:       event.ID.String(),
				NumberOfSeats: 1,
			})
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	succeeded, rejected := 0, 0
	for err := range errCh {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientCapacity):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != event.TotalSeats {
		t.Errorf("succeeded = %d, want %d", succeeded, event.TotalSeats)
	}
	if rejected != attempts-event.TotalSeats {
		t.Errorf("rejected = %d, want %d", rejected, attempts-event.TotalSeats)
	}

	sum, err := repo.SumActiveSeats(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("SumActiveSeats() error = %v", err)
	}
	if sum != event.TotalSeats {
		t.Errorf("active seat sum = %d, want %d (never oversold)", sum, event.TotalSeats)
	}
}

func TestCancel(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *fakeLedgerRepo, *events.Event, uuid.UUID, uuid.UUID) {
		t.Helper()
		repo := newFakeLedgerRepo()
		event := newTestEvent(4, future)
		repo.addEvent(event)
		svc := NewService(repo, clock.NewFixed(now))

		userID := uuid.New()
		resp, err := svc.Reserve(ctx, userID, CreateBookingRequest{EventID: event.ID.String(), NumberOfSeats: 4})
		if err != nil {
			t.Fatalf("Reserve() error = %v", err)
		}
		return svc, repo, event, userID, resp.ID
	}

	t.Run("owner cancel releases capacity", func(t *testing.T) {
		t.Parallel()
		svc, repo, event, userID, bookingID := setup(t)

		if err := svc.Cancel(ctx, bookingID, userID, false); err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}

		booking, err := repo.GetBookingByID(ctx, bookingID)
		if err != nil {
			t.Fatalf("GetBookingByID() error = %v", err)
		}
		if booking.Status != StatusCancelled {
			t.Errorf("status = %q, want %q", booking.Status, StatusCancelled)
		}
		if booking.CancelledAt == nil {
			t.Error("cancelled booking has no cancellation timestamp")
		}

		// Seats come back immediately
		if _, err := svc.Reserve(ctx, uuid.New(), CreateBookingRequest{EventID: event.ID.String(), NumberOfSeats: 4}); err != nil {
			t.Errorf("Reserve() after cancel error = %v", err)
		}
	})

	t.Run("another user cannot cancel", func(t *testing.T) {
		t.Parallel()
		svc, repo, _, _, bookingID := setup(t)

		err := svc.Cancel(ctx, bookingID, uuid.New(), false)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("Cancel() error = %v, want %v", err, ErrForbidden)
		}

		booking, _ := repo.GetBookingByID(ctx, bookingID)
		if booking.Status != StatusActive {
			t.Errorf("status after forbidden cancel = %q, want %q", booking.Status, StatusActive)
		}
	})

	t.Run("admin can cancel any booking", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _, bookingID := setup(t)

		if err := svc.Cancel(ctx, bookingID, uuid.New(), true); err != nil {
			t.Errorf("Cancel() as admin error = %v", err)
		}
	})

	t.Run("cancel twice fails and stays cancelled", func(t *testing.T) {
		t.Parallel()
		svc, repo, _, userID, bookingID := setup(t)

		if err := svc.Cancel(ctx, bookingID, userID, false); err != nil {
			t.Fatalf("first Cancel() error = %v", err)
		}
		err := svc.Cancel(ctx, bookingID, userID, false)
		if !errors.Is(err, ErrAlreadyCancelled) {
			t.Errorf("second Cancel() error = %v, want %v", err, ErrAlreadyCancelled)
		}

		booking, _ := repo.GetBookingByID(ctx, bookingID)
		if booking.Status != StatusCancelled {
			t.Errorf("status = %q, want %q", booking.Status, StatusCancelled)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		t.Parallel()
		svc, _, _, userID, _ := setup(t)

		err := svc.Cancel(ctx, uuid.New(), userID, false)
		if !errors.Is(err, ErrBookingNotFound) {
			t.Errorf("Cancel() error = %v, want %v", err, ErrBookingNotFound)
		}
	})
}

func TestGetBooking(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	repo := newFakeLedgerRepo()
	event := newTestEvent(10, now.Add(24*time.Hour))
	repo.addEvent(event)
	svc := NewService(repo, clock.NewFixed(now))

	userID := uuid.New()
	resp, err := svc.Reserve(ctx, userID, CreateBookingRequest{EventID: event.ID.String(), NumberOfSeats: 2})
	if err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}

	t.Run("owner reads own booking", func(t *testing.T) {
		got, err := svc.GetBooking(ctx, resp.ID, userID, false)
		if err != nil {
			t.Fatalf("GetBooking() error = %v", err)
		}
		if got.Event == nil || got.Event.Title != event.Title {
			t.Errorf("booking event info = %+v, want title %q", got.Event, event.Title)
		}
	})

	t.Run("stranger gets forbidden", func(t *testing.T) {
		_, err := svc.GetBooking(ctx, resp.ID, uuid.New(), false)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("GetBooking() error = %v, want %v", err, ErrForbidden)
		}
	})

	t.Run("admin reads any booking", func(t *testing.T) {
		if _, err := svc.GetBooking(ctx, resp.ID, uuid.New(), true); err != nil {
			t.Errorf("GetBooking() as admin error = %v", err)
		}
	})
}

func TestCancelledBookingsDoNotCountTowardCapacity(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	repo := newFakeLedgerRepo()
	event := newTestEvent(6, now.Add(24*time.Hour))
	repo.addEvent(event)
	svc := NewService(repo, clock.NewFixed(now))

	userID := uuid.New()
	first, err := svc.Reserve(ctx, userID, CreateBookingRequest{EventID: event.ID.String(), NumberOfSeats: 4})
	if err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}
	if err := svc.Cancel(ctx, first.ID, userID, false); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	availability, err := svc.GetAvailability(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetAvailability() error = %v", err)
	}
	if availability.AvailableSeats != 6 {
		t.Errorf("available seats = %d, want 6", availability.AvailableSeats)
	}
	if availability.BookedSeats != 0 {
		t.Errorf("booked seats = %d, want 0", availability.BookedSeats)
	}
}
