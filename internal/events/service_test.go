package events

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"gatherly/internal/shared/clock"

	"github.com/google/uuid"
)

type fakeEventRepo struct {
	mu       sync.Mutex
	events   map[uuid.UUID]*Event
	seatSums map[uuid.UUID]int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:   make(map[uuid.UUID]*Event),
		seatSums: make(map[uuid.UUID]int),
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	copied := *event
	f.events[event.ID] = &copied
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	for key, value := range updates {
		switch key {
		case "title":
			event.Title = value.(string)
		case "description":
			event.Description = value.(string)
		case "date":
			event.Date = value.(time.Time)
		case "time_window":
			event.TimeWindow = value.(string)
		case "location":
			event.Location = value.(string)
		case "tags":
			event.Tags = value.(string)
		case "image_url":
			event.ImageURL = value.(string)
		case "status":
			event.Status = value.(EventStatus)
		}
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) GetAll(ctx context.Context, query EventListQuery) ([]Event, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []Event
	for _, event := range f.events {
		if query.Status != "" && string(event.Status) != query.Status {
			continue
		}
		result = append(result, *event)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, int64(len(result)), nil
}

func (f *fakeEventRepo) GetUpcoming(ctx context.Context, now time.Time, limit int) ([]Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []Event
	for _, event := range f.events {
		if event.Status == StatusActive && event.Date.After(now) {
			result = append(result, *event)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeEventRepo) GetPast(ctx context.Context, now time.Time, limit int) ([]Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []Event
	for _, event := range f.events {
		if !event.Date.After(now) {
			result = append(result, *event)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeEventRepo) ActiveSeatSum(ctx context.Context, eventID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seatSums[eventID], nil
}

func (f *fakeEventRepo) ActiveSeatSums(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sums := make(map[uuid.UUID]int, len(eventIDs))
	for _, id := range eventIDs {
		sums[id] = f.seatSums[id]
	}
	return sums, nil
}

func validCreateRequest(date time.Time) CreateEventRequest {
	return CreateEventRequest{
		Title:       "Gophers Assemble",
		Description: "A long evening of lightning talks and hallway chats.",
		Date:        date,
		TimeWindow:  "06:00 PM - 09:00 PM",
		Location:    "Community Hall",
		Tags:        "technology,community",
		TotalSeats:  150,
	}
}

func TestCreateEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("new event starts active with full availability", func(t *testing.T) {
		t.Parallel()
		repo := newFakeEventRepo()
		svc := NewService(repo, clock.NewFixed(now))

		resp, err := svc.CreateEvent(ctx, uuid.New(), validCreateRequest(now.Add(72*time.Hour)))
		if err != nil {
			t.Fatalf("CreateEvent() error = %v", err)
		}
		if resp.Status != StatusActive {
			t.Errorf("status = %q, want %q", resp.Status, StatusActive)
		}
		if resp.AvailableSeats != 150 {
			t.Errorf("available seats = %d, want 150", resp.AvailableSeats)
		}
		if len(resp.Tags) != 2 {
			t.Errorf("tags = %v, want 2 entries", resp.Tags)
		}
	})

	t.Run("rejects dates that are not in the future", func(t *testing.T) {
		t.Parallel()
		repo := newFakeEventRepo()
		svc := NewService(repo, clock.NewFixed(now))

		for _, date := range []time.Time{now, now.Add(-time.Hour)} {
			_, err := svc.CreateEvent(ctx, uuid.New(), validCreateRequest(date))
			if !errors.Is(err, ErrDateInPast) {
				t.Errorf("CreateEvent(date=%v) error = %v, want %v", date, err, ErrDateInPast)
			}
		}
	})
}

func TestUpdateEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *fakeEventRepo, uuid.UUID) {
		t.Helper()
		repo := newFakeEventRepo()
		svc := NewService(repo, clock.NewFixed(now))
		resp, err := svc.CreateEvent(ctx, uuid.New(), validCreateRequest(now.Add(72*time.Hour)))
		if err != nil {
			t.Fatalf("CreateEvent() error = %v", err)
		}
		id, err := uuid.Parse(resp.ID)
		if err != nil {
			t.Fatalf("uuid.Parse(%q) error = %v", resp.ID, err)
		}
		return svc, repo, id
	}

	t.Run("metadata updates pass through", func(t *testing.T) {
		t.Parallel()
		svc, _, id := setup(t)

		title := "Gophers Assemble, Again"
		resp, err := svc.UpdateEvent(ctx, id, uuid.New(), UpdateEventRequest{Title: &title})
		if err != nil {
			t.Fatalf("UpdateEvent() error = %v", err)
		}
		if resp.Title != title {
			t.Errorf("title = %q, want %q", resp.Title, title)
		}
	})

	t.Run("capacity cannot change after creation", func(t *testing.T) {
		t.Parallel()
		svc, _, id := setup(t)

		bigger := 500
		_, err := svc.UpdateEvent(ctx, id, uuid.New(), UpdateEventRequest{TotalSeats: &bigger})
		if !errors.Is(err, ErrCapacityImmutable) {
			t.Errorf("UpdateEvent() error = %v, want %v", err, ErrCapacityImmutable)
		}

		// Echoing the current value back is not a change
		same := 150
		if _, err := svc.UpdateEvent(ctx, id, uuid.New(), UpdateEventRequest{TotalSeats: &same}); err != nil {
			t.Errorf("UpdateEvent() with unchanged capacity error = %v", err)
		}
	})

	t.Run("retired events reject updates", func(t *testing.T) {
		t.Parallel()
		svc, _, id := setup(t)

		if err := svc.RetireEvent(ctx, id, uuid.New()); err != nil {
			t.Fatalf("RetireEvent() error = %v", err)
		}

		title := "Too Late For Edits"
		_, err := svc.UpdateEvent(ctx, id, uuid.New(), UpdateEventRequest{Title: &title})
		if !errors.Is(err, ErrEventRetired) {
			t.Errorf("UpdateEvent() error = %v, want %v", err, ErrEventRetired)
		}
	})
}

func TestRetireEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewService(repo, clock.NewFixed(now))

	resp, err := svc.CreateEvent(ctx, uuid.New(), validCreateRequest(now.Add(72*time.Hour)))
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}
	id, _ := uuid.Parse(resp.ID)

	if err := svc.RetireEvent(ctx, id, uuid.New()); err != nil {
		t.Fatalf("RetireEvent() error = %v", err)
	}

	// The row survives with flipped status
	event, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() after retire error = %v", err)
	}
	if event.Status != StatusRetired {
		t.Errorf("status = %q, want %q", event.Status, StatusRetired)
	}

	if err := svc.RetireEvent(ctx, id, uuid.New()); !errors.Is(err, ErrEventRetired) {
		t.Errorf("second RetireEvent() error = %v, want %v", err, ErrEventRetired)
	}

	if err := svc.RetireEvent(ctx, uuid.New(), uuid.New()); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("RetireEvent(unknown) error = %v, want %v", err, ErrEventNotFound)
	}
}

func TestDerivedAvailability(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewService(repo, clock.NewFixed(now))

	resp, err := svc.CreateEvent(ctx, uuid.New(), validCreateRequest(now.Add(72*time.Hour)))
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}
	id, _ := uuid.Parse(resp.ID)

	repo.mu.Lock()
	repo.seatSums[id] = 40
	repo.mu.Unlock()

	got, err := svc.GetEventByID(ctx, id)
	if err != nil {
		t.Fatalf("GetEventByID() error = %v", err)
	}
	if got.AvailableSeats != 110 {
		t.Errorf("available seats = %d, want 110", got.AvailableSeats)
	}

	// Sums past capacity clamp to zero instead of going negative
	repo.mu.Lock()
	repo.seatSums[id] = 400
	repo.mu.Unlock()

	got, err = svc.GetEventByID(ctx, id)
	if err != nil {
		t.Fatalf("GetEventByID() error = %v", err)
	}
	if got.AvailableSeats != 0 {
		t.Errorf("available seats = %d, want 0", got.AvailableSeats)
	}
}

func TestUpcomingAndPastEvents(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewService(repo, clock.NewFixed(now))

	dates := map[string]time.Time{
		"tomorrow":  now.Add(24 * time.Hour),
		"next week": now.Add(7 * 24 * time.Hour),
		"yesterday": now.Add(-24 * time.Hour),
	}
	for name, date := range dates {
		event := &Event{
			Title:      name,
			Date:       date,
			Location:   "Somewhere",
			TotalSeats: 10,
			Status:     StatusActive,
		}
		if err := repo.Create(ctx, event); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	upcoming, err := svc.GetUpcomingEvents(ctx, 10)
	if err != nil {
		t.Fatalf("GetUpcomingEvents() error = %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("upcoming = %d events, want 2", len(upcoming))
	}
	if upcoming[0].Title != "tomorrow" {
		t.Errorf("first upcoming = %q, want soonest first", upcoming[0].Title)
	}

	past, err := svc.GetPastEvents(ctx, 10)
	if err != nil {
		t.Fatalf("GetPastEvents() error = %v", err)
	}
	if len(past) != 1 || past[0].Title != "yesterday" {
		t.Errorf("past = %+v, want just the finished event", past)
	}
}
