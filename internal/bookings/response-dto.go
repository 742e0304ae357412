package bookings

import (
	"time"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	EventID     uuid.UUID         `json:"event_id"`
	SeatCount   int               `json:"seat_count"`
	Status      Status            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	CancelledAt *time.Time        `json:"cancelled_at,omitempty"`
	Event       *BookingEventInfo `json:"event,omitempty"`
}

type BookingEventInfo struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Time     string    `json:"time"`
	Location string    `json:"location"`
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type AvailabilityResponse struct {
	EventID        uuid.UUID `json:"event_id"`
	TotalSeats     int       `json:"total_seats"`
	BookedSeats    int       `json:"booked_seats"`
	AvailableSeats int       `json:"available_seats"`
}

func (b *Booking) ToResponse() BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		EventID:     b.EventID,
		SeatCount:   b.SeatCount,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		CancelledAt: b.CancelledAt,
	}
	if b.Event != nil {
		resp.Event = &BookingEventInfo{
			ID:       b.Event.ID,
			Title:    b.Event.Title,
			Date:     b.Event.Date,
			Time:     b.Event.TimeWindow,
			Location: b.Event.Location,
		}
	}
	return resp
}
