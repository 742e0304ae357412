package analytics

import (
	"time"

	"github.com/google/uuid"
)

// OverviewStats is the admin dashboard headline row. Every figure is
// derived from the events and bookings tables at read time.
type OverviewStats struct {
	TotalEvents       int     `json:"total_events"`
	ActiveEvents      int     `json:"active_events"`
	RetiredEvents     int     `json:"retired_events"`
	TotalBookings     int     `json:"total_bookings"`
	ActiveBookings    int     `json:"active_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	TotalUsers        int     `json:"total_users"`
	SeatsBooked       int     `json:"seats_booked"`
	CancellationRate  float64 `json:"cancellation_rate"`
}

// EventStats summarizes one event's ledger position.
type EventStats struct {
	EventID        uuid.UUID `json:"event_id"`
	Title          string    `json:"title"`
	Date           time.Time `json:"date"`
	TotalSeats     int       `json:"total_seats"`
	SeatsBooked    int       `json:"seats_booked"`
	AvailableSeats int       `json:"available_seats"`
	Utilization    float64   `json:"utilization"`
	ActiveBookings int       `json:"active_bookings"`
	Cancellations  int       `json:"cancellations"`
}

type DailyBookingStats struct {
	Date          string `json:"date"`
	Bookings      int    `json:"bookings"`
	SeatsBooked   int    `json:"seats_booked"`
	Cancellations int    `json:"cancellations"`
}
