package bookings

import (
	"time"

	"gatherly/internal/events"
	"gatherly/internal/users"

	"github.com/google/uuid"
)

// Booking is a claim by one user on some number of an event's seats.
// SeatCount never changes after creation; cancellation flips Status and
// keeps the row, so the ledger doubles as an audit trail and the
// derived-availability sum stays trivially correct.
type Booking struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	EventID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_id"`
	SeatCount   int        `gorm:"not null;check:seat_count >= 1 AND seat_count <= 4" json:"seat_count"`
	Status      Status     `gorm:"type:varchar(20);check:status IN ('ACTIVE', 'CANCELLED');default:'ACTIVE'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	// Relationships
	User  *users.User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT;"`
	Event *events.Event `json:"event,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:RESTRICT;"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// Seat count bounds per booking.
const (
	MinSeatsPerBooking = 1
	MaxSeatsPerBooking = 4
)

// Helper methods for booking management

func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

func (b *Booking) Cancel(now time.Time) {
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.UpdatedAt = now
}
