package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	TypeBookingConfirmed MessageType = "BOOKING_CONFIRMED"
	TypeBookingCancelled MessageType = "BOOKING_CANCELLED"
)

// BookingMessage is the payload published for each ledger write. Consumers
// (email, push, analytics) fan out from the topic.
type BookingMessage struct {
	ID         uuid.UUID   `json:"id"`
	Type       MessageType `json:"type"`
	BookingID  uuid.UUID   `json:"booking_id"`
	UserID     uuid.UUID   `json:"user_id"`
	EventID    uuid.UUID   `json:"event_id"`
	EventTitle string      `json:"event_title,omitempty"`
	SeatCount  int         `json:"seat_count"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func (m *BookingMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// GetPartitionKey keys messages by user so a user's notifications stay
// ordered within a partition.
func (m *BookingMessage) GetPartitionKey() string {
	return m.UserID.String()
}
