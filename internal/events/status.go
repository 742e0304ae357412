package events

type EventStatus string

const (
	StatusActive  EventStatus = "active"
	StatusRetired EventStatus = "retired"
)

// IsValid checks if the event status is valid
func (s EventStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusRetired:
		return true
	}
	return false
}

// String returns the string representation of EventStatus
func (s EventStatus) String() string {
	return string(s)
}

// IsBookable reports whether bookings may target an event in this status.
func (s EventStatus) IsBookable() bool {
	return s == StatusActive
}
