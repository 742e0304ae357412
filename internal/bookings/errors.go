package bookings

import (
	"errors"
	"net/http"
)

// Rejection sentinels. Every failure mode of the ledger maps to exactly
// one of these so callers can branch on errors.Is and the HTTP layer can
// emit a stable machine-readable kind.
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventEnded           = errors.New("event has already started")
	ErrInvalidSeatCount     = errors.New("seat count must be between 1 and 4")
	ErrInsufficientCapacity = errors.New("not enough seats available")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrAlreadyCancelled     = errors.New("booking is already cancelled")
	ErrForbidden            = errors.New("not allowed to access this booking")
)

// Kind returns the stable machine-readable rejection kind for a ledger
// error, or "" for errors outside the rejection taxonomy.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrEventNotFound):
		return "EVENT_NOT_FOUND"
	case errors.Is(err, ErrEventEnded):
		return "EVENT_ENDED"
	case errors.Is(err, ErrInvalidSeatCount):
		return "INVALID_SEAT_COUNT"
	case errors.Is(err, ErrInsufficientCapacity):
		return "INSUFFICIENT_CAPACITY"
	case errors.Is(err, ErrBookingNotFound):
		return "BOOKING_NOT_FOUND"
	case errors.Is(err, ErrAlreadyCancelled):
		return "ALREADY_CANCELLED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	default:
		return ""
	}
}

// HTTPStatus maps a ledger error to its wire status code. Capacity
// rejections ride the 400 family: they are expected outcomes under
// contention, not server faults.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyCancelled):
		return http.StatusConflict
	case errors.Is(err, ErrEventEnded),
		errors.Is(err, ErrInvalidSeatCount),
		errors.Is(err, ErrInsufficientCapacity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
