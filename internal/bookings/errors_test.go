package bookings

import (
	"errors"
	"net/http"
	"testing"
)

func TestKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want string
	}{
		{ErrEventNotFound, "EVENT_NOT_FOUND"},
		{ErrEventEnded, "EVENT_ENDED"},
		{ErrInvalidSeatCount, "INVALID_SEAT_COUNT"},
		{ErrInsufficientCapacity, "INSUFFICIENT_CAPACITY"},
		{ErrBookingNotFound, "BOOKING_NOT_FOUND"},
		{ErrAlreadyCancelled, "ALREADY_CANCELLED"},
		{ErrForbidden, "FORBIDDEN"},
		{errors.New("boom"), ""},
	}
	for _, tc := range cases {
		if got := Kind(tc.err); got != tc.want {
			t.Errorf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{ErrEventNotFound, http.StatusNotFound},
		{ErrBookingNotFound, http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
		{ErrAlreadyCancelled, http.StatusConflict},
		{ErrEventEnded, http.StatusBadRequest},
		{ErrInvalidSeatCount, http.StatusBadRequest},
		{ErrInsufficientCapacity, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
