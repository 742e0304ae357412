package bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type stubService struct {
	Service
	reserveErr error
	cancelErr  error
}

func (s *stubService) Reserve(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	if s.reserveErr != nil {
		return nil, s.reserveErr
	}
	return &BookingResponse{ID: uuid.New(), UserID: userID, SeatCount: req.NumberOfSeats, Status: StatusActive}, nil
}

func (s *stubService) Cancel(ctx context.Context, bookingID, actorID uuid.UUID, actorIsAdmin bool) error {
	return s.cancelErr
}

func newTestEngine(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	ctrl := NewController(svc)

	// auth middleware stand-in
	engine.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.NewString())
		c.Set("user_role", "USER")
	})
	engine.POST("/bookings", ctrl.CreateBooking)
	engine.DELETE("/bookings/:id", ctrl.CancelBooking)
	return engine
}

func TestCreateBookingStatusCodes(t *testing.T) {
	cases := []struct {
		name       string
		reserveErr error
		wantStatus int
		wantCode   string
	}{
		{"success", nil, http.StatusCreated, ""},
		{"insufficient capacity", ErrInsufficientCapacity, http.StatusBadRequest, "INSUFFICIENT_CAPACITY"},
		{"event ended", ErrEventEnded, http.StatusBadRequest, "EVENT_ENDED"},
		{"invalid seat count", ErrInvalidSeatCount, http.StatusBadRequest, "INVALID_SEAT_COUNT"},
		{"unknown event", ErrEventNotFound, http.StatusNotFound, "EVENT_NOT_FOUND"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newTestEngine(&stubService{reserveErr: tc.reserveErr})

			body := `{"event_id":"` + uuid.NewString() + `","number_of_seats":2}`
			req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantCode == "" {
				return
			}

			var envelope struct {
				Errors struct {
					Code string `json:"code"`
				} `json:"errors"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if envelope.Errors.Code != tc.wantCode {
				t.Errorf("error code = %q, want %q", envelope.Errors.Code, tc.wantCode)
			}
		})
	}
}

func TestCancelBookingStatusCodes(t *testing.T) {
	cases := []struct {
		name       string
		cancelErr  error
		wantStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"not found", ErrBookingNotFound, http.StatusNotFound},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"already cancelled", ErrAlreadyCancelled, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newTestEngine(&stubService{cancelErr: tc.cancelErr})

			req := httptest.NewRequest(http.MethodDelete, "/bookings/"+uuid.NewString(), nil)
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestCreateBookingRejectsMalformedBody(t *testing.T) {
	engine := newTestEngine(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"event_id":"not-a-uuid"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
