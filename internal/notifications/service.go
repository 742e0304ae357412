package notifications

import (
	"context"
	"time"

	"gatherly/internal/bookings"
	"gatherly/internal/events"
	"gatherly/pkg/logger"

	"github.com/google/uuid"
)

// Service adapts the Kafka producer to the booking ledger's Notifier
// contract. Publish failures are logged and swallowed; a booking is
// committed before any message goes out, so delivery is best effort.
type Service struct {
	producer Producer
}

func NewService(producer Producer) *Service {
	return &Service{producer: producer}
}

func (s *Service) BookingConfirmed(ctx context.Context, booking *bookings.Booking, event *events.Event) {
	msg := &BookingMessage{
		ID:         uuid.New(),
		Type:       TypeBookingConfirmed,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		EventID:    booking.EventID,
		SeatCount:  booking.SeatCount,
		OccurredAt: time.Now().UTC(),
	}
	if event != nil {
		msg.EventTitle = event.Title
	}
	s.publish(ctx, msg)
}

func (s *Service) BookingCancelled(ctx context.Context, booking *bookings.Booking) {
	msg := &BookingMessage{
		ID:         uuid.New(),
		Type:       TypeBookingCancelled,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		EventID:    booking.EventID,
		SeatCount:  booking.SeatCount,
		OccurredAt: time.Now().UTC(),
	}
	s.publish(ctx, msg)
}

func (s *Service) publish(ctx context.Context, msg *BookingMessage) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(msg); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "Failed to publish booking message", err, map[string]interface{}{
			"booking_id": msg.BookingID.String(),
			"type":       string(msg.Type),
		})
	}
}

func (s *Service) Close() error {
	if s.producer == nil {
		return nil
	}
	return s.producer.Close()
}
