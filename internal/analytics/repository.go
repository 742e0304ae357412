package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gatherly/internal/bookings"
	"gatherly/internal/events"
	"gatherly/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Repository interface {
	GetOverviewStats(ctx context.Context) (*OverviewStats, error)
	GetEventStats(ctx context.Context, eventID uuid.UUID) (*EventStats, error)
	GetTopEvents(ctx context.Context, limit int) ([]EventStats, error)
	GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOverviewStats(ctx context.Context) (*OverviewStats, error) {
	stats := &OverviewStats{}
	db := r.db.WithContext(ctx)

	type countRow struct {
		Status string
		Count  int
	}

	var eventCounts []countRow
	err := db.Model(&events.Event{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&eventCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	for _, row := range eventCounts {
		stats.TotalEvents += row.Count
		switch events.EventStatus(row.Status) {
		case events.StatusActive:
			stats.ActiveEvents = row.Count
		case events.StatusRetired:
			stats.RetiredEvents = row.Count
		}
	}

	var bookingCounts []countRow
	err = db.Model(&bookings.Booking{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&bookingCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	for _, row := range bookingCounts {
		stats.TotalBookings += row.Count
		switch bookings.Status(row.Status) {
		case bookings.StatusActive:
			stats.ActiveBookings = row.Count
		case bookings.StatusCancelled:
			stats.CancelledBookings = row.Count
		}
	}
	if stats.TotalBookings > 0 {
		stats.CancellationRate = float64(stats.CancelledBookings) / float64(stats.TotalBookings) * 100
	}

	var userCount int64
	if err := db.Model(&users.User{}).Count(&userCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	stats.TotalUsers = int(userCount)

	var seatsBooked int64
	err = db.Model(&bookings.Booking{}).
		Select("COALESCE(SUM(seat_count), 0)").
		Where("status = ?", bookings.StatusActive).
		Scan(&seatsBooked).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum booked seats: %w", err)
	}
	stats.SeatsBooked = int(seatsBooked)

	return stats, nil
}

func (r *repository) GetEventStats(ctx context.Context, eventID uuid.UUID) (*EventStats, error) {
	db := r.db.WithContext(ctx)

	var event events.Event
	err := db.Where("id = ?", eventID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	type ledgerRow struct {
		ActiveBookings int
		SeatsBooked    int
		Cancellations  int
	}
	var row ledgerRow
	err = db.Model(&bookings.Booking{}).
		Select(`
			COUNT(*) FILTER (WHERE status = 'ACTIVE') as active_bookings,
			COALESCE(SUM(seat_count) FILTER (WHERE status = 'ACTIVE'), 0) as seats_booked,
			COUNT(*) FILTER (WHERE status = 'CANCELLED') as cancellations`).
		Where("event_id = ?", eventID).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate event ledger: %w", err)
	}

	return buildEventStats(&event, row.SeatsBooked, row.ActiveBookings, row.Cancellations), nil
}

func (r *repository) GetTopEvents(ctx context.Context, limit int) ([]EventStats, error) {
	type topRow struct {
		events.Event
		SeatsBooked    int
		ActiveBookings int
		Cancellations  int
	}

	var rows []topRow
	err := r.db.WithContext(ctx).
		Model(&events.Event{}).
		Select(`events.*,
			COALESCE(SUM(b.seat_count) FILTER (WHERE b.status = 'ACTIVE'), 0) as seats_booked,
			COUNT(b.id) FILTER (WHERE b.status = 'ACTIVE') as active_bookings,
			COUNT(b.id) FILTER (WHERE b.status = 'CANCELLED') as cancellations`).
		Joins("LEFT JOIN bookings b ON b.event_id = events.id").
		Group("events.id").
		Order("seats_booked DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank events: %w", err)
	}

	stats := make([]EventStats, 0, len(rows))
	for i := range rows {
		stats = append(stats, *buildEventStats(&rows[i].Event, rows[i].SeatsBooked, rows[i].ActiveBookings, rows[i].Cancellations))
	}
	return stats, nil
}

func (r *repository) GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStats, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	var rows []DailyBookingStats
	err := r.db.WithContext(ctx).
		Model(&bookings.Booking{}).
		Select(`
			TO_CHAR(created_at, 'YYYY-MM-DD') as date,
			COUNT(*) as bookings,
			COALESCE(SUM(seat_count), 0) as seats_booked,
			COUNT(*) FILTER (WHERE status = 'CANCELLED') as cancellations`).
		Where("created_at >= ?", since).
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily bookings: %w", err)
	}
	return rows, nil
}

func buildEventStats(event *events.Event, seatsBooked, activeBookings, cancellations int) *EventStats {
	available := event.TotalSeats - seatsBooked
	if available < 0 {
		available = 0
	}
	utilization := 0.0
	if event.TotalSeats > 0 {
		utilization = float64(seatsBooked) / float64(event.TotalSeats) * 100
	}
	return &EventStats{
		EventID:        event.ID,
		Title:          event.Title,
		Date:           event.Date,
		TotalSeats:     event.TotalSeats,
		SeatsBooked:    seatsBooked,
		AvailableSeats: available,
		Utilization:    utilization,
		ActiveBookings: activeBookings,
		Cancellations:  cancellations,
	}
}
