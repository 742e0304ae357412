package bookings

import (
	"context"
	"errors"
	"time"

	"gatherly/internal/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Transaction control. fn runs with a transactional handle stashed in
	// its context; every other method picks that handle up when present.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	// Ledger writes
	CreateBooking(ctx context.Context, booking *Booking) error
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error

	// Ledger reads
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingForUpdate(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	// Event-side reads used inside the reserve transaction
	GetEventForUpdate(ctx context.Context, eventID uuid.UUID) (*events.Event, error)
	GetEvent(ctx context.Context, eventID uuid.UUID) (*events.Event, error)
	SumActiveSeats(ctx context.Context, eventID uuid.UUID) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type txKey struct{}

// conn returns the transactional handle from ctx when one is present,
// otherwise the base connection.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func (r *repository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	return r.conn(ctx).Create(booking).Error
}

func (r *repository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if cancelledAt != nil {
		updates["cancelled_at"] = cancelledAt
	}
	result := r.conn(ctx).Model(&Booking{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.conn(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetBookingByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.conn(ctx).
		Preload("User").
		Preload("Event").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// GetBookingForUpdate locks the booking row so concurrent cancels of the
// same booking serialize. Call inside WithTx.
func (r *repository) GetBookingForUpdate(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.conn(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	db := r.conn(ctx).Model(&Booking{}).Where("user_id = ?", userID)
	return r.listBookings(db, query)
}

func (r *repository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	db := r.conn(ctx).Model(&Booking{})
	if query.UserID != "" {
		db = db.Where("user_id = ?", query.UserID)
	}
	return r.listBookings(db, query)
}

func (r *repository) listBookings(db *gorm.DB, query BookingListQuery) ([]Booking, int64, error) {
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.EventID != "" {
		db = db.Where("event_id = ?", query.EventID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	var bookings []Booking
	err := db.
		Preload("Event").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// GetEventForUpdate locks the event row for the duration of the enclosing
// transaction. Reserves for the same event serialize on this lock, which
// is what makes check-then-insert safe.
func (r *repository) GetEventForUpdate(ctx context.Context, eventID uuid.UUID) (*events.Event, error) {
	var event events.Event
	err := r.conn(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", eventID).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetEvent(ctx context.Context, eventID uuid.UUID) (*events.Event, error) {
	var event events.Event
	err := r.conn(ctx).Where("id = ?", eventID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// SumActiveSeats returns the number of seats held by ACTIVE bookings for
// the event. Availability is always derived from this sum, never stored.
func (r *repository) SumActiveSeats(ctx context.Context, eventID uuid.UUID) (int, error) {
	var sum int64
	err := r.conn(ctx).
		Model(&Booking{}).
		Select("COALESCE(SUM(seat_count), 0)").
		Where("event_id = ? AND status = ?", eventID, StatusActive).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	return int(sum), nil
}
