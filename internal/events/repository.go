package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Event, error)
	GetAll(ctx context.Context, query EventListQuery) ([]Event, int64, error)
	GetUpcoming(ctx context.Context, now time.Time, limit int) ([]Event, error)
	GetPast(ctx context.Context, now time.Time, limit int) ([]Event, error)

	// Derived availability reads. Bookings are written only by the
	// booking ledger; this is a read-only aggregation over them.
	ActiveSeatSum(ctx context.Context, eventID uuid.UUID) (int, error)
	ActiveSeatSums(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	var event Event

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&event).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *repository) GetAll(ctx context.Context, query EventListQuery) ([]Event, int64, error) {
	var events []Event
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Event{})

	// Apply filters
	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	if query.Location != "" {
		db = db.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(query.Location)+"%")
	}

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	if query.Tags != "" {
		for _, tag := range strings.Split(query.Tags, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				db = db.Where("tags LIKE ?", "%"+tag+"%")
			}
		}
	}

	// Date filters
	if query.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
			db = db.Where("date >= ?", dateFrom)
		}
	}

	if query.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", query.DateTo); err == nil {
			// Add 24 hours to include the entire day
			dateTo = dateTo.Add(24 * time.Hour)
			db = db.Where("date < ?", dateTo)
		}
	}

	// Count total records
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}
	offset := (query.Page - 1) * query.Limit

	err := db.Order("date ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&events).Error

	return events, totalCount, err
}

// GetUpcoming returns active events with date strictly after now,
// ordered by date ascending.
func (r *repository) GetUpcoming(ctx context.Context, now time.Time, limit int) ([]Event, error) {
	var events []Event
	db := r.db.WithContext(ctx).
		Where("date > ?", now).
		Where("status = ?", StatusActive).
		Order("date ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&events).Error
	return events, err
}

// GetPast returns events with date at or before now, most recent first.
func (r *repository) GetPast(ctx context.Context, now time.Time, limit int) ([]Event, error) {
	var events []Event
	db := r.db.WithContext(ctx).
		Where("date <= ?", now).
		Order("date DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&events).Error
	return events, err
}

func (r *repository) ActiveSeatSum(ctx context.Context, eventID uuid.UUID) (int, error) {
	var sum int
	err := r.db.WithContext(ctx).
		Table("bookings").
		Where("event_id = ?", eventID).
		Where("status = ?", "ACTIVE").
		Select("COALESCE(SUM(seat_count), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *repository) ActiveSeatSums(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	sums := make(map[uuid.UUID]int, len(eventIDs))
	if len(eventIDs) == 0 {
		return sums, nil
	}

	var rows []struct {
		EventID uuid.UUID `gorm:"column:event_id"`
		Total   int       `gorm:"column:total"`
	}

	err := r.db.WithContext(ctx).
		Table("bookings").
		Where("event_id IN ?", eventIDs).
		Where("status = ?", "ACTIVE").
		Select("event_id, COALESCE(SUM(seat_count), 0) AS total").
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		sums[row.EventID] = row.Total
	}
	return sums, nil
}
