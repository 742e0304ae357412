package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes the capacity check depends on. The
// availability sum runs inside every reserve transaction, so the partial
// index on ACTIVE bookings keeps the locked section short.
func MigrateConstraints(db *gorm.DB) error {
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_event_active
		ON bookings (event_id)
		WHERE status = 'ACTIVE';
	`).Error
	if err != nil {
		return err
	}

	// Bookings listings filter by user and sort by recency
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_created
		ON bookings (user_id, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	// Upcoming/past listings scan active events by date
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_events_status_date
		ON events (status, date);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
