package database

import (
	"gatherly/internal/bookings"
	"gatherly/internal/events"
	"gatherly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&users.User{},
		&events.Event{},
		&bookings.Booking{},
	)
	if err != nil {
		return err
	}
	return MigrateConstraints(db)
}
