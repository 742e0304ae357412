package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"gatherly/internal/bookings"
	"gatherly/internal/events"
	"gatherly/internal/shared/config"
	"gatherly/internal/shared/database"
	"gatherly/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Gatherly Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"bookings",
		"events",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	eventIDs, err := s.SeedEvents(userIDs["admin"])
	if err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	if err := s.SeedBookings(userIDs, eventIDs); err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedUsers creates 3 users: 1 admin and 2 regular users
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"admin", "Admin", "User", "admin@gatherly.dev", users.RoleAdmin},
		{"user1", "Asha", "Patel", "asha@gatherly.dev", users.RoleUser},
		{"user2", "Rohan", "Mehta", "rohan@gatherly.dev", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedEvents creates sample events
func (s *Seeder) SeedEvents(adminID uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🎪 Seeding events...")

	var eventIDs []uuid.UUID

	eventsData := []struct {
		title       string
		description string
		location    string
		timeWindow  string
		tags        string
		totalSeats  int
		daysFromNow int
	}{
		{
			title:       "Tech Conference 2026",
			description: "Annual technology conference featuring the latest innovations and industry leaders.",
			location:    "Tech Hub Convention Center",
			timeWindow:  "09:00 AM - 06:00 PM",
			tags:        "technology,business",
			totalSeats:  120,
			daysFromNow: 30,
		},
		{
			title:       "Classical Music Evening",
			description: "An elegant evening of classical music performed by renowned musicians.",
			location:    "Grand Opera House",
			timeWindow:  "07:00 PM - 10:00 PM",
			tags:        "music,arts",
			totalSeats:  80,
			daysFromNow: 45,
		},
		{
			title:       "Startup Pitch Night",
			description: "Watch promising startups pitch their ideas to investors and industry experts.",
			location:    "Innovation Center",
			timeWindow:  "06:00 PM - 09:00 PM",
			tags:        "technology,business",
			totalSeats:  60,
			daysFromNow: 15,
		},
		{
			title:       "Food & Wine Festival",
			description: "A delightful festival celebrating local cuisine and fine wines.",
			location:    "Central Park Pavilion",
			timeWindow:  "11:00 AM - 08:00 PM",
			tags:        "food",
			totalSeats:  200,
			daysFromNow: 60,
		},
		{
			title:       "Art Gallery Opening",
			description: "Opening night of contemporary art exhibition featuring local and international artists.",
			location:    "Modern Art Museum",
			timeWindow:  "05:00 PM - 09:00 PM",
			tags:        "arts",
			totalSeats:  50,
			daysFromNow: 25,
		},
	}

	for _, eventData := range eventsData {
		event := events.Event{
			ID:          uuid.New(),
			Title:       eventData.title,
			Description: eventData.description,
			Date:        time.Now().UTC().AddDate(0, 0, eventData.daysFromNow),
			TimeWindow:  eventData.timeWindow,
			Location:    eventData.location,
			Tags:        eventData.tags,
			TotalSeats:  eventData.totalSeats,
			Status:      events.StatusActive,
			CreatedBy:   adminID,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&event).Error; err != nil {
			return nil, fmt.Errorf("failed to create event %s: %w", event.Title, err)
		}

		eventIDs = append(eventIDs, event.ID)
		fmt.Printf("    ✅ Created event: %s (%d seats)\n", event.Title, event.TotalSeats)
	}

	return eventIDs, nil
}

// SeedBookings creates a few bookings so listings and stats have data
func (s *Seeder) SeedBookings(userIDs map[string]uuid.UUID, eventIDs []uuid.UUID) error {
	fmt.Println("  🎟️ Seeding bookings...")

	bookingsData := []struct {
		userKey    string
		eventIndex int
		seatCount  int
		status     bookings.Status
	}{
		{"user1", 0, 2, bookings.StatusActive},
		{"user1", 1, 4, bookings.StatusActive},
		{"user2", 0, 1, bookings.StatusActive},
		{"user2", 2, 3, bookings.StatusCancelled},
	}

	for _, bookingData := range bookingsData {
		if bookingData.eventIndex >= len(eventIDs) {
			continue
		}

		booking := bookings.Booking{
			ID:        uuid.New(),
			UserID:    userIDs[bookingData.userKey],
			EventID:   eventIDs[bookingData.eventIndex],
			SeatCount: bookingData.seatCount,
			Status:    bookingData.status,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if bookingData.status == bookings.StatusCancelled {
			now := time.Now()
			booking.CancelledAt = &now
		}

		if err := s.db.PostgreSQL.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		fmt.Printf("    ✅ Created booking: %d seat(s), %s\n", booking.SeatCount, booking.Status)
	}

	return nil
}
