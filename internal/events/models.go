package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a schedulable happening with a fixed seat capacity.
// TotalSeats is set at creation and never changes afterwards; seat
// availability is always derived from the live booking set, so the
// model carries no mutable availability counter.
type Event struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string      `json:"title" gorm:"not null;size:255"`
	Description string      `json:"description" gorm:"type:text"`
	Date        time.Time   `json:"date" gorm:"not null;index"`
	TimeWindow  string      `json:"time" gorm:"column:time_window;size:50"`
	Location    string      `json:"location" gorm:"not null;size:255"`
	Tags        string      `json:"tags" gorm:"size:500"`
	TotalSeats  int         `json:"total_seats" gorm:"not null;check:total_seats > 0"`
	ImageURL    string      `json:"image_url" gorm:"size:500"`
	Status      EventStatus `json:"status" gorm:"type:varchar(20);default:'active'"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

type EventResponse struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Date           time.Time   `json:"date"`
	TimeWindow     string      `json:"time"`
	Location       string      `json:"location"`
	Tags           []string    `json:"tags"`
	TotalSeats     int         `json:"total_seats"`
	AvailableSeats int         `json:"available_seats"`
	ImageURL       string      `json:"image_url"`
	Status         EventStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=6,max=255"`
	Description string    `json:"description" binding:"required,min=6,max=2000"`
	Date        time.Time `json:"date" binding:"required"`
	TimeWindow  string    `json:"time" binding:"required,event_time_window"`
	Location    string    `json:"location" binding:"required,min=3,max=255"`
	Tags        string    `json:"tags" binding:"required,event_tags"`
	TotalSeats  int       `json:"total_seats" binding:"required,min=1,max=100000"`
	ImageURL    string    `json:"image_url" binding:"omitempty,url"`
}

// UpdateEventRequest carries partial event updates. TotalSeats is
// present only so the service can reject attempts to change it.
type UpdateEventRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=6,max=255"`
	Description *string    `json:"description" binding:"omitempty,min=6,max=2000"`
	Date        *time.Time `json:"date"`
	TimeWindow  *string    `json:"time" binding:"omitempty,event_time_window"`
	Location    *string    `json:"location" binding:"omitempty,min=3,max=255"`
	Tags        *string    `json:"tags" binding:"omitempty,event_tags"`
	TotalSeats  *int       `json:"total_seats"`
	ImageURL    *string    `json:"image_url" binding:"omitempty,url"`
}

type EventListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Location string `form:"location"`
	Tags     string `form:"tags"`
	Status   string `form:"status" binding:"omitempty,oneof=active retired"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// ToResponse converts an Event to its API shape. AvailableSeats is
// populated separately by the service from the derived booking sum.
func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		TimeWindow:  e.TimeWindow,
		Location:    e.Location,
		Tags:        splitTags(e.Tags),
		TotalSeats:  e.TotalSeats,
		ImageURL:    e.ImageURL,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}
