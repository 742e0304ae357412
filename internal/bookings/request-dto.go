package bookings

type CreateBookingRequest struct {
	EventID       string `json:"event_id" binding:"required,uuid"`
	NumberOfSeats int    `json:"number_of_seats" binding:"required"`
}

type BookingListQuery struct {
	Page    int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit   int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Status  string `form:"status" binding:"omitempty,oneof=ACTIVE CANCELLED"`
	EventID string `form:"event_id" binding:"omitempty,uuid"`
	UserID  string `form:"user_id" binding:"omitempty,uuid"`
}
