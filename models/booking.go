package models

// Booking status values. Transitions are server-authoritative; the client
// never flips a status locally.
const (
	BookingConfirmed = "confirmed"
	BookingPending   = "pending"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Booking represents a confirmed booking record.
type Booking struct {
	ID        string  `json:"id"`
	FieldID   int64   `json:"fieldId"`
	FieldName string  `json:"fieldName,omitempty"`
	UserID    string  `json:"userId,omitempty"`
	Date      string  `json:"date"`      // YYYY-MM-DD
	StartTime string  `json:"startTime"` // HH:MM
	EndTime   string  `json:"endTime"`   // HH:MM
	Duration  int     `json:"duration"`  // minutes
	Status    string  `json:"status"`
	Price     float64 `json:"price"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	FieldID   int64  `json:"fieldId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Duration  int    `json:"duration"`
}

// BookingFilter narrows a bookings listing. Zero values mean "no filter".
type BookingFilter struct {
	Status string
	Date   string
}
