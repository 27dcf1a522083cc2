package models

// Sport types a field can host.
const (
	SportFootball   = "football"
	SportTennis     = "tennis"
	SportBasketball = "basketball"
	SportPadel      = "padel"
)

// FieldOwner holds the facility operator's contact details.
type FieldOwner struct {
	ID           int64  `json:"id"`
	FacilityName string `json:"facilityName"`
	ContactName  string `json:"contactName"`
	Phone        string `json:"phone"`
}

// Field is a bookable venue unit. Read-only from the client's perspective.
type Field struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	Location     string      `json:"location"`
	PricePerHour float64     `json:"pricePerHour"`
	ImageURL     string      `json:"imageUrl,omitempty"`
	Status       string      `json:"status,omitempty"` // "active" or "maintenance"
	QRCodeID     string      `json:"qrCodeId,omitempty"`
	CreatedAt    string      `json:"createdAt,omitempty"`
	Owner        *FieldOwner `json:"owner,omitempty"`
}

// AvailableSlot is an ephemeral bookable interval computed per
// (field, date, duration) query. Never persisted.
type AvailableSlot struct {
	StartTime string  `json:"startTime"` // HH:MM
	EndTime   string  `json:"endTime"`   // HH:MM
	Price     float64 `json:"price"`
}
