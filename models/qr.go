package models

// QRValidation is the server's verdict on whether the current user may
// access a venue right now, given a scanned code's identifier.
type QRValidation struct {
	AccessGranted bool     `json:"accessGranted"`
	Message       string   `json:"message"`
	Field         Field    `json:"field"`
	Booking       *Booking `json:"booking,omitempty"`
}
