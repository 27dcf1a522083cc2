// Package booking drives the availability/booking negotiation: a three-step
// wizard persisted in the key-value store, availability queries with a
// shorter-duration fallback search, and submission guarded by the credit
// balance.
package booking

import (
	"context"

	"zavio/cache"
	"zavio/datasource"
	"zavio/models"
	"zavio/services/user"
	"zavio/store"

	"go.uber.org/zap"
)

// Alternative is the longest bookable slot found at a shorter duration,
// offered when the requested duration has no availability.
type Alternative struct {
	Duration int                  `json:"duration"`
	Slot     models.AvailableSlot `json:"slot"`
}

// Quote summarizes the pending booking shown in the confirmation dialog.
type Quote struct {
	FieldName string
	Date      string
	StartTime string
	EndTime   string
	Duration  int
	Price     float64
}

// BookingService defines the negotiation workflow plus the booking reads.
type BookingService interface {
	Fields(ctx context.Context) ([]models.Field, error)
	Availability(ctx context.Context, fieldID int64, date string, duration int) ([]models.AvailableSlot, error)
	LongestAlternative(ctx context.Context, fieldID int64, date string, duration int) (*Alternative, error)
	Bookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, float64, error)
	ValidateQR(ctx context.Context, qrCodeID string) (*models.QRValidation, error)

	StartWizard(ctx context.Context) (*Wizard, error)
	CurrentWizard(ctx context.Context) (*Wizard, error)
	SelectField(ctx context.Context, fieldID int64) (*Wizard, error)
	SetDate(ctx context.Context, date string) (*Wizard, error)
	SetDuration(ctx context.Context, minutes int) (*Wizard, error)
	FindTimes(ctx context.Context) (*Wizard, error)
	SelectTime(ctx context.Context, startTime string) (*Wizard, error)
	AcceptAlternative(ctx context.Context) (*Wizard, error)
	Quote(ctx context.Context) (*Quote, error)
	Confirm(ctx context.Context) (*models.Booking, error)
	Abort(ctx context.Context) error
}

// DefaultBookingService implements BookingService for one chat.
type DefaultBookingService struct {
	DS     datasource.DataSource
	Cache  *cache.Cache
	Store  store.Store
	Users  user.UserService
	ChatID int64
	Logger *zap.Logger
}

// Fields lists the bookable courts through the cache.
func (s *DefaultBookingService) Fields(ctx context.Context) ([]models.Field, error) {
	return cache.Get(ctx, s.Cache, cache.FieldsKey(), cache.StaleFields, func(ctx context.Context) ([]models.Field, error) {
		return s.DS.Fields(ctx)
	})
}

// Bookings lists the user's bookings through the cache. Filtered listings
// bypass the cache: the cached entry only covers the unfiltered read.
func (s *DefaultBookingService) Bookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	if filter != (models.BookingFilter{}) {
		return s.DS.Bookings(ctx, filter)
	}
	return cache.Get(ctx, s.Cache, cache.BookingsKey(s.ChatID), cache.StaleBookings, func(ctx context.Context) ([]models.Booking, error) {
		return s.DS.Bookings(ctx, models.BookingFilter{})
	})
}

// CancelBooking cancels a booking. The refund changed the balance, so the
// bookings and user entries are invalidated.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, float64, error) {
	cancelled, refund, err := s.DS.CancelBooking(ctx, bookingID)
	if err != nil {
		return nil, 0, err
	}
	s.Cache.Invalidate(cache.BookingsKey(s.ChatID), cache.UserKey(s.ChatID))
	s.Logger.Info("booking cancelled",
		zap.String("bookingID", bookingID), zap.Float64("refund", refund))
	return cancelled, refund, nil
}

// ValidateQR checks venue access for a scanned code. Always a live call:
// the verdict depends on the current time.
func (s *DefaultBookingService) ValidateQR(ctx context.Context, qrCodeID string) (*models.QRValidation, error) {
	return s.DS.ValidateQR(ctx, qrCodeID)
}
