// Package datasource defines the single data-access surface the services
// are written against, with two interchangeable implementations: Remote
// (the server-backed generation) and Local (the offline mock generation).
package datasource

import (
	"context"

	"zavio/models"
)

// DataSource covers every operation the client performs against its data
// backend. The implementation is selected at composition time.
type DataSource interface {
	// Auth & user.
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Register(ctx context.Context, email, password, name, phone string) (*models.Session, error)
	Profile(ctx context.Context) (*models.User, error)
	PublicProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateInterests(ctx context.Context, interests []string) (*models.User, error)
	TopUpCredits(ctx context.Context, amount float64) (*models.User, error)
	Sports(ctx context.Context) ([]string, error)

	// Fields & availability.
	Fields(ctx context.Context) ([]models.Field, error)
	FieldDetail(ctx context.Context, fieldID int64) (*models.Field, error)
	Availability(ctx context.Context, fieldID int64, date string, duration int) ([]models.AvailableSlot, error)

	// Bookings.
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, *models.User, error)
	Bookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, float64, error)
	ValidateQR(ctx context.Context, qrCodeID string) (*models.QRValidation, error)

	// Feed.
	Posts(ctx context.Context, page, limit int) ([]models.Post, models.PageMeta, error)
	CreatePost(ctx context.Context, content, image string) (*models.Post, error)
	PostDetail(ctx context.Context, postID string) (*models.Post, error)
	LikePost(ctx context.Context, postID string) (models.LikeResult, error)
	AddComment(ctx context.Context, postID, content string) (*models.Comment, error)
	LikeComment(ctx context.Context, commentID string) (models.LikeResult, error)
}
