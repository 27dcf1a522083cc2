package datasource

import (
	"context"

	"zavio/api"
	"zavio/models"
)

// Remote is the server-backed generation: every operation is a gateway
// call, the server is authoritative.
type Remote struct {
	client *api.Client
}

// NewRemote wraps a gateway client.
func NewRemote(client *api.Client) *Remote {
	return &Remote{client: client}
}

func (r *Remote) Login(ctx context.Context, email, password string) (*models.Session, error) {
	return r.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
}

func (r *Remote) Register(ctx context.Context, email, password, name, phone string) (*models.Session, error) {
	return r.client.Register(ctx, api.RegisterRequest{Email: email, Password: password, Name: name, Phone: phone})
}

func (r *Remote) Profile(ctx context.Context) (*models.User, error) {
	return r.client.Profile(ctx)
}

func (r *Remote) PublicProfile(ctx context.Context, userID string) (*models.User, error) {
	return r.client.PublicProfile(ctx, userID)
}

func (r *Remote) UpdateInterests(ctx context.Context, interests []string) (*models.User, error) {
	return r.client.UpdateInterests(ctx, interests)
}

func (r *Remote) TopUpCredits(ctx context.Context, amount float64) (*models.User, error) {
	return r.client.TopUpCredits(ctx, amount)
}

func (r *Remote) Sports(ctx context.Context) ([]string, error) {
	return r.client.Sports(ctx)
}

func (r *Remote) Fields(ctx context.Context) ([]models.Field, error) {
	return r.client.Fields(ctx)
}

func (r *Remote) FieldDetail(ctx context.Context, fieldID int64) (*models.Field, error) {
	return r.client.FieldDetail(ctx, fieldID)
}

func (r *Remote) Availability(ctx context.Context, fieldID int64, date string, duration int) ([]models.AvailableSlot, error) {
	return r.client.Availability(ctx, fieldID, date, duration)
}

func (r *Remote) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, *models.User, error) {
	return r.client.CreateBooking(ctx, req)
}

func (r *Remote) Bookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	return r.client.Bookings(ctx, filter)
}

func (r *Remote) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, float64, error) {
	return r.client.CancelBooking(ctx, bookingID)
}

func (r *Remote) ValidateQR(ctx context.Context, qrCodeID string) (*models.QRValidation, error) {
	return r.client.ValidateQR(ctx, qrCodeID)
}

func (r *Remote) Posts(ctx context.Context, page, limit int) ([]models.Post, models.PageMeta, error) {
	return r.client.Posts(ctx, page, limit)
}

func (r *Remote) CreatePost(ctx context.Context, content, image string) (*models.Post, error) {
	return r.client.CreatePost(ctx, content, image)
}

func (r *Remote) PostDetail(ctx context.Context, postID string) (*models.Post, error) {
	return r.client.PostDetail(ctx, postID)
}

func (r *Remote) LikePost(ctx context.Context, postID string) (models.LikeResult, error) {
	return r.client.LikePost(ctx, postID)
}

func (r *Remote) AddComment(ctx context.Context, postID, content string) (*models.Comment, error) {
	return r.client.AddComment(ctx, postID, content)
}

func (r *Remote) LikeComment(ctx context.Context, commentID string) (models.LikeResult, error) {
	return r.client.LikeComment(ctx, commentID)
}
