package api

import (
	"context"
	"fmt"
	"net/url"

	"zavio/models"
)

type createBookingResponse struct {
	Success bool           `json:"success"`
	Booking models.Booking `json:"booking"`
	User    models.User    `json:"user"`
}

type bookingsResponse struct {
	Bookings []models.Booking `json:"bookings"`
}

type cancelBookingResponse struct {
	Booking models.Booking `json:"booking"`
	Refund  float64        `json:"refund"`
}

// CreateBooking submits a booking. The returned user carries the
// server-reported credit balance after the debit.
func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, *models.User, error) {
	var resp createBookingResponse
	if err := c.post(ctx, "/api/mobile/bookings", req, &resp); err != nil {
		return nil, nil, err
	}
	return &resp.Booking, &resp.User, nil
}

// Bookings lists the user's bookings, optionally filtered by status and date.
func (c *Client) Bookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Date != "" {
		query.Set("date", filter.Date)
	}
	var resp bookingsResponse
	if err := c.get(ctx, "/api/mobile/bookings", query, &resp); err != nil {
		return nil, err
	}
	return resp.Bookings, nil
}

// CancelBooking cancels a booking and reports the refunded amount.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, float64, error) {
	var resp cancelBookingResponse
	path := fmt.Sprintf("/api/mobile/bookings/%s/cancel", url.PathEscape(bookingID))
	if err := c.patch(ctx, path, nil, &resp); err != nil {
		return nil, 0, err
	}
	return &resp.Booking, resp.Refund, nil
}

// ValidateQR asks the server whether the scanned code grants venue access
// to the current user right now.
func (c *Client) ValidateQR(ctx context.Context, qrCodeID string) (*models.QRValidation, error) {
	var resp models.QRValidation
	if err := c.get(ctx, fmt.Sprintf("/api/mobile/qr/%s", url.PathEscape(qrCodeID)), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
