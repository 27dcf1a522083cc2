package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"zavio/models"
)

type fieldsResponse struct {
	Fields []models.Field `json:"fields"`
	Count  int            `json:"count"`
}

type fieldResponse struct {
	Field models.Field `json:"field"`
}

type availabilityResponse struct {
	AvailableSlots []models.AvailableSlot `json:"availableSlots"`
}

// Fields lists all bookable venue units.
func (c *Client) Fields(ctx context.Context) ([]models.Field, error) {
	var resp fieldsResponse
	if err := c.get(ctx, "/api/mobile/fields", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Fields, nil
}

// FieldDetail fetches a single field.
func (c *Client) FieldDetail(ctx context.Context, fieldID int64) (*models.Field, error) {
	var resp fieldResponse
	if err := c.get(ctx, fmt.Sprintf("/api/mobile/fields/%d", fieldID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Field, nil
}

// Availability queries the bookable slots for (field, date, duration).
func (c *Client) Availability(ctx context.Context, fieldID int64, date string, duration int) ([]models.AvailableSlot, error) {
	query := url.Values{}
	query.Set("date", date)
	query.Set("duration", strconv.Itoa(duration))
	var resp availabilityResponse
	if err := c.get(ctx, fmt.Sprintf("/api/mobile/fields/%d/availability", fieldID), query, &resp); err != nil {
		return nil, err
	}
	return resp.AvailableSlots, nil
}
