package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"zavio/models"
)

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the registration fields.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type userResponse struct {
	User models.User `json:"user"`
}

type topUpResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

type interestsResponse struct {
	Success bool        `json:"success"`
	User    models.User `json:"user"`
}

type sportsResponse struct {
	Data []string `json:"data"`
}

type activityResponse struct {
	Data []models.ActivityEntry `json:"data"`
	Meta models.PageMeta        `json:"meta"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*models.Session, error) {
	var resp sessionResponse
	if err := c.post(ctx, "/api/users/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &models.Session{Token: resp.Token, User: &resp.User}, nil
}

// Register creates an account and returns the fresh session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.Session, error) {
	var resp sessionResponse
	if err := c.post(ctx, "/api/users/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &models.Session{Token: resp.Token, User: &resp.User}, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var resp userResponse
	if err := c.get(ctx, "/api/users/auth/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UpdateInterests replaces the user's sport interests.
func (c *Client) UpdateInterests(ctx context.Context, interests []string) (*models.User, error) {
	var resp interestsResponse
	body := map[string][]string{"interests": interests}
	if err := c.patch(ctx, "/api/users/auth/profile", body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// TopUpCredits adds the given amount to the user's prepaid balance and
// returns the user with the updated balance.
func (c *Client) TopUpCredits(ctx context.Context, amount float64) (*models.User, error) {
	var resp topUpResponse
	body := map[string]float64{"amount": amount}
	if err := c.post(ctx, "/api/users/credits/top-up", body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// PublicProfile fetches another user's public profile.
func (c *Client) PublicProfile(ctx context.Context, userID string) (*models.User, error) {
	var resp userResponse
	if err := c.get(ctx, fmt.Sprintf("/api/users/%s/profile", url.PathEscape(userID)), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Sports lists the sport types known to the platform.
func (c *Client) Sports(ctx context.Context) ([]string, error) {
	var resp sportsResponse
	if err := c.get(ctx, "/api/sports", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Activity pages through the authenticated user's activity history.
func (c *Client) Activity(ctx context.Context, page, limit int) ([]models.ActivityEntry, models.PageMeta, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	var resp activityResponse
	if err := c.get(ctx, "/api/users/me/activity", query, &resp); err != nil {
		return nil, models.PageMeta{}, err
	}
	return resp.Data, resp.Meta, nil
}
