package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"zavio/models"
)

// Session exposes the persisted login state and legacy local-mode data for
// one chat. Keys are scoped by chat id so independent conversations never
// share a login.
type Session struct {
	store  Store
	chatID int64
}

// NewSession binds chat-scoped accessors to a store.
func NewSession(s Store, chatID int64) *Session {
	return &Session{store: s, chatID: chatID}
}

func (s *Session) key(name string) string {
	return fmt.Sprintf("%s:%d", name, s.chatID)
}

// User returns the cached user, or nil when none is stored.
func (s *Session) User(ctx context.Context) (*models.User, error) {
	raw, ok, err := s.store.Get(ctx, s.key("user"))
	if err != nil || !ok {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("parsing stored user: %w", err)
	}
	return &user, nil
}

// SetUser persists the cached user copy.
func (s *Session) SetUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshaling user: %w", err)
	}
	return s.store.Set(ctx, s.key("user"), string(data), 0)
}

// AuthToken returns the persisted bearer token, or "" when logged out.
func (s *Session) AuthToken(ctx context.Context) (string, error) {
	token, _, err := s.store.Get(ctx, s.key("token"))
	return token, err
}

// SetAuthToken persists the bearer token.
func (s *Session) SetAuthToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, s.key("token"), token, 0)
}

// Token implements api.TokenProvider. Store errors read as "no token";
// the resulting 401 surfaces through the normal error path.
func (s *Session) Token() string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	token, _ := s.AuthToken(ctx)
	return token
}

// Bookings returns the legacy local-mode booking list.
func (s *Session) Bookings(ctx context.Context) ([]models.Booking, error) {
	raw, ok, err := s.store.Get(ctx, s.key("bookings"))
	if err != nil || !ok {
		return nil, err
	}
	var bookings []models.Booking
	if err := json.Unmarshal([]byte(raw), &bookings); err != nil {
		return nil, fmt.Errorf("parsing stored bookings: %w", err)
	}
	return bookings, nil
}

// SetBookings persists the legacy local-mode booking list.
func (s *Session) SetBookings(ctx context.Context, bookings []models.Booking) error {
	data, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("marshaling bookings: %w", err)
	}
	return s.store.Set(ctx, s.key("bookings"), string(data), 0)
}

// Posts returns the legacy local-mode feed.
func (s *Session) Posts(ctx context.Context) ([]models.Post, error) {
	raw, ok, err := s.store.Get(ctx, s.key("posts"))
	if err != nil || !ok {
		return nil, err
	}
	var posts []models.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, fmt.Errorf("parsing stored posts: %w", err)
	}
	return posts, nil
}

// SetPosts persists the legacy local-mode feed.
func (s *Session) SetPosts(ctx context.Context, posts []models.Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("marshaling posts: %w", err)
	}
	return s.store.Set(ctx, s.key("posts"), string(data), 0)
}

// Clear wipes user, token, bookings and posts. Used by logout.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, s.key("user"), s.key("token"), s.key("bookings"), s.key("posts"))
}

// ChatID identifies the conversation this session belongs to.
func (s *Session) ChatID() int64 { return s.chatID }

// Raw exposes the underlying store for adjacent state (wizard sessions).
func (s *Session) Raw() Store { return s.store }
