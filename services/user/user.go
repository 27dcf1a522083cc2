// Package user manages the login session, the cached profile and the
// credit balance for one chat.
package user

import (
	"context"

	"zavio/cache"
	"zavio/datasource"
	"zavio/models"
	"zavio/store"

	"go.uber.org/zap"
)

// AuthDecision is the immutable launch-time verdict the frontend routes on.
type AuthDecision struct {
	Authenticated bool
	User          *models.User
	Token         string
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// UserService defines session and profile operations.
type UserService interface {
	Bootstrap(ctx context.Context) (AuthDecision, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	PublicProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateInterests(ctx context.Context, interests []string) (*models.User, error)
	TopUp(ctx context.Context, amount float64) (*models.User, error)
	Sports(ctx context.Context) ([]string, error)
	SetCredits(ctx context.Context, credits float64) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	DS      datasource.DataSource
	Cache   *cache.Cache
	Session *store.Session
	Logger  *zap.Logger
}

func (s *DefaultUserService) userKey() string {
	return cache.UserKey(s.Session.ChatID())
}
