package user

import (
	"context"
	"fmt"

	"zavio/cache"

	"go.uber.org/zap"

	"zavio/models"
)

// Bootstrap reads the persisted session once at launch. Login state is
// "token present AND user present"; an expired token is only discovered by
// a later 401, there is no refresh.
func (s *DefaultUserService) Bootstrap(ctx context.Context) (AuthDecision, error) {
	token, err := s.Session.AuthToken(ctx)
	if err != nil {
		return AuthDecision{}, fmt.Errorf("reading stored token: %w", err)
	}
	storedUser, err := s.Session.User(ctx)
	if err != nil {
		return AuthDecision{}, fmt.Errorf("reading stored user: %w", err)
	}

	decision := AuthDecision{
		Authenticated: token != "" && storedUser != nil,
		User:          storedUser,
		Token:         token,
	}
	if decision.Authenticated {
		s.Cache.Set(s.userKey(), *storedUser)
	}
	return decision, nil
}

// Login validates the form, exchanges credentials, and persists the session.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	session, err := s.DS.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.adoptSession(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Info("user logged in", zap.String("userID", session.User.ID))
	return session.User, nil
}

// Register validates the form, creates the account, and persists the session.
func (s *DefaultUserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}

	session, err := s.DS.Register(ctx, input.Email, input.Password, input.Name, input.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.adoptSession(ctx, session); err != nil {
		return nil, err
	}
	return session.User, nil
}

func (s *DefaultUserService) adoptSession(ctx context.Context, session *models.Session) error {
	if err := s.Session.SetAuthToken(ctx, session.Token); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	if err := s.Session.SetUser(ctx, session.User); err != nil {
		return fmt.Errorf("persisting user: %w", err)
	}
	s.Cache.Set(s.userKey(), *session.User)
	return nil
}

// Logout clears token, user, bookings and posts from persistent storage and
// drops the chat's cached entries. The next launch routes to login.
func (s *DefaultUserService) Logout(ctx context.Context) error {
	if err := s.Session.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	s.Cache.Invalidate(s.userKey(), cache.BookingsKey(s.Session.ChatID()))
	return nil
}
