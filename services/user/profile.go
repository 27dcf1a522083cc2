package user

import (
	"context"
	"fmt"

	"zavio/cache"
	"zavio/models"
)

// Profile returns the cached user, fetching from the backend when the
// cache entry is missing or stale. When the fetch fails but a stored copy
// exists, the stored copy is served so the client stays usable offline.
func (s *DefaultUserService) Profile(ctx context.Context) (*models.User, error) {
	user, err := cache.Get(ctx, s.Cache, s.userKey(), cache.StaleUser, func(ctx context.Context) (models.User, error) {
		fetched, err := s.DS.Profile(ctx)
		if err != nil {
			if stored, storeErr := s.Session.User(ctx); storeErr == nil && stored != nil {
				return *stored, nil
			}
			return models.User{}, err
		}
		_ = s.Session.SetUser(ctx, fetched)
		return *fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// PublicProfile fetches another user's profile through the cache.
func (s *DefaultUserService) PublicProfile(ctx context.Context, userID string) (*models.User, error) {
	profile, err := cache.Get(ctx, s.Cache, cache.ProfileKey(userID), cache.StaleProfile, func(ctx context.Context) (models.User, error) {
		fetched, err := s.DS.PublicProfile(ctx, userID)
		if err != nil {
			return models.User{}, err
		}
		return *fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateInterests replaces the sport interests and refreshes the user entry
// immediately from the response.
func (s *DefaultUserService) UpdateInterests(ctx context.Context, interests []string) (*models.User, error) {
	updated, err := s.DS.UpdateInterests(ctx, interests)
	if err != nil {
		return nil, err
	}
	if err := s.Session.SetUser(ctx, updated); err != nil {
		return nil, fmt.Errorf("persisting user: %w", err)
	}
	s.Cache.Set(s.userKey(), *updated)
	return updated, nil
}

// TopUp adds credits. The balance in the response is authoritative and
// overwrites both the cache entry and the stored copy.
func (s *DefaultUserService) TopUp(ctx context.Context, amount float64) (*models.User, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("top-up amount must be positive")
	}
	updated, err := s.DS.TopUpCredits(ctx, amount)
	if err != nil {
		return nil, err
	}
	if err := s.Session.SetUser(ctx, updated); err != nil {
		return nil, fmt.Errorf("persisting user: %w", err)
	}
	s.Cache.Set(s.userKey(), *updated)
	return updated, nil
}

// Sports lists the sport types offered by the platform.
func (s *DefaultUserService) Sports(ctx context.Context) ([]string, error) {
	return s.DS.Sports(ctx)
}

// SetCredits adopts a server-reported balance (after a booking debit or a
// cancellation refund) into the cached and stored user. It reads the stored
// copy directly so it works right after the user entry was invalidated.
func (s *DefaultUserService) SetCredits(ctx context.Context, credits float64) error {
	current, err := s.Session.User(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("no stored user to update")
	}
	updated := *current
	updated.Credits = credits
	if err := s.Session.SetUser(ctx, &updated); err != nil {
		return fmt.Errorf("persisting user: %w", err)
	}
	s.Cache.Set(s.userKey(), updated)
	return nil
}
