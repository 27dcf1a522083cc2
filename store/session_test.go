package store

import (
	"context"
	"testing"

	"zavio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionUserRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := NewSession(NewMemory(), 42)

	got, err := s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	user := &models.User{ID: "u1", Name: "Martin", Credits: 150}
	require.NoError(t, s.SetUser(ctx, user))

	got, err = s.User(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Martin", got.Name)
	assert.Equal(t, 150.0, got.Credits)
}

func TestSessionTokenProvider(t *testing.T) {
	ctx := context.Background()
	s := NewSession(NewMemory(), 42)

	assert.Equal(t, "", s.Token())

	require.NoError(t, s.SetAuthToken(ctx, "bearer-token"))
	assert.Equal(t, "bearer-token", s.Token())
}

func TestSessionsAreChatScoped(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	first := NewSession(kv, 1)
	second := NewSession(kv, 2)

	require.NoError(t, first.SetAuthToken(ctx, "token-one"))

	assert.Equal(t, "token-one", first.Token())
	assert.Equal(t, "", second.Token())
}

func TestSessionClearWipesAllState(t *testing.T) {
	ctx := context.Background()
	s := NewSession(NewMemory(), 42)

	require.NoError(t, s.SetUser(ctx, &models.User{ID: "u1"}))
	require.NoError(t, s.SetAuthToken(ctx, "token"))
	require.NoError(t, s.SetBookings(ctx, []models.Booking{{ID: "b1"}}))
	require.NoError(t, s.SetPosts(ctx, []models.Post{{ID: "p1"}}))

	require.NoError(t, s.Clear(ctx))

	user, err := s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, "", s.Token())

	bookings, err := s.Bookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	posts, err := s.Posts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
