package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v", 0))
	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", got)

	require.NoError(t, m.Delete(ctx, "k", "also-missing"))
	_, ok, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryTTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "short", "v", 20*time.Millisecond))
	require.NoError(t, m.Set(ctx, "forever", "v", 0))

	_, ok, err := m.Get(ctx, "short")
	require.NoError(t, err)
	assert.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, ok, err = m.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = m.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)
}
