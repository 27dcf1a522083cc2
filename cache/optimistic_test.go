package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Likes int
	Liked bool
}

func toggle(c counter) counter {
	if c.Liked {
		c.Liked = false
		c.Likes--
	} else {
		c.Liked = true
		c.Likes++
	}
	return c
}

func TestOptimisticAppliesThenReconcilesWithServerTruth(t *testing.T) {
	c := newTestCache()
	c.Set("k", counter{Likes: 3})

	var seenDuringEffect counter
	result, err := Optimistic(context.Background(), c, "k",
		toggle,
		func(ctx context.Context) (int, error) {
			seenDuringEffect, _ = Lookup[counter](c, "k")
			// Server counted an extra like from someone else.
			return 5, nil
		},
		func(cur counter, serverLikes int) counter {
			cur.Likes = serverLikes
			return cur
		},
	)
	require.NoError(t, err)
	assert.Equal(t, 5, result)

	// The tentative value was visible while the effect ran.
	assert.Equal(t, counter{Likes: 4, Liked: true}, seenDuringEffect)

	final, ok := Lookup[counter](c, "k")
	require.True(t, ok)
	assert.Equal(t, counter{Likes: 5, Liked: true}, final)
}

func TestOptimisticRestoresSnapshotOnFailure(t *testing.T) {
	c := newTestCache()
	original := counter{Likes: 3, Liked: false}
	c.Set("k", original)

	_, err := Optimistic(context.Background(), c, "k",
		toggle,
		func(ctx context.Context) (int, error) { return 0, assert.AnError },
		func(cur counter, serverLikes int) counter { return cur },
	)
	require.Error(t, err)

	restored, ok := Lookup[counter](c, "k")
	require.True(t, ok)
	assert.Equal(t, original, restored)
}

func TestOptimisticWithoutCachedEntryStillRunsEffect(t *testing.T) {
	c := newTestCache()

	ran := false
	result, err := Optimistic(context.Background(), c, "missing",
		toggle,
		func(ctx context.Context) (int, error) {
			ran = true
			return 7, nil
		},
		func(cur counter, serverLikes int) counter { return cur },
	)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 7, result)

	// No entry appears out of thin air.
	_, ok := Lookup[counter](c, "missing")
	assert.False(t, ok)
}

func TestOptimisticFailureDiscardsConcurrentWrites(t *testing.T) {
	c := newTestCache()
	original := counter{Likes: 1}
	c.Set("k", original)

	_, err := Optimistic(context.Background(), c, "k",
		toggle,
		func(ctx context.Context) (int, error) {
			// A background refetch lands mid-flight.
			c.Set("k", counter{Likes: 9})
			return 0, assert.AnError
		},
		func(cur counter, serverLikes int) counter { return cur },
	)
	require.Error(t, err)

	// Rollback is verbatim to the snapshot, not a merge.
	restored, ok := Lookup[counter](c, "k")
	require.True(t, ok)
	assert.Equal(t, original, restored)
}
