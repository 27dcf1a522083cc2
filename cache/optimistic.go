package cache

import "context"

// Optimistic runs the snapshot → tentative apply → remote effect protocol
// against one cache entry.
//
// The entry is mutated as if the effect already succeeded, then the effect
// runs. On failure the retained snapshot is restored verbatim; on success
// reconcile folds the server-authoritative result into whatever the entry
// holds by then, so server truth always wins over the local guess. apply
// and reconcile must return copies, never mutate their argument in place.
func Optimistic[T, R any](ctx context.Context, c *Cache, key string,
	apply func(T) T,
	effect func(context.Context) (R, error),
	reconcile func(T, R) T,
) (R, error) {
	snapshot, cached := Lookup[T](c, key)
	if cached {
		c.Set(key, apply(snapshot))
	}

	result, err := effect(ctx)
	if err != nil {
		if cached {
			c.Set(key, snapshot)
		}
		var zero R
		return zero, err
	}

	if current, ok := Lookup[T](c, key); ok {
		c.Set(key, reconcile(current, result))
	}
	return result, nil
}
