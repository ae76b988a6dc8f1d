package cachecursorrepo

import (
	"context"
	cacherepo "docstore/internal/repositories/cache"
	"time"
)

// repository stores pagination cursors under their opaque tokens.
// Cursors expire; an expired token simply restarts the traversal.
type repository struct {
	cache     cacherepo.Cache
	cursorTTL time.Duration
}

func New(cache cacherepo.Cache, cursorTTL time.Duration) *repository {
	return &repository{
		cache:     cache,
		cursorTTL: cursorTTL,
	}
}

func (r *repository) Get(ctx context.Context, key string) (string, error) {
	cursorJSON, err := r.cache.Get(ctx, key).Result()
	if err != nil {
		return "", err
	}

	return cursorJSON, nil
}

func (r *repository) Set(ctx context.Context, key string, value interface{}) error {
	return r.cache.Set(ctx, key, value, r.cursorTTL).Err()
}
