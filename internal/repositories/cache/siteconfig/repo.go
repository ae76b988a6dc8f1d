package cacheconfigrepo

import (
	"context"
	cacherepo "docstore/internal/repositories/cache"
	"time"
)

// repository caches per-site configuration JSON so limit checks on the
// hot write path avoid a database round trip.
type repository struct {
	cache     cacherepo.Cache
	configTTL time.Duration
}

func New(cache cacherepo.Cache, configTTL time.Duration) *repository {
	return &repository{
		cache:     cache,
		configTTL: configTTL,
	}
}

func (r *repository) Get(ctx context.Context, siteID string) (string, error) {
	configJSON, err := r.cache.Get(ctx, key(siteID)).Result()
	if err != nil {
		return "", err
	}

	return configJSON, nil
}

func (r *repository) Set(ctx context.Context, siteID string, value interface{}) error {
	return r.cache.Set(ctx, key(siteID), value, r.configTTL).Err()
}

func (r *repository) Del(ctx context.Context, siteID string) error {
	return r.cache.Del(ctx, key(siteID)).Err()
}

func key(siteID string) string {
	return "config:" + siteID
}
