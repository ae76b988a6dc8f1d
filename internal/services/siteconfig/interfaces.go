package siteconfigservice

import (
	"context"
	"docstore/internal/models"
)

type ConfigRepository interface {
	ConfigBySite(ctx context.Context, siteID string) (*models.SiteConfig, error)
	UpsertConfig(ctx context.Context, config *models.SiteConfig) error
	CreateAPIKey(ctx context.Context, key *models.APIKey, keyHash []byte) error
	ListAPIKeys(ctx context.Context, siteID string, limit int, offset int) ([]*models.APIKey, error)
	DeleteAPIKey(ctx context.Context, siteID string, id string) error
	APIKeyHashes(ctx context.Context, siteID string) ([][]byte, error)
}

type Cache interface {
	Get(ctx context.Context, siteID string) (string, error)
	Set(ctx context.Context, siteID string, value interface{}) error
	Del(ctx context.Context, siteID string) error
}
