package configs

import (
	"context"

	"docstore/internal/models"
)

const pkg = "configsHandler/"

type Authorizer interface {
	AuthorizeAdmin(caller *models.Caller) error
}

type ConfigService interface {
	ConfigBySite(ctx context.Context, siteID string) (*models.SiteConfig, error)
	Update(ctx context.Context, config *models.SiteConfig) error
}

type APIKeyService interface {
	CreateAPIKey(ctx context.Context, siteID string, userID string, name string) (*models.APIKey, string, error)
	ListAPIKeys(ctx context.Context, siteID string, limit int, offset int) ([]*models.APIKey, error)
	DeleteAPIKey(ctx context.Context, siteID string, id string) error
}
