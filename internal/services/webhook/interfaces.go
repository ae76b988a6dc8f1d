package webhookservice

import (
	"context"
	"docstore/internal/models"
)

type WebhookRepository interface {
	Create(ctx context.Context, webhook *models.Webhook) error
	WebhookByID(ctx context.Context, siteID string, id string) (*models.Webhook, error)
	ListBySite(ctx context.Context, siteID string, limit int, offset int) ([]*models.Webhook, error)
	Update(ctx context.Context, webhook *models.Webhook) error
	Delete(ctx context.Context, siteID string, id string) error
	CountBySite(ctx context.Context, siteID string) (int64, error)
}

type ConfigProvider interface {
	ConfigBySite(ctx context.Context, siteID string) (*models.SiteConfig, error)
}

// DocumentCreator persists the document a delivered webhook payload
// turns into.
type DocumentCreator interface {
	Create(ctx context.Context, siteID string, doc *models.Document) (string, error)
}
