package webhooks

import (
	"context"

	"docstore/internal/models"
	"docstore/internal/pagination"
)

const pkg = "webhooksHandler/"

type Authorizer interface {
	AuthorizeRead(requestedSiteID string, caller *models.Caller) (string, error)
	AuthorizeWrite(requestedSiteID string, caller *models.Caller) (string, error)
}

type WebhookCreator interface {
	Create(ctx context.Context, siteID string, userID string, name string, enabled models.WebhookEnabled, ttl string) (*models.Webhook, error)
}

type WebhookProvider interface {
	WebhookByID(ctx context.Context, siteID string, id string) (*models.Webhook, error)
	List(ctx context.Context, siteID string, limit int, next string, previous string) (pagination.Page[*models.Webhook], error)
}

type WebhookUpdater interface {
	Patch(ctx context.Context, siteID string, id string, name string, enabled models.WebhookEnabled, ttl string) (*models.Webhook, error)
}

type WebhookDeleter interface {
	Delete(ctx context.Context, siteID string, id string) error
}

type WebhookReceiver interface {
	Receive(ctx context.Context, siteID string, id string, authenticated bool, contentType string, body []byte) (string, error)
}
