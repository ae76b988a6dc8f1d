package server

import (
	"context"

	"docstore/internal/models"
	"docstore/internal/pagination"
)

type DocumentService interface {
	Create(ctx context.Context, siteID string, doc *models.Document) (string, error)
	DocumentByID(ctx context.Context, siteID string, id string) (*models.Document, error)
	Patch(ctx context.Context, siteID string, id string, path string, deepLinkPath string, contentType string) (*models.Document, error)
	Delete(ctx context.Context, siteID string, id string) error
	List(ctx context.Context, siteID string, limit int, next string, previous string) (pagination.Page[*models.Document], error)
}

type TagService interface {
	AddTags(ctx context.Context, siteID string, documentID string, userID string, tags []*models.Tag) error
	TagByKey(ctx context.Context, siteID string, documentID string, key string) (*models.Tag, error)
	UpdateTag(ctx context.Context, siteID string, documentID string, userID string, tag *models.Tag) (string, error)
	DeleteTag(ctx context.Context, siteID string, documentID string, key string) error
	List(ctx context.Context, siteID string, documentID string, limit int, next string, previous string) (pagination.Page[*models.Tag], error)
	Search(ctx context.Context, siteID string, key string, value string, limit int) ([]string, error)
}

type ActionService interface {
	Add(ctx context.Context, siteID string, documentID string, userID string, actions []*models.Action) error
	List(ctx context.Context, siteID string, documentID string, limit int, next string, previous string) (pagination.Page[*models.Action], error)
}

type WebhookService interface {
	Create(ctx context.Context, siteID string, userID string, name string, enabled models.WebhookEnabled, ttl string) (*models.Webhook, error)
	WebhookByID(ctx context.Context, siteID string, id string) (*models.Webhook, error)
	List(ctx context.Context, siteID string, limit int, next string, previous string) (pagination.Page[*models.Webhook], error)
	Patch(ctx context.Context, siteID string, id string, name string, enabled models.WebhookEnabled, ttl string) (*models.Webhook, error)
	Delete(ctx context.Context, siteID string, id string) error
	Receive(ctx context.Context, siteID string, id string, authenticated bool, contentType string, body []byte) (string, error)
}

type PresetService interface {
	Create(ctx context.Context, siteID string, userID string, name string, presetType string) (*models.Preset, error)
	List(ctx context.Context, siteID string, limit int, next string, previous string) (pagination.Page[*models.Preset], error)
	Delete(ctx context.Context, siteID string, id string) error
	AddTag(ctx context.Context, siteID string, presetID string, key string) (*models.PresetTag, error)
	ListTags(ctx context.Context, siteID string, presetID string, limit int, next string, previous string) (pagination.Page[*models.PresetTag], error)
	DeleteTag(ctx context.Context, siteID string, presetID string, key string) error
}

type SiteConfigService interface {
	ConfigBySite(ctx context.Context, siteID string) (*models.SiteConfig, error)
	Update(ctx context.Context, config *models.SiteConfig) error
	CreateAPIKey(ctx context.Context, siteID string, userID string, name string) (*models.APIKey, string, error)
	ListAPIKeys(ctx context.Context, siteID string, limit int, offset int) ([]*models.APIKey, error)
	DeleteAPIKey(ctx context.Context, siteID string, id string) error
}

type FolderIndexService interface {
	Move(ctx context.Context, siteID string, source string, target string) error
	Delete(ctx context.Context, siteID string, indexType string, path string) error
	Search(ctx context.Context, siteID string, parent string, limit int, next string, previous string) (pagination.Page[*models.FolderIndexRecord], error)
}
