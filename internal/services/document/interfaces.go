package documentservice

import (
	"context"
	"docstore/internal/models"
)

type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	DocumentByID(ctx context.Context, siteID string, id string) (*models.Document, error)
	UpdateDocument(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, siteID string, id string) error
	ListBySite(ctx context.Context, siteID string, limit int, offset int) ([]*models.Document, error)
	CountBySite(ctx context.Context, siteID string) (int64, error)
}

type TagRepository interface {
	DeleteByDocument(ctx context.Context, siteID string, documentID string) error
}

type FolderIndexer interface {
	Create(ctx context.Context, record *models.FolderIndexRecord) error
	Delete(ctx context.Context, siteID string, path string) error
}

type ConfigProvider interface {
	ConfigBySite(ctx context.Context, siteID string) (*models.SiteConfig, error)
}
