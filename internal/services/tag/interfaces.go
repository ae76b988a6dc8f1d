package tagservice

import (
	"context"
	"docstore/internal/models"
)

type TagRepository interface {
	Upsert(ctx context.Context, tag *models.Tag, siteID string) error
	TagByKey(ctx context.Context, siteID string, documentID string, key string) (*models.Tag, error)
	ListByDocument(ctx context.Context, siteID string, documentID string, limit int, offset int) ([]*models.Tag, error)
	Delete(ctx context.Context, siteID string, documentID string, key string) error
	FindDocumentsByTag(ctx context.Context, siteID string, key string, value string, limit int, offset int) ([]string, error)
}

type DocumentProvider interface {
	DocumentByID(ctx context.Context, siteID string, id string) (*models.Document, error)
}

// SchemaValidator is the pluggable tag-schema check run before any tag
// write. Implementations range from allow-all to schema-enforcing.
type SchemaValidator interface {
	ValidateTags(ctx context.Context, siteID string, tags []*models.Tag) models.ValidationErrors
}
