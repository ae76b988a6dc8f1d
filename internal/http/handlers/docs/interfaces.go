package docs

import (
	"context"

	"docstore/internal/models"
	"docstore/internal/pagination"
)

const pkg = "docsHandler/"

type Authorizer interface {
	AuthorizeRead(requestedSiteID string, caller *models.Caller) (string, error)
	AuthorizeWrite(requestedSiteID string, caller *models.Caller) (string, error)
}

type DocumentCreator interface {
	Create(ctx context.Context, siteID string, doc *models.Document) (string, error)
}

type DocumentProvider interface {
	DocumentByID(ctx context.Context, siteID string, id string) (*models.Document, error)
	List(ctx context.Context, siteID string, limit int, next string, previous string) (pagination.Page[*models.Document], error)
}

type DocumentUpdater interface {
	Patch(ctx context.Context, siteID string, id string, path string, deepLinkPath string, contentType string) (*models.Document, error)
}

type DocumentDeleter interface {
	Delete(ctx context.Context, siteID string, id string) error
}
