package indices

import (
	"context"

	"docstore/internal/models"
	"docstore/internal/pagination"
)

const pkg = "indicesHandler/"

type Authorizer interface {
	AuthorizeRead(requestedSiteID string, caller *models.Caller) (string, error)
	AuthorizeWrite(requestedSiteID string, caller *models.Caller) (string, error)
}

type FolderIndexService interface {
	Move(ctx context.Context, siteID string, source string, target string) error
	Delete(ctx context.Context, siteID string, indexType string, path string) error
	Search(ctx context.Context, siteID string, parent string, limit int, next string, previous string) (pagination.Page[*models.FolderIndexRecord], error)
}
