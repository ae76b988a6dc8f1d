package tags

import (
	"context"

	"docstore/internal/models"
	"docstore/internal/pagination"
)

const pkg = "tagsHandler/"

type Authorizer interface {
	AuthorizeRead(requestedSiteID string, caller *models.Caller) (string, error)
	AuthorizeWrite(requestedSiteID string, caller *models.Caller) (string, error)
}

type TagAdder interface {
	AddTags(ctx context.Context, siteID string, documentID string, userID string, tags []*models.Tag) error
}

type TagProvider interface {
	TagByKey(ctx context.Context, siteID string, documentID string, key string) (*models.Tag, error)
	List(ctx context.Context, siteID string, documentID string, limit int, next string, previous string) (pagination.Page[*models.Tag], error)
}

type TagUpdater interface {
	UpdateTag(ctx context.Context, siteID string, documentID string, userID string, tag *models.Tag) (string, error)
}

type TagDeleter interface {
	DeleteTag(ctx context.Context, siteID string, documentID string, key string) error
}

type TagSearcher interface {
	Search(ctx context.Context, siteID string, key string, value string, limit int) ([]string, error)
}
