package actions

import (
	"context"

	"docstore/internal/models"
	"docstore/internal/pagination"
)

const pkg = "actionsHandler/"

type Authorizer interface {
	AuthorizeRead(requestedSiteID string, caller *models.Caller) (string, error)
	AuthorizeWrite(requestedSiteID string, caller *models.Caller) (string, error)
}

type ActionAdder interface {
	Add(ctx context.Context, siteID string, documentID string, userID string, actions []*models.Action) error
}

type ActionProvider interface {
	List(ctx context.Context, siteID string, documentID string, limit int, next string, previous string) (pagination.Page[*models.Action], error)
}
