package actionservice

import (
	"context"
	"docstore/internal/models"
	"docstore/internal/queue"
)

type ActionRepository interface {
	Create(ctx context.Context, action *models.Action) error
	ListByDocument(ctx context.Context, siteID string, documentID string, limit int, offset int) ([]*models.Action, error)
}

type DocumentProvider interface {
	DocumentByID(ctx context.Context, siteID string, id string) (*models.Document, error)
}

type Dispatcher interface {
	EnqueueAction(ctx context.Context, task queue.ActionTask) error
}
