package folderindexservice

import (
	"context"
	"docstore/internal/models"
)

type FolderIndexRepository interface {
	Create(ctx context.Context, record *models.FolderIndexRecord) error
	RecordByPath(ctx context.Context, siteID string, path string) (*models.FolderIndexRecord, error)
	ChildCount(ctx context.Context, siteID string, parent string) (int64, error)
	Delete(ctx context.Context, siteID string, path string) error
	Move(ctx context.Context, siteID string, source string, target string) error
	Search(ctx context.Context, siteID string, parent string, limit int, offset int) ([]*models.FolderIndexRecord, error)
}
