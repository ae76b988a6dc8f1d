package folderindexrepo

import (
	"context"
	"database/sql"
	"docstore/internal/entities"
	"docstore/internal/models"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const pkg = "folderIndexRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, record *models.FolderIndexRecord) error {
	op := pkg + "Create"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO folder_index (site_id, path, parent, document_id, is_folder, inserted_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (site_id, path) DO NOTHING`,
		record.SiteID, record.Path, record.Parent, record.DocumentID,
		record.IsFolder, record.InsertedDate)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) RecordByPath(ctx context.Context, siteID string, path string) (*models.FolderIndexRecord, error) {
	op := pkg + "RecordByPath"

	raw := entities.FolderIndexRecord{}

	err := r.db.GetContext(ctx, &raw,
		`SELECT
			f.site_id AS site_id,
			f.path AS path,
			f.parent AS parent,
			f.document_id AS document_id,
			f.is_folder AS is_folder,
			f.inserted_date AS inserted_date
		FROM folder_index f
		WHERE f.site_id = $1 AND f.path = $2`,
		siteID, path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrIndexNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(raw), nil
}

func (r *repository) ChildCount(ctx context.Context, siteID string, parent string) (int64, error) {
	op := pkg + "ChildCount"

	var count int64

	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM folder_index WHERE site_id = $1 AND parent = $2`,
		siteID, parent)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

func (r *repository) Delete(ctx context.Context, siteID string, path string) error {
	op := pkg + "Delete"

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM folder_index WHERE site_id = $1 AND path = $2`, siteID, path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrIndexNotFound)
	}

	return nil
}

// Move re-parents a record and rewrites the path prefix of everything
// beneath it in one statement.
func (r *repository) Move(ctx context.Context, siteID string, source string, target string) error {
	op := pkg + "Move"

	res, err := r.db.ExecContext(ctx,
		`UPDATE folder_index
		SET path = $3 || substr(path, length($2) + 1),
		    parent = CASE WHEN path = $2 THEN $4 ELSE parent END
		WHERE site_id = $1 AND (path = $2 OR path LIKE $2 || '/%')`,
		siteID, source, target, parentOf(target))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrIndexNotFound)
	}

	return nil
}

func (r *repository) Search(ctx context.Context, siteID string, parent string, limit int, offset int) ([]*models.FolderIndexRecord, error) {
	op := pkg + "Search"

	rawRecords := make([]entities.FolderIndexRecord, 0)

	err := r.db.SelectContext(ctx, &rawRecords,
		`SELECT
			f.site_id AS site_id,
			f.path AS path,
			f.parent AS parent,
			f.document_id AS document_id,
			f.is_folder AS is_folder,
			f.inserted_date AS inserted_date
		FROM folder_index f
		WHERE f.site_id = $1 AND f.parent = $2
		ORDER BY f.path
		LIMIT $3 OFFSET $4`,
		siteID, parent, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records := make([]*models.FolderIndexRecord, 0, len(rawRecords))
	for _, raw := range rawRecords {
		records = append(records, toModel(raw))
	}

	return records, nil
}

func parentOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return ""
}

func toModel(raw entities.FolderIndexRecord) *models.FolderIndexRecord {
	return &models.FolderIndexRecord{
		SiteID:       raw.SiteID,
		Path:         raw.Path,
		Parent:       raw.Parent,
		DocumentID:   raw.DocumentID,
		IsFolder:     raw.IsFolder,
		InsertedDate: raw.InsertedDate,
	}
}
