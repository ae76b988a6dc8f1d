package documentrepo

import (
	"context"
	"database/sql"
	"docstore/internal/entities"
	"docstore/internal/models"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const pkg = "documentRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) CreateDocument(ctx context.Context, doc *models.Document) error {
	op := pkg + "CreateDocument"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, site_id, path, deep_link_path, content_type, content_length, user_id, inserted_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		doc.ID, doc.SiteID, doc.Path, doc.DeepLinkPath, doc.ContentType, doc.ContentLength, doc.UserID, doc.InsertedDate)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) DocumentByID(ctx context.Context, siteID string, id string) (*models.Document, error) {
	op := pkg + "DocumentByID"

	rawDoc := entities.Document{}

	err := r.db.GetContext(ctx, &rawDoc,
		`SELECT
			d.id AS id,
			d.site_id AS site_id,
			d.path AS path,
			d.deep_link_path AS deep_link_path,
			d.content_type AS content_type,
			d.content_length AS content_length,
			d.user_id AS user_id,
			d.inserted_date AS inserted_date
			FROM documents d
			WHERE d.site_id = $1 AND d.id = $2`,
		siteID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(rawDoc), nil
}

func (r *repository) UpdateDocument(ctx context.Context, doc *models.Document) error {
	op := pkg + "UpdateDocument"

	res, err := r.db.ExecContext(ctx,
		`UPDATE documents
		SET path = $1, deep_link_path = $2, content_type = $3
		WHERE site_id = $4 AND id = $5`,
		doc.Path, doc.DeepLinkPath, doc.ContentType, doc.SiteID, doc.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, siteID string, id string) error {
	op := pkg + "Delete"

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM documents WHERE site_id = $1 AND id = $2`, siteID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
	}

	return nil
}

// ListBySite returns documents in sort-key order so repeated pagination
// over static data is deterministic.
func (r *repository) ListBySite(ctx context.Context, siteID string, limit int, offset int) ([]*models.Document, error) {
	op := pkg + "ListBySite"

	rawDocs := make([]entities.Document, 0)

	err := r.db.SelectContext(ctx, &rawDocs,
		`SELECT
			d.id AS id,
			d.site_id AS site_id,
			d.path AS path,
			d.deep_link_path AS deep_link_path,
			d.content_type AS content_type,
			d.content_length AS content_length,
			d.user_id AS user_id,
			d.inserted_date AS inserted_date
		FROM documents d
		WHERE d.site_id = $1
		ORDER BY d.inserted_date, d.id
		LIMIT $2 OFFSET $3`,
		siteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	docs := make([]*models.Document, 0, len(rawDocs))
	for _, rawDoc := range rawDocs {
		docs = append(docs, toModel(rawDoc))
	}

	return docs, nil
}

func (r *repository) CountBySite(ctx context.Context, siteID string) (int64, error) {
	op := pkg + "CountBySite"

	var count int64

	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM documents WHERE site_id = $1`, siteID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

func toModel(raw entities.Document) *models.Document {
	return &models.Document{
		ID:            raw.ID,
		SiteID:        raw.SiteID,
		Path:          raw.Path,
		DeepLinkPath:  raw.DeepLinkPath,
		ContentType:   raw.ContentType,
		ContentLength: raw.ContentLength,
		UserID:        raw.UserID,
		InsertedDate:  raw.InsertedDate,
	}
}
