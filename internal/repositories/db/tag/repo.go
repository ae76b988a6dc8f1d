package tagrepo

import (
	"context"
	"database/sql"
	"docstore/internal/entities"
	"docstore/internal/models"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pkg = "tagRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

// Upsert inserts a tag or, when the key already exists on the document,
// replaces its values in place. The original insertion position (seq)
// is kept on replace so listings stay in insertion order.
func (r *repository) Upsert(ctx context.Context, tag *models.Tag, siteID string) error {
	op := pkg + "Upsert"

	values := tag.Values
	if len(values) == 0 {
		values = []string{tag.Value}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (site_id, document_id, tag_key, tag_values, user_id, inserted_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (site_id, document_id, tag_key)
		DO UPDATE SET tag_values = EXCLUDED.tag_values, user_id = EXCLUDED.user_id`,
		siteID, tag.DocumentID, tag.Key, pq.StringArray(values), tag.UserID, tag.InsertedDate)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) TagByKey(ctx context.Context, siteID string, documentID string, key string) (*models.Tag, error) {
	op := pkg + "TagByKey"

	raw := entities.Tag{}

	err := r.db.GetContext(ctx, &raw,
		`SELECT
			t.document_id AS document_id,
			t.site_id AS site_id,
			t.tag_key AS tag_key,
			t.tag_values AS tag_values,
			t.user_id AS user_id,
			t.inserted_date AS inserted_date,
			t.seq AS seq
		FROM tags t
		WHERE t.site_id = $1 AND t.document_id = $2 AND t.tag_key = $3`,
		siteID, documentID, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrTagNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(raw), nil
}

func (r *repository) ListByDocument(ctx context.Context, siteID string, documentID string, limit int, offset int) ([]*models.Tag, error) {
	op := pkg + "ListByDocument"

	rawTags := make([]entities.Tag, 0)

	err := r.db.SelectContext(ctx, &rawTags,
		`SELECT
			t.document_id AS document_id,
			t.site_id AS site_id,
			t.tag_key AS tag_key,
			t.tag_values AS tag_values,
			t.user_id AS user_id,
			t.inserted_date AS inserted_date,
			t.seq AS seq
		FROM tags t
		WHERE t.site_id = $1 AND t.document_id = $2
		ORDER BY t.seq
		LIMIT $3 OFFSET $4`,
		siteID, documentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tags := make([]*models.Tag, 0, len(rawTags))
	for _, raw := range rawTags {
		tags = append(tags, toModel(raw))
	}

	return tags, nil
}

func (r *repository) Delete(ctx context.Context, siteID string, documentID string, key string) error {
	op := pkg + "Delete"

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tags WHERE site_id = $1 AND document_id = $2 AND tag_key = $3`,
		siteID, documentID, key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrTagNotFound)
	}

	return nil
}

func (r *repository) DeleteByDocument(ctx context.Context, siteID string, documentID string) error {
	op := pkg + "DeleteByDocument"

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tags WHERE site_id = $1 AND document_id = $2`, siteID, documentID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// FindDocumentsByTag backs tag search: eq matching treats a
// multi-valued tag as set membership.
func (r *repository) FindDocumentsByTag(ctx context.Context, siteID string, key string, value string, limit int, offset int) ([]string, error) {
	op := pkg + "FindDocumentsByTag"

	ids := make([]string, 0)

	err := r.db.SelectContext(ctx, &ids,
		`SELECT t.document_id
		FROM tags t
		WHERE t.site_id = $1 AND t.tag_key = $2 AND ($3 = '' OR $3 = ANY(t.tag_values))
		ORDER BY t.document_id
		LIMIT $4 OFFSET $5`,
		siteID, key, value, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ids, nil
}

func toModel(raw entities.Tag) *models.Tag {
	tag := &models.Tag{
		DocumentID:   raw.DocumentID,
		Key:          raw.Key,
		UserID:       raw.UserID,
		InsertedDate: raw.InsertedDate,
	}

	if len(raw.Values) == 1 {
		tag.Value = raw.Values[0]
	} else {
		tag.Values = raw.Values
	}

	return tag
}
