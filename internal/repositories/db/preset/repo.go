package presetrepo

import (
	"context"
	"database/sql"
	"docstore/internal/entities"
	"docstore/internal/models"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const pkg = "presetRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, preset *models.Preset) error {
	op := pkg + "Create"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO presets (id, site_id, name, preset_type, user_id, inserted_date)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		preset.ID, preset.SiteID, preset.Name, preset.Type, preset.UserID, preset.InsertedDate)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) PresetByID(ctx context.Context, siteID string, id string) (*models.Preset, error) {
	op := pkg + "PresetByID"

	raw := entities.Preset{}

	err := r.db.GetContext(ctx, &raw,
		`SELECT
			p.id AS id,
			p.site_id AS site_id,
			p.name AS name,
			p.preset_type AS preset_type,
			p.user_id AS user_id,
			p.inserted_date AS inserted_date
		FROM presets p
		WHERE p.site_id = $1 AND p.id = $2`,
		siteID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrPresetNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(raw), nil
}

func (r *repository) ListBySite(ctx context.Context, siteID string, limit int, offset int) ([]*models.Preset, error) {
	op := pkg + "ListBySite"

	rawPresets := make([]entities.Preset, 0)

	err := r.db.SelectContext(ctx, &rawPresets,
		`SELECT
			p.id AS id,
			p.site_id AS site_id,
			p.name AS name,
			p.preset_type AS preset_type,
			p.user_id AS user_id,
			p.inserted_date AS inserted_date
		FROM presets p
		WHERE p.site_id = $1
		ORDER BY p.inserted_date, p.id
		LIMIT $2 OFFSET $3`,
		siteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	presets := make([]*models.Preset, 0, len(rawPresets))
	for _, raw := range rawPresets {
		presets = append(presets, toModel(raw))
	}

	return presets, nil
}

func (r *repository) Delete(ctx context.Context, siteID string, id string) error {
	op := pkg + "Delete"

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM presets WHERE site_id = $1 AND id = $2`, siteID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrPresetNotFound)
	}

	return nil
}

// AddTag appends the key to the preset's ordered tag list. A
// delete-then-reinsert moves the key to the end, so the row is removed
// before the fresh insert rather than upserted in place.
func (r *repository) AddTag(ctx context.Context, presetID string, tag *models.PresetTag) error {
	op := pkg + "AddTag"

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM preset_tags WHERE preset_id = $1 AND tag_key = $2`,
		presetID, tag.Key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO preset_tags (preset_id, tag_key, inserted_date)
		VALUES ($1, $2, $3)`,
		presetID, tag.Key, tag.InsertedDate)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) ListTags(ctx context.Context, presetID string, limit int, offset int) ([]*models.PresetTag, error) {
	op := pkg + "ListTags"

	rawTags := make([]entities.PresetTag, 0)

	err := r.db.SelectContext(ctx, &rawTags,
		`SELECT
			pt.preset_id AS preset_id,
			pt.tag_key AS tag_key,
			pt.inserted_date AS inserted_date,
			pt.seq AS seq
		FROM preset_tags pt
		WHERE pt.preset_id = $1
		ORDER BY pt.seq
		LIMIT $2 OFFSET $3`,
		presetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tags := make([]*models.PresetTag, 0, len(rawTags))
	for _, raw := range rawTags {
		tags = append(tags, &models.PresetTag{
			PresetID:     raw.PresetID,
			Key:          raw.Key,
			InsertedDate: raw.InsertedDate,
		})
	}

	return tags, nil
}

func (r *repository) DeleteTag(ctx context.Context, presetID string, key string) error {
	op := pkg + "DeleteTag"

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM preset_tags WHERE preset_id = $1 AND tag_key = $2`,
		presetID, key)
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

func toModel(raw entities.Preset) *models.Preset {
	return &models.Preset{
		ID:           raw.ID,
		SiteID:       raw.SiteID,
		Name:         raw.Name,
		Type:         raw.Type,
		UserID:       raw.UserID,
		InsertedDate: raw.InsertedDate,
	}
}
