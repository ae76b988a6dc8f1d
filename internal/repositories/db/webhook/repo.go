package webhookrepo

import (
	"context"
	"database/sql"
	"docstore/internal/entities"
	"docstore/internal/models"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const pkg = "webhookRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, webhook *models.Webhook) error {
	op := pkg + "Create"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO webhooks (id, site_id, name, user_id, enabled, ttl, inserted_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		webhook.ID, webhook.SiteID, webhook.Name, webhook.UserID,
		string(webhook.Enabled), webhook.TimeToLive, webhook.InsertedDate)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) WebhookByID(ctx context.Context, siteID string, id string) (*models.Webhook, error) {
	op := pkg + "WebhookByID"

	raw := entities.Webhook{}

	err := r.db.GetContext(ctx, &raw,
		`SELECT
			w.id AS id,
			w.site_id AS site_id,
			w.name AS name,
			w.user_id AS user_id,
			w.enabled AS enabled,
			w.ttl AS ttl,
			w.inserted_date AS inserted_date
		FROM webhooks w
		WHERE w.site_id = $1 AND w.id = $2`,
		siteID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrWebhookNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(raw), nil
}

func (r *repository) ListBySite(ctx context.Context, siteID string, limit int, offset int) ([]*models.Webhook, error) {
	op := pkg + "ListBySite"

	rawHooks := make([]entities.Webhook, 0)

	err := r.db.SelectContext(ctx, &rawHooks,
		`SELECT
			w.id AS id,
			w.site_id AS site_id,
			w.name AS name,
			w.user_id AS user_id,
			w.enabled AS enabled,
			w.ttl AS ttl,
			w.inserted_date AS inserted_date
		FROM webhooks w
		WHERE w.site_id = $1
		ORDER BY w.inserted_date, w.id
		LIMIT $2 OFFSET $3`,
		siteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	webhooks := make([]*models.Webhook, 0, len(rawHooks))
	for _, raw := range rawHooks {
		webhooks = append(webhooks, toModel(raw))
	}

	return webhooks, nil
}

func (r *repository) Update(ctx context.Context, webhook *models.Webhook) error {
	op := pkg + "Update"

	res, err := r.db.ExecContext(ctx,
		`UPDATE webhooks SET name = $1, enabled = $2, ttl = $3
		WHERE site_id = $4 AND id = $5`,
		webhook.Name, string(webhook.Enabled), webhook.TimeToLive, webhook.SiteID, webhook.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrWebhookNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, siteID string, id string) error {
	op := pkg + "Delete"

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM webhooks WHERE site_id = $1 AND id = $2`, siteID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrWebhookNotFound)
	}

	return nil
}

func (r *repository) CountBySite(ctx context.Context, siteID string) (int64, error) {
	op := pkg + "CountBySite"

	var count int64

	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM webhooks WHERE site_id = $1`, siteID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

func toModel(raw entities.Webhook) *models.Webhook {
	return &models.Webhook{
		ID:           raw.ID,
		SiteID:       raw.SiteID,
		Name:         raw.Name,
		UserID:       raw.UserID,
		Enabled:      models.WebhookEnabled(raw.Enabled),
		TimeToLive:   raw.TimeToLive,
		InsertedDate: raw.InsertedDate,
	}
}
