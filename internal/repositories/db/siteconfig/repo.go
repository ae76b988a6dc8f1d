package siteconfigrepo

import (
	"context"
	"database/sql"
	"docstore/internal/entities"
	"docstore/internal/models"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const pkg = "siteConfigRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

// ConfigBySite returns the stored config for the site, or a zero-limit
// config when none exists yet.
func (r *repository) ConfigBySite(ctx context.Context, siteID string) (*models.SiteConfig, error) {
	op := pkg + "ConfigBySite"

	raw := entities.SiteConfig{}

	err := r.db.GetContext(ctx, &raw,
		`SELECT
			c.site_id AS site_id,
			c.max_content_length_bytes AS max_content_length_bytes,
			c.max_documents AS max_documents,
			c.max_webhooks AS max_webhooks,
			c.notification_email AS notification_email
		FROM site_configs c
		WHERE c.site_id = $1`,
		siteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.SiteConfig{SiteID: siteID}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.SiteConfig{
		SiteID:                raw.SiteID,
		MaxContentLengthBytes: raw.MaxContentLengthBytes,
		MaxDocuments:          raw.MaxDocuments,
		MaxWebhooks:           raw.MaxWebhooks,
		NotificationEmail:     raw.NotificationEmail,
	}, nil
}

func (r *repository) UpsertConfig(ctx context.Context, config *models.SiteConfig) error {
	op := pkg + "UpsertConfig"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO site_configs (site_id, max_content_length_bytes, max_documents, max_webhooks, notification_email)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (site_id)
		DO UPDATE SET
			max_content_length_bytes = EXCLUDED.max_content_length_bytes,
			max_documents = EXCLUDED.max_documents,
			max_webhooks = EXCLUDED.max_webhooks,
			notification_email = EXCLUDED.notification_email`,
		config.SiteID, config.MaxContentLengthBytes, config.MaxDocuments,
		config.MaxWebhooks, config.NotificationEmail)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) CreateAPIKey(ctx context.Context, key *models.APIKey, keyHash []byte) error {
	op := pkg + "CreateAPIKey"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (id, site_id, name, key_hash, masked, user_id, inserted_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		key.ID, key.SiteID, key.Name, keyHash, key.Masked, key.UserID, key.InsertedDate)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) ListAPIKeys(ctx context.Context, siteID string, limit int, offset int) ([]*models.APIKey, error) {
	op := pkg + "ListAPIKeys"

	rawKeys := make([]entities.APIKey, 0)

	err := r.db.SelectContext(ctx, &rawKeys,
		`SELECT
			k.id AS id,
			k.site_id AS site_id,
			k.name AS name,
			k.key_hash AS key_hash,
			k.masked AS masked,
			k.user_id AS user_id,
			k.inserted_date AS inserted_date
		FROM api_keys k
		WHERE k.site_id = $1
		ORDER BY k.inserted_date, k.id
		LIMIT $2 OFFSET $3`,
		siteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	keys := make([]*models.APIKey, 0, len(rawKeys))
	for _, raw := range rawKeys {
		keys = append(keys, &models.APIKey{
			ID:           raw.ID,
			SiteID:       raw.SiteID,
			Name:         raw.Name,
			Masked:       raw.Masked,
			UserID:       raw.UserID,
			InsertedDate: raw.InsertedDate,
		})
	}

	return keys, nil
}

func (r *repository) DeleteAPIKey(ctx context.Context, siteID string, id string) error {
	op := pkg + "DeleteAPIKey"

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM api_keys WHERE site_id = $1 AND id = $2`, siteID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrAPIKeyNotFound)
	}

	return nil
}

// APIKeyHashes returns every stored hash for the site; the caller
// compares a presented key against them.
func (r *repository) APIKeyHashes(ctx context.Context, siteID string) ([][]byte, error) {
	op := pkg + "APIKeyHashes"

	hashes := make([][]byte, 0)

	err := r.db.SelectContext(ctx, &hashes,
		`SELECT k.key_hash FROM api_keys k WHERE k.site_id = $1`, siteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrAPIKeyNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return hashes, nil
}
