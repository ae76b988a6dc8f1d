package webhookservice

import (
	"context"
	"docstore/internal/models"
	"docstore/internal/pagination"
	"errors"
	"fmt"
	"log/slog"
	"time"

	uuid "github.com/satori/go.uuid"
)

const pkg = "webhookService/"

type WebhookService struct {
	log         *slog.Logger
	webhookRepo WebhookRepository
	configs     ConfigProvider
	docs        DocumentCreator
	codec       *pagination.Codec
}

func New(
	log *slog.Logger,
	webhookRepo WebhookRepository,
	configs ConfigProvider,
	docs DocumentCreator,
	codec *pagination.Codec,
) *WebhookService {
	return &WebhookService{
		log:         log,
		webhookRepo: webhookRepo,
		configs:     configs,
		docs:        docs,
		codec:       codec,
	}
}

func (s *WebhookService) Create(ctx context.Context, siteID string, userID string, name string, enabled models.WebhookEnabled, ttl string) (*models.Webhook, error) {
	op := pkg + "Create"

	log := s.log.With(slog.String("op", op))

	if name == "" {
		return nil, models.ValidationErrors{
			{Key: "name", Error: "attribute is required"},
		}
	}

	if enabled == "" {
		enabled = models.WebhookEnabledPublic
	}
	if !enabled.IsValid() {
		return nil, models.ValidationErrors{
			{Key: "enabled", Error: "invalid value, must be 'true', 'false' or 'private'"},
		}
	}

	config, err := s.configs.ConfigBySite(ctx, siteID)
	if err != nil {
		log.Error("failed to load site config", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if config.MaxWebhooks > 0 {
		count, err := s.webhookRepo.CountBySite(ctx, siteID)
		if err != nil {
			log.Error("failed to count webhooks", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
		}
		if count >= config.MaxWebhooks {
			return nil, &models.ConflictError{
				Message: "Reached Max Number of Webhooks",
			}
		}
	}

	webhook := &models.Webhook{
		ID:           uuid.NewV4().String(),
		SiteID:       siteID,
		Name:         name,
		UserID:       userID,
		Enabled:      enabled,
		TimeToLive:   ttl,
		InsertedDate: time.Now().UTC(),
	}

	if err := s.webhookRepo.Create(ctx, webhook); err != nil {
		log.Error("failed to save webhook", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("webhook created", slog.String("webhook_id", webhook.ID))

	return webhook, nil
}

func (s *WebhookService) WebhookByID(ctx context.Context, siteID string, id string) (*models.Webhook, error) {
	op := pkg + "WebhookByID"

	log := s.log.With(slog.String("op", op))

	webhook, err := s.webhookRepo.WebhookByID(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, models.ErrWebhookNotFound) {
			return nil, webhookNotFound(id)
		}
		log.Error("failed to get webhook", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return webhook, nil
}

func (s *WebhookService) List(ctx context.Context, siteID string, limit int, next string, previous string) (pagination.Page[*models.Webhook], error) {
	op := pkg + "List"

	log := s.log.With(slog.String("op", op))

	cur, current, err := s.codec.Resolve(ctx, next, previous, limit)
	if err != nil {
		log.Error("failed to resolve pagination cursor", slog.String("error", err.Error()))
		return pagination.Page[*models.Webhook]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	webhooks, err := s.webhookRepo.ListBySite(ctx, siteID, cur.Limit+1, cur.StartIndex)
	if err != nil {
		log.Error("failed to list webhooks", slog.String("error", err.Error()))
		return pagination.Page[*models.Webhook]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	page, err := pagination.Build(ctx, s.codec, webhooks, cur, current)
	if err != nil {
		log.Error("failed to build page", slog.String("error", err.Error()))
		return pagination.Page[*models.Webhook]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return page, nil
}

// Patch updates name/enabled/ttl. Any enablement transition is legal.
func (s *WebhookService) Patch(ctx context.Context, siteID string, id string, name string, enabled models.WebhookEnabled, ttl string) (*models.Webhook, error) {
	op := pkg + "Patch"

	log := s.log.With(slog.String("op", op))

	webhook, err := s.WebhookByID(ctx, siteID, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		webhook.Name = name
	}
	if enabled != "" {
		if !enabled.IsValid() {
			return nil, models.ValidationErrors{
				{Key: "enabled", Error: "invalid value, must be 'true', 'false' or 'private'"},
			}
		}
		webhook.Enabled = enabled
	}
	if ttl != "" {
		webhook.TimeToLive = ttl
	}

	if err := s.webhookRepo.Update(ctx, webhook); err != nil {
		if errors.Is(err, models.ErrWebhookNotFound) {
			return nil, webhookNotFound(id)
		}
		log.Error("failed to update webhook", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("webhook updated", slog.String("webhook_id", id))

	return webhook, nil
}

func (s *WebhookService) Delete(ctx context.Context, siteID string, id string) error {
	op := pkg + "Delete"

	log := s.log.With(slog.String("op", op))

	if err := s.webhookRepo.Delete(ctx, siteID, id); err != nil {
		if errors.Is(err, models.ErrWebhookNotFound) {
			return webhookNotFound(id)
		}
		log.Error("failed to delete webhook", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("webhook deleted", slog.String("webhook_id", id))

	return nil
}

// Receive accepts a delivered payload and stores it as a document.
// authenticated marks whether the delivery came in on the private path;
// "private" webhooks reject unauthenticated delivery and "false"
// rejects both.
func (s *WebhookService) Receive(ctx context.Context, siteID string, id string, authenticated bool, contentType string, body []byte) (string, error) {
	op := pkg + "Receive"

	log := s.log.With(slog.String("op", op))

	webhook, err := s.WebhookByID(ctx, siteID, id)
	if err != nil {
		return "", err
	}

	switch webhook.Enabled {
	case models.WebhookEnabledDisabled:
		log.Warn("delivery to disabled webhook", slog.String("webhook_id", id))
		return "", models.ErrWebhookDisabled
	case models.WebhookEnabledPrivate:
		if !authenticated {
			log.Warn("unauthenticated delivery to private webhook", slog.String("webhook_id", id))
			return "", models.ErrAccessDenied
		}
	}

	doc := &models.Document{
		Path:          fmt.Sprintf("webhooks/%s/%s", webhook.Name, uuid.NewV4().String()),
		ContentType:   contentType,
		ContentLength: int64(len(body)),
		UserID:        "webhook/" + webhook.Name,
	}

	docID, err := s.docs.Create(ctx, siteID, doc)
	if err != nil {
		log.Error("failed to store webhook payload", slog.String("error", err.Error()))
		return "", err
	}

	log.Debug("webhook payload stored",
		slog.String("webhook_id", id), slog.String("document_id", docID))

	return docID, nil
}

func webhookNotFound(id string) *models.NotFoundError {
	return &models.NotFoundError{
		Message: fmt.Sprintf("Webhook %s not found.", id),
		Err:     models.ErrWebhookNotFound,
	}
}
