package webhooks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"docstore/internal/models"
	"docstore/internal/utils/httpjson"
	parseutil "docstore/internal/utils/parseLimit"
	"docstore/internal/utils/request"
)

type webhookRequest struct {
	Name    string `json:"name"`
	Enabled string `json:"enabled"`
	TTL     string `json:"ttl"`
}

type webhookResponse struct {
	*models.Webhook
	URL string `json:"url"`
}

func toResponse(webhook *models.Webhook) webhookResponse {
	return webhookResponse{Webhook: webhook, URL: webhook.URL()}
}

func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer, wc WebhookCreator) {
	op := pkg + "Add"

	log = log.With(slog.String("op", op))

	caller, ok := request.Caller(r)
	if !ok {
		log.Error("failed to get caller from context")
		httpjson.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return
	}

	siteID, err := auth.AuthorizeWrite(r.URL.Query().Get("siteId"), caller)
	if err != nil {
		log.Warn("write not authorized", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	var body webhookRequest
	if err := request.DecodeBody(r, &body); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	webhook, err := wc.Create(ctx, siteID, caller.Username, body.Name,
		models.WebhookEnabled(body.Enabled), body.TTL)
	if err != nil {
		log.Warn("failed to create webhook", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, toResponse(webhook))
}

func Get(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer, wp WebhookProvider) {
	op := pkg + "Get"

	log = log.With(slog.String("op", op))

	caller, ok := request.Caller(r)
	if !ok {
		log.Error("failed to get caller from context")
		httpjson.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return
	}

	siteID, err := auth.AuthorizeRead(r.URL.Query().Get("siteId"), caller)
	if err != nil {
		log.Warn("read not authorized", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	limit := parseutil.ParseLimit(r.URL.Query().Get("limit"))
	next := r.URL.Query().Get("next")
	previous := r.URL.Query().Get("previous")

	page, err := wp.List(ctx, siteID, limit, next, previous)
	if err != nil {
		log.Warn("failed to list webhooks", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	items := make([]webhookResponse, 0, len(page.Items))
	for _, webhook := range page.Items {
		items = append(items, toResponse(webhook))
	}

	response := map[string]any{
		"webhooks": items,
	}
	if page.Next != "" {
		response["next"] = page.Next
	}
	if page.Previous != "" {
		response["previous"] = page.Previous
	}

	httpjson.Write(w, http.StatusOK, response)
}

func GetByID(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, webhookID string, auth Authorizer, wp WebhookProvider) {
	op := pkg + "GetByID"

	log = log.With(slog.String("op", op))

	caller, ok := request.Caller(r)
	if !ok {
		log.Error("failed to get caller from context")
		httpjson.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return
	}

	siteID, err := auth.AuthorizeRead(r.URL.Query().Get("siteId"), caller)
	if err != nil {
		log.Warn("read not authorized", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	webhook, err := wp.WebhookByID(ctx, siteID, webhookID)
	if err != nil {
		log.Warn("failed to get webhook", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, toResponse(webhook))
}

func Patch(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, webhookID string, auth Authorizer, wu WebhookUpdater) {
	op := pkg + "Patch"

	log = log.With(slog.String("op", op))

	caller, ok := request.Caller(r)
	if !ok {
		log.Error("failed to get caller from context")
		httpjson.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return
	}

	siteID, err := auth.AuthorizeWrite(r.URL.Query().Get("siteId"), caller)
	if err != nil {
		log.Warn("write not authorized", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	var body webhookRequest
	if err := request.DecodeBody(r, &body); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	webhook, err := wu.Patch(ctx, siteID, webhookID, body.Name,
		models.WebhookEnabled(body.Enabled), body.TTL)
	if err != nil {
		log.Warn("failed to update webhook", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, toResponse(webhook))
}

func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, webhookID string, auth Authorizer, wd WebhookDeleter) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op))

	caller, ok := request.Caller(r)
	if !ok {
		log.Error("failed to get caller from context")
		httpjson.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return
	}

	siteID, err := auth.AuthorizeWrite(r.URL.Query().Get("siteId"), caller)
	if err != nil {
		log.Warn("write not authorized", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	if err := wd.Delete(ctx, siteID, webhookID); err != nil {
		log.Warn("failed to delete webhook", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("'%s' object deleted", webhookID),
	})
}
