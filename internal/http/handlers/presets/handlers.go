package presets

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

type presetRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type presetTagRequest struct {
	Key string `json:"key"`
}

func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer, ps PresetService) {
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

	var body presetRequest
	if err := request.DecodeBody(r, &body); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	preset, err := ps.Create(ctx, siteID, caller.Username, body.Name, body.Type)
	if err != nil {
		log.Warn("failed to create preset", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, preset)
}

func Get(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer, ps PresetService) {
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

	page, err := ps.List(ctx, siteID, limit, next, previous)
	if err != nil {
		log.Warn("failed to list presets", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	response := map[string]any{
		"presets": page.Items,
	}
	if page.Next != "" {
		response["next"] = page.Next
	}
	if page.Previous != "" {
		response["previous"] = page.Previous
	}

	httpjson.Write(w, http.StatusOK, response)
}

func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, presetID string, auth Authorizer, ps PresetService) {
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

	if err := ps.Delete(ctx, siteID, presetID); err != nil {
		log.Warn("failed to delete preset", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("'%s' object deleted", presetID),
	})
}

func AddTag(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, presetID string, auth Authorizer, ps PresetService) {
	op := pkg + "AddTag"

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

	var body presetTagRequest
	if err := request.DecodeBody(r, &body); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	tag, err := ps.AddTag(ctx, siteID, presetID, body.Key)
	if err != nil {
		log.Warn("failed to add preset tag", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, tag)
}

func GetTags(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, presetID string, auth Authorizer, ps PresetService) {
	op := pkg + "GetTags"

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

	page, err := ps.ListTags(ctx, siteID, presetID, limit, next, previous)
	if err != nil {
		log.Warn("failed to list preset tags", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	response := map[string]any{
		"tags": page.Items,
	}
	if page.Next != "" {
		response["next"] = page.Next
	}
	if page.Previous != "" {
		response["previous"] = page.Previous
	}

	httpjson.Write(w, http.StatusOK, response)
}

func DeleteTag(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, presetID string, key string, auth Authorizer, ps PresetService) {
	op := pkg + "DeleteTag"

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

	if err := ps.DeleteTag(ctx, siteID, presetID, key); err != nil {
		log.Warn("failed to delete preset tag", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Removed '%s' from preset '%s'.", key, presetID),
	})
}
