package tags

import (
	"context"
	"log/slog"
	"net/http"

	"docstore/internal/models"
	"docstore/internal/utils/httpjson"
	parseutil "docstore/internal/utils/parseLimit"
	"docstore/internal/utils/request"
)

func Get(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, auth Authorizer, tp TagProvider) {
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

	page, err := tp.List(ctx, siteID, docID, limit, next, previous)
	if err != nil {
		log.Warn("failed to list tags", slog.String("error", err.Error()))
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

func GetByKey(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, key string, auth Authorizer, tp TagProvider) {
	op := pkg + "GetByKey"

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

	tag, err := tp.TagByKey(ctx, siteID, docID, key)
	if err != nil {
		log.Warn("failed to get tag", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, tag)
}
