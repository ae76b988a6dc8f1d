package docs

import (
	"context"
	"log/slog"
	"net/http"

	"docstore/internal/models"
	"docstore/internal/utils/httpjson"
	parseutil "docstore/internal/utils/parseLimit"
	"docstore/internal/utils/request"
)

func Get(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer, dp DocumentProvider) {
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

	page, err := dp.List(ctx, siteID, limit, next, previous)
	if err != nil {
		log.Error("failed to list documents", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	response := map[string]any{
		"documents": page.Items,
	}
	if page.Next != "" {
		response["next"] = page.Next
	}
	if page.Previous != "" {
		response["previous"] = page.Previous
	}

	httpjson.Write(w, http.StatusOK, response)
}

func GetByID(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, auth Authorizer, dp DocumentProvider) {
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

	doc, err := dp.DocumentByID(ctx, siteID, docID)
	if err != nil {
		log.Warn("failed to get document", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, doc)
}
