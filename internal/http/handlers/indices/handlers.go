package indices

import (
	"context"
	"log/slog"
	"net/http"

	"docstore/internal/models"
	"docstore/internal/utils/httpjson"
	parseutil "docstore/internal/utils/parseLimit"
	"docstore/internal/utils/request"
)

type moveRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type searchRequest struct {
	Parent string `json:"parent"`
}

func Move(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer, fs FolderIndexService) {
	op := pkg + "Move"

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

	var body moveRequest
	if err := request.DecodeBody(r, &body); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	if err := fs.Move(ctx, siteID, body.Source, body.Target); err != nil {
		log.Warn("failed to move folder", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": "Folder moved",
	})
}

func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, indexType string, key string, auth Authorizer, fs FolderIndexService) {
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

	if err := fs.Delete(ctx, siteID, indexType, key); err != nil {
		log.Warn("failed to delete index entry", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": "Folder deleted",
	})
}

func Search(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer, fs FolderIndexService) {
	op := pkg + "Search"

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

	var body searchRequest
	if err := request.DecodeBody(r, &body); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	limit := parseutil.ParseLimit(r.URL.Query().Get("limit"))
	next := r.URL.Query().Get("next")
	previous := r.URL.Query().Get("previous")

	page, err := fs.Search(ctx, siteID, body.Parent, limit, next, previous)
	if err != nil {
		log.Warn("failed to search folder index", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	response := map[string]any{
		"records": page.Items,
	}
	if page.Next != "" {
		response["next"] = page.Next
	}
	if page.Previous != "" {
		response["previous"] = page.Previous
	}

	httpjson.Write(w, http.StatusOK, response)
}
