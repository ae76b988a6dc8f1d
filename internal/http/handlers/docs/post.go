package docs

import (
	"context"
	"log/slog"
	"net/http"

	"docstore/internal/models"
	"docstore/internal/utils/httpjson"
	"docstore/internal/utils/request"
)

type createRequest struct {
	Path          string `json:"path"`
	DeepLinkPath  string `json:"deepLinkPath"`
	ContentType   string `json:"contentType"`
	ContentLength int64  `json:"contentLength"`
}

func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer, dc DocumentCreator) {
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

	var body createRequest
	if err := request.DecodeBody(r, &body); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	doc := &models.Document{
		Path:          body.Path,
		DeepLinkPath:  body.DeepLinkPath,
		ContentType:   body.ContentType,
		ContentLength: body.ContentLength,
		UserID:        caller.Username,
	}

	id, err := dc.Create(ctx, siteID, doc)
	if err != nil {
		log.Warn("failed to create document", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]string{
		"documentId": id,
		"siteId":     siteID,
	})
}
