package docs

import (
	"context"
	"log/slog"
	"net/http"

	"docstore/internal/models"
	"docstore/internal/utils/httpjson"
	"docstore/internal/utils/request"
)

type patchRequest struct {
	Path         string `json:"path"`
	DeepLinkPath string `json:"deepLinkPath"`
	ContentType  string `json:"contentType"`
}

func Patch(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, auth Authorizer, du DocumentUpdater) {
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

	var body patchRequest
	if err := request.DecodeBody(r, &body); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	doc, err := du.Patch(ctx, siteID, docID, body.Path, body.DeepLinkPath, body.ContentType)
	if err != nil {
		log.Warn("failed to update document", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, doc)
}
