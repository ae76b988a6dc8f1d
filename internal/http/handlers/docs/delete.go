package docs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"docstore/internal/models"
	"docstore/internal/utils/httpjson"
	"docstore/internal/utils/request"
)

func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, auth Authorizer, dd DocumentDeleter) {
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

	if err := dd.Delete(ctx, siteID, docID); err != nil {
		log.Warn("failed to delete document", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("'%s' object deleted", docID),
	})
}
