package tags

import (
	"context"
	"log/slog"
	"net/http"

	"docstore/internal/models"
	"docstore/internal/utils/httpjson"
	"docstore/internal/utils/request"
)

type updateRequest struct {
	Value  string   `json:"value"`
	Values []string `json:"values"`
}

func Update(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, key string, auth Authorizer, tu TagUpdater) {
	op := pkg + "Update"

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

	var body updateRequest
	if err := request.DecodeBody(r, &body); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	tag := &models.Tag{Key: key, Value: body.Value, Values: body.Values}

	message, err := tu.UpdateTag(ctx, siteID, docID, caller.Username, tag)
	if err != nil {
		log.Warn("failed to update tag", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{"message": message})
}
