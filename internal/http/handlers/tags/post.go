package tags

import (
	"context"
	"log/slog"
	"net/http"

	"docstore/internal/models"
	"docstore/internal/utils/httpjson"
	"docstore/internal/utils/request"
)

type tagRequest struct {
	Key    string   `json:"key"`
	Value  string   `json:"value"`
	Values []string `json:"values"`
}

type addRequest struct {
	tagRequest
	Tags []tagRequest `json:"tags"`
}

// Add accepts either a single tag body or a {"tags": [...]} batch.
func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, auth Authorizer, ta TagAdder) {
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

	var body addRequest
	if err := request.DecodeBody(r, &body); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	raw := body.Tags
	if len(raw) == 0 {
		raw = []tagRequest{body.tagRequest}
	}

	tags := make([]*models.Tag, 0, len(raw))
	for _, t := range raw {
		tags = append(tags, &models.Tag{Key: t.Key, Value: t.Value, Values: t.Values})
	}

	if err := ta.AddTags(ctx, siteID, docID, caller.Username, tags); err != nil {
		log.Warn("failed to add tags", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]string{
		"message": "Created Tags.",
	})
}
