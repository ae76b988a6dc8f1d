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

type searchRequest struct {
	Query struct {
		Tag struct {
			Key string `json:"key"`
			Eq  string `json:"eq"`
		} `json:"tag"`
	} `json:"query"`
}

// Search finds documents by tag key, optionally narrowed to an exact
// value match.
func Search(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer, ts TagSearcher) {
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

	ids, err := ts.Search(ctx, siteID, body.Query.Tag.Key, body.Query.Tag.Eq, limit)
	if err != nil {
		log.Warn("failed to search tags", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	documents := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		documents = append(documents, map[string]string{"documentId": id})
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"documents": documents})
}
