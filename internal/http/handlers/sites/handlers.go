package sites

import (
	"context"
	"log/slog"
	"net/http"

	"docstore/internal/models"
	"docstore/internal/utils/httpjson"
	"docstore/internal/utils/request"
)

func Get(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, sl SiteLister) {
	op := pkg + "Get"

	log = log.With(slog.String("op", op))

	caller, ok := request.Caller(r)
	if !ok {
		log.Error("failed to get caller from context")
		httpjson.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"sites": sl.Sites(caller),
	})
}

// Me returns the caller's identity plus the siteId a request without an
// explicit siteId would resolve to. A caller in several sites gets the
// same ambiguity error the resource endpoints return.
func Me(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, sr SiteResolver) {
	op := pkg + "Me"

	log = log.With(slog.String("op", op))

	caller, ok := request.Caller(r)
	if !ok {
		log.Error("failed to get caller from context")
		httpjson.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return
	}

	siteID, err := sr.Resolve(r.URL.Query().Get("siteId"), caller.Groups)
	if err != nil {
		log.Warn("failed to resolve siteId", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"username": caller.Username,
		"siteId":   siteID,
		"siteIds":  sr.SiteIDs(caller.Groups),
	})
}
