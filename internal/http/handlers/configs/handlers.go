package configs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"docstore/internal/access"
	"docstore/internal/models"
	"docstore/internal/utils/httpjson"
	parseutil "docstore/internal/utils/parseLimit"
	"docstore/internal/utils/request"
)

func siteFromQuery(r *http.Request) string {
	if siteID := r.URL.Query().Get("siteId"); siteID != "" {
		return siteID
	}
	return access.DefaultSiteID
}

func adminCaller(log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer) (*models.Caller, bool) {
	caller, ok := request.Caller(r)
	if !ok {
		log.Error("failed to get caller from context")
		httpjson.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return nil, false
	}

	if err := auth.AuthorizeAdmin(caller); err != nil {
		log.Warn("admin access rejected", slog.String("username", caller.Username))
		httpjson.WriteDomainError(w, err)
		return nil, false
	}

	return caller, true
}

func Get(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer, cs ConfigService) {
	op := pkg + "Get"

	log = log.With(slog.String("op", op))

	if _, ok := adminCaller(log, w, r, auth); !ok {
		return
	}

	siteID := siteFromQuery(r)

	config, err := cs.ConfigBySite(ctx, siteID)
	if err != nil {
		log.Error("failed to get site config", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	config.SiteID = siteID

	httpjson.Write(w, http.StatusOK, config)
}

func Patch(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer, cs ConfigService) {
	op := pkg + "Patch"

	log = log.With(slog.String("op", op))

	if _, ok := adminCaller(log, w, r, auth); !ok {
		return
	}

	siteID := siteFromQuery(r)

	var body models.SiteConfig
	if err := request.DecodeBody(r, &body); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	body.SiteID = siteID

	if err := cs.Update(ctx, &body); err != nil {
		log.Error("failed to update site config", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": "Config saved",
	})
}

type apiKeyRequest struct {
	Name string `json:"name"`
}

func AddAPIKey(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer, ks APIKeyService) {
	op := pkg + "AddAPIKey"

	log = log.With(slog.String("op", op))

	caller, ok := adminCaller(log, w, r, auth)
	if !ok {
		return
	}

	siteID := siteFromQuery(r)

	var body apiKeyRequest
	if err := request.DecodeBody(r, &body); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	key, secret, err := ks.CreateAPIKey(ctx, siteID, caller.Username, body.Name)
	if err != nil {
		log.Warn("failed to create api key", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	// the cleartext secret is returned exactly once
	httpjson.Write(w, http.StatusCreated, map[string]string{
		"name":   key.Name,
		"apiKey": secret,
	})
}

func GetAPIKeys(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, auth Authorizer, ks APIKeyService) {
	op := pkg + "GetAPIKeys"

	log = log.With(slog.String("op", op))

	if _, ok := adminCaller(log, w, r, auth); !ok {
		return
	}

	siteID := siteFromQuery(r)

	limit := parseutil.ParseLimit(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 100
	}

	keys, err := ks.ListAPIKeys(ctx, siteID, limit, 0)
	if err != nil {
		log.Error("failed to list api keys", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"apiKeys": keys,
	})
}

func DeleteAPIKey(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, keyID string, auth Authorizer, ks APIKeyService) {
	op := pkg + "DeleteAPIKey"

	log = log.With(slog.String("op", op))

	if _, ok := adminCaller(log, w, r, auth); !ok {
		return
	}

	siteID := siteFromQuery(r)

	if err := ks.DeleteAPIKey(ctx, siteID, keyID); err != nil {
		log.Warn("failed to delete api key", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("'%s' object deleted", keyID),
	})
}
