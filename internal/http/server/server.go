package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"docstore/internal/access"
	"docstore/internal/config"
	"docstore/internal/http/handlers/actions"
	"docstore/internal/http/handlers/configs"
	"docstore/internal/http/handlers/docs"
	"docstore/internal/http/handlers/indices"
	"docstore/internal/http/handlers/presets"
	"docstore/internal/http/handlers/sites"
	"docstore/internal/http/handlers/tags"
	"docstore/internal/http/handlers/webhooks"
	"docstore/internal/http/middleware"
	"docstore/internal/models"
	"docstore/internal/utils/httpjson"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Documents   DocumentService
	Tags        TagService
	Actions     ActionService
	Webhooks    WebhookService
	Presets     PresetService
	SiteConfigs SiteConfigService
	FolderIndex FolderIndexService
}

func StartServer(
	ctx context.Context,
	cfg *config.Config,
	log *slog.Logger,
	authorizer *access.Authorizer,
	svc Services,
) error {
	r := mux.NewRouter()

	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics())

	setupRoutes(r, log, cfg, authorizer, svc)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
		Handler:      r,
	}

	errChan := make(chan error, 1)

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("server closed gracefully")
			} else {
				log.Error("could not start server:", "error", err)
				errChan <- err
			}
		}
	}()
	select {
	case <-ctx.Done():
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("error shutting down server", "error", err)
			return err
		}
		log.Info("server exited gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func setupRoutes(r *mux.Router, log *slog.Logger, cfg *config.Config, authorizer *access.Authorizer, svc Services) {
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// POST public webhook delivery, no identity required
	r.HandleFunc("/public/webhooks/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		webhooks.Receive(ctx, log, w, r, mux.Vars(r)["id"], false, svc.Webhooks)
	}).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()

	protected.Use(middleware.Identity(log, cfg.Auth.JWTSecret))

	// POST private webhook delivery
	protected.HandleFunc("/private/webhooks/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		webhooks.Receive(ctx, log, w, r, mux.Vars(r)["id"], true, svc.Webhooks)
	}).Methods(http.MethodPost)

	// GET documents
	protected.HandleFunc("/documents", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docs.Get(ctx, log, w, r, authorizer, svc.Documents)
	}).Methods(http.MethodGet)

	// POST document
	protected.HandleFunc("/documents", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docs.Add(ctx, log, w, r, authorizer, svc.Documents)
	}).Methods(http.MethodPost)

	// GET document by id
	protected.HandleFunc("/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docs.GetByID(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.Documents)
	}).Methods(http.MethodGet)

	// PATCH document
	protected.HandleFunc("/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docs.Patch(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.Documents)
	}).Methods(http.MethodPatch)

	// DELETE document
	protected.HandleFunc("/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docs.Delete(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.Documents)
	}).Methods(http.MethodDelete)

	// POST document tags
	protected.HandleFunc("/documents/{id}/tags", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tags.Add(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.Tags)
	}).Methods(http.MethodPost)

	// GET document tags
	protected.HandleFunc("/documents/{id}/tags", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tags.Get(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.Tags)
	}).Methods(http.MethodGet)

	// GET document tag by key
	protected.HandleFunc("/documents/{id}/tags/{key}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		tags.GetByKey(ctx, log, w, r, vars["id"], vars["key"], authorizer, svc.Tags)
	}).Methods(http.MethodGet)

	// PUT document tag
	protected.HandleFunc("/documents/{id}/tags/{key}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		tags.Update(ctx, log, w, r, vars["id"], vars["key"], authorizer, svc.Tags)
	}).Methods(http.MethodPut)

	// DELETE document tag
	protected.HandleFunc("/documents/{id}/tags/{key}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		tags.Delete(ctx, log, w, r, vars["id"], vars["key"], authorizer, svc.Tags)
	}).Methods(http.MethodDelete)

	// POST search by tag
	protected.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tags.Search(ctx, log, w, r, authorizer, svc.Tags)
	}).Methods(http.MethodPost)

	// POST document actions
	protected.HandleFunc("/documents/{id}/actions", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		actions.Add(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.Actions)
	}).Methods(http.MethodPost)

	// GET document actions
	protected.HandleFunc("/documents/{id}/actions", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		actions.Get(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.Actions)
	}).Methods(http.MethodGet)

	// POST webhook
	protected.HandleFunc("/webhooks", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		webhooks.Add(ctx, log, w, r, authorizer, svc.Webhooks)
	}).Methods(http.MethodPost)

	// GET webhooks
	protected.HandleFunc("/webhooks", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		webhooks.Get(ctx, log, w, r, authorizer, svc.Webhooks)
	}).Methods(http.MethodGet)

	// GET webhook by id
	protected.HandleFunc("/webhooks/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		webhooks.GetByID(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.Webhooks)
	}).Methods(http.MethodGet)

	// PATCH webhook
	protected.HandleFunc("/webhooks/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		webhooks.Patch(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.Webhooks)
	}).Methods(http.MethodPatch)

	// DELETE webhook
	protected.HandleFunc("/webhooks/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		webhooks.Delete(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.Webhooks)
	}).Methods(http.MethodDelete)

	// POST preset
	protected.HandleFunc("/presets", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		presets.Add(ctx, log, w, r, authorizer, svc.Presets)
	}).Methods(http.MethodPost)

	// GET presets
	protected.HandleFunc("/presets", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		presets.Get(ctx, log, w, r, authorizer, svc.Presets)
	}).Methods(http.MethodGet)

	// DELETE preset
	protected.HandleFunc("/presets/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		presets.Delete(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.Presets)
	}).Methods(http.MethodDelete)

	// POST preset tag
	protected.HandleFunc("/presets/{id}/tags", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		presets.AddTag(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.Presets)
	}).Methods(http.MethodPost)

	// GET preset tags
	protected.HandleFunc("/presets/{id}/tags", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		presets.GetTags(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.Presets)
	}).Methods(http.MethodGet)

	// DELETE preset tag
	protected.HandleFunc("/presets/{id}/tags/{key}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		presets.DeleteTag(ctx, log, w, r, vars["id"], vars["key"], authorizer, svc.Presets)
	}).Methods(http.MethodDelete)

	// GET site config
	protected.HandleFunc("/configs", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		configs.Get(ctx, log, w, r, authorizer, svc.SiteConfigs)
	}).Methods(http.MethodGet)

	// PATCH site config
	protected.HandleFunc("/configs", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		configs.Patch(ctx, log, w, r, authorizer, svc.SiteConfigs)
	}).Methods(http.MethodPatch)

	// POST api key
	protected.HandleFunc("/configs/apiKey", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		configs.AddAPIKey(ctx, log, w, r, authorizer, svc.SiteConfigs)
	}).Methods(http.MethodPost)

	// DELETE api key
	protected.HandleFunc("/configs/apiKey/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		configs.DeleteAPIKey(ctx, log, w, r, mux.Vars(r)["id"], authorizer, svc.SiteConfigs)
	}).Methods(http.MethodDelete)

	// GET api keys
	protected.HandleFunc("/configuration/apiKeys", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		configs.GetAPIKeys(ctx, log, w, r, authorizer, svc.SiteConfigs)
	}).Methods(http.MethodGet)

	// GET sites
	protected.HandleFunc("/sites", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sites.Get(ctx, log, w, r, authorizer)
	}).Methods(http.MethodGet)

	// GET current user
	protected.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sites.Me(ctx, log, w, r, authorizer.Resolver())
	}).Methods(http.MethodGet)

	// POST folder move
	protected.HandleFunc("/indices/folder/move", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		indices.Move(ctx, log, w, r, authorizer, svc.FolderIndex)
	}).Methods(http.MethodPost)

	// POST folder search
	protected.HandleFunc("/indices/search", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		indices.Search(ctx, log, w, r, authorizer, svc.FolderIndex)
	}).Methods(http.MethodPost)

	// DELETE index entry; key may contain slashes
	protected.HandleFunc("/indices/{type}/{key:.+}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		indices.Delete(ctx, log, w, r, vars["type"], vars["key"], authorizer, svc.FolderIndex)
	}).Methods(http.MethodDelete)

	// Not allowed
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpjson.WriteJSONError(w, http.StatusMethodNotAllowed, models.ErrMethodNotAllowed.Error())
	})
}
