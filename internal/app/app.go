package app

import (
	"context"
	"docstore/internal/access"
	"docstore/internal/cache/redis"
	"docstore/internal/config"
	"docstore/internal/dbs/postgres"
	"docstore/internal/http/server"
	"docstore/internal/pagination"
	"docstore/internal/queue"
	cacheconfigrepo "docstore/internal/repositories/cache/siteconfig"
	cachecursorrepo "docstore/internal/repositories/cache/cursor"
	actionrepo "docstore/internal/repositories/db/action"
	documentrepo "docstore/internal/repositories/db/document"
	folderindexrepo "docstore/internal/repositories/db/folderindex"
	presetrepo "docstore/internal/repositories/db/preset"
	siteconfigrepo "docstore/internal/repositories/db/siteconfig"
	tagrepo "docstore/internal/repositories/db/tag"
	webhookrepo "docstore/internal/repositories/db/webhook"
	actionservice "docstore/internal/services/action"
	documentservice "docstore/internal/services/document"
	folderindexservice "docstore/internal/services/folderindex"
	presetservice "docstore/internal/services/preset"
	siteconfigservice "docstore/internal/services/siteconfig"
	tagservice "docstore/internal/services/tag"
	webhookservice "docstore/internal/services/webhook"
	"fmt"
	"log/slog"
)

type App struct {
	Authorizer *access.Authorizer
	Services   server.Services
	Dispatcher *queue.Dispatcher
}

func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	db, err := postgres.New(ctx, postgres.Config{
		Addr:     cfg.DB.Addr,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DB:       cfg.DB.DB})
	if err != nil {
		log.Error("failed connect to db", "err", err)
		return nil, fmt.Errorf("failed connect to db: %w", err)
	}

	cache, err := redis.New(ctx, redis.Config{Addr: cfg.Cache.Addr, Password: cfg.Cache.Password, DB: cfg.Cache.DB})
	if err != nil {
		log.Error("failed connect to cache", "err", err)
		return nil, fmt.Errorf("failed connect to cache: %w", err)
	}

	cursorStore := cachecursorrepo.New(cache, cfg.Cache.CursorTTL)

	configCache := cacheconfigrepo.New(cache, cfg.Cache.ConfigTTL)

	codec := pagination.New(log, cursorStore)

	resolver := access.NewResolver(cfg.SAMLGroupPrefix)

	authorizer := access.NewAuthorizer(log, resolver, cfg.ReadOnly)

	dispatcher := queue.NewDispatcher(log, queue.Config{Addr: cfg.Queue.Addr, DB: cfg.Queue.DB})

	docRepo := documentrepo.NewRepository(db)
	tagRepo := tagrepo.NewRepository(db)
	actionRepo := actionrepo.NewRepository(db)
	webhookRepo := webhookrepo.NewRepository(db)
	presetRepo := presetrepo.NewRepository(db)
	configRepo := siteconfigrepo.NewRepository(db)
	indexRepo := folderindexrepo.NewRepository(db)

	configService := siteconfigservice.New(log, configRepo, configCache)

	documentService := documentservice.New(log, docRepo, tagRepo, indexRepo, configService, codec)

	// No tag schema is enforced yet; AddTags skips the check when the
	// validator is nil.
	tagService := tagservice.New(log, tagRepo, documentService, nil, codec)

	actionService := actionservice.New(log, actionRepo, documentService, dispatcher, codec)

	webhookService := webhookservice.New(log, webhookRepo, configService, documentService, codec)

	presetService := presetservice.New(log, presetRepo, codec)

	folderIndexService := folderindexservice.New(log, indexRepo, codec)

	return &App{
		Authorizer: authorizer,
		Services: server.Services{
			Documents:   documentService,
			Tags:        tagService,
			Actions:     actionService,
			Webhooks:    webhookService,
			Presets:     presetService,
			SiteConfigs: configService,
			FolderIndex: folderIndexService,
		},
		Dispatcher: dispatcher,
	}, nil
}
