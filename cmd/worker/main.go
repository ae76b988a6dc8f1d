package main

import (
	"context"
	"docstore/internal/config"
	"docstore/internal/dbs/postgres"
	"docstore/internal/models"
	"docstore/internal/queue"
	"docstore/internal/worker"
	actionrepo "docstore/internal/repositories/db/action"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
)

const (
	envDev   = "dev"
	envProd  = "prod"
	envLocal = "local"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting worker", "env", cfg.Env)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := postgres.New(ctx, postgres.Config{
		Addr:     cfg.DB.Addr,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DB:       cfg.DB.DB})
	if err != nil {
		log.Error("failed connect to db", slog.String("error", err.Error()))
		os.Exit(1)
	}

	actionRepo := actionrepo.NewRepository(db)

	processor := worker.NewLogProcessor(log)

	processors := make(map[string]worker.Processor)
	for _, t := range models.ActionTypes() {
		processors[string(t)] = processor
	}

	w := worker.New(log, actionRepo, processors)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Queue.Addr, DB: cfg.Queue.DB},
		asynq.Config{Concurrency: cfg.Queue.Concurrency},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskTypeActionProcess, w.HandleActionTask)

	go func() {
		<-ctx.Done()
		log.Info("shutting down worker...")
		srv.Shutdown()
	}()

	if err := srv.Run(mux); err != nil {
		log.Error("worker stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("worker exited gracefully")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return log
}
