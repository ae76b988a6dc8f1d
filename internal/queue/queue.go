package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

const pkg = "queue/"

// TaskTypeActionProcess is the asynq task type for document actions.
const TaskTypeActionProcess = "action:process"

// ActionTask is the payload handed to the worker for one PENDING action.
type ActionTask struct {
	ActionID   int64             `json:"actionId"`
	DocumentID string            `json:"documentId"`
	SiteID     string            `json:"siteId"`
	Type       string            `json:"type"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

type Config struct {
	Addr string
	DB   int
}

// Dispatcher enqueues action tasks for out-of-process execution. The
// API creates actions as PENDING and never transitions them itself.
type Dispatcher struct {
	log    *slog.Logger
	client *asynq.Client
}

func NewDispatcher(log *slog.Logger, cfg Config) *Dispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	return &Dispatcher{log: log, client: client}
}

func (d *Dispatcher) EnqueueAction(ctx context.Context, task ActionTask) error {
	op := pkg + "EnqueueAction"

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	t := asynq.NewTask(TaskTypeActionProcess, payload, asynq.MaxRetry(3))

	info, err := d.client.EnqueueContext(ctx, t)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	d.log.Debug("action task enqueued",
		slog.String("op", op),
		slog.String("task_id", info.ID),
		slog.Int64("action_id", task.ActionID),
		slog.String("document_id", task.DocumentID))

	return nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
