package worker

import (
	"context"
	"docstore/internal/models"
	"docstore/internal/queue"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

const pkg = "worker/"

// ActionUpdater transitions action rows; the worker is the only
// component allowed to move an action out of PENDING.
type ActionUpdater interface {
	UpdateStatus(ctx context.Context, id int64, status models.ActionStatus, message string) error
}

// Processor executes one action type. The returned message is stored on
// the completed action (e.g. an OCR result location).
type Processor interface {
	Process(ctx context.Context, task queue.ActionTask) (string, error)
}

// Worker consumes action tasks and drives PENDING -> COMPLETE/FAILED.
type Worker struct {
	log        *slog.Logger
	updater    ActionUpdater
	processors map[string]Processor
}

func New(log *slog.Logger, updater ActionUpdater, processors map[string]Processor) *Worker {
	return &Worker{
		log:        log,
		updater:    updater,
		processors: processors,
	}
}

// HandleActionTask is the asynq handler for queue.TaskTypeActionProcess.
func (w *Worker) HandleActionTask(ctx context.Context, t *asynq.Task) error {
	op := pkg + "HandleActionTask"

	log := w.log.With(slog.String("op", op))

	var task queue.ActionTask

	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		log.Error("failed to unmarshal action task", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, asynq.SkipRetry)
	}

	log.Debug("processing action",
		slog.Int64("action_id", task.ActionID),
		slog.String("document_id", task.DocumentID),
		slog.String("type", task.Type))

	processor, ok := w.processors[task.Type]
	if !ok {
		msg := fmt.Sprintf("no processor for action type %s", task.Type)
		log.Error("unknown action type", slog.String("type", task.Type))

		if err := w.updater.UpdateStatus(ctx, task.ActionID, models.ActionStatusFailed, msg); err != nil {
			log.Error("failed to mark action failed", slog.String("error", err.Error()))
		}

		return fmt.Errorf("%s: %s: %w", op, msg, asynq.SkipRetry)
	}

	if err := w.updater.UpdateStatus(ctx, task.ActionID, models.ActionStatusRunning, ""); err != nil {
		log.Error("failed to mark action running", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	message, err := processor.Process(ctx, task)
	if err != nil {
		log.Warn("action processing failed",
			slog.Int64("action_id", task.ActionID),
			slog.String("error", err.Error()))

		if uerr := w.updater.UpdateStatus(ctx, task.ActionID, models.ActionStatusFailed, err.Error()); uerr != nil {
			log.Error("failed to mark action failed", slog.String("error", uerr.Error()))
			return fmt.Errorf("%s: %w", op, uerr)
		}

		return nil
	}

	if err := w.updater.UpdateStatus(ctx, task.ActionID, models.ActionStatusComplete, message); err != nil {
		log.Error("failed to mark action complete", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("action completed", slog.Int64("action_id", task.ActionID))

	return nil
}
