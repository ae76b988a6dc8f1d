package worker

import (
	"context"
	"docstore/internal/queue"
	"fmt"
	"log/slog"
)

// LogProcessor marks actions complete without doing external work. It
// stands in for integrations (OCR engines, notifiers, indexers) that
// run as separate deployments.
type LogProcessor struct {
	log *slog.Logger
}

func NewLogProcessor(log *slog.Logger) *LogProcessor {
	return &LogProcessor{log: log}
}

func (p *LogProcessor) Process(ctx context.Context, task queue.ActionTask) (string, error) {
	p.log.Info("action processed",
		slog.Int64("action_id", task.ActionID),
		slog.String("document_id", task.DocumentID),
		slog.String("site_id", task.SiteID),
		slog.String("type", task.Type))

	return fmt.Sprintf("%s processed", task.Type), nil
}
