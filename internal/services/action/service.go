package actionservice

import (
	"context"
	"docstore/internal/models"
	"docstore/internal/pagination"
	"docstore/internal/queue"
	"fmt"
	"log/slog"
	"time"
)

const pkg = "actionService/"

type ActionService struct {
	log        *slog.Logger
	actionRepo ActionRepository
	docs       DocumentProvider
	dispatcher Dispatcher
	codec      *pagination.Codec
}

func New(
	log *slog.Logger,
	actionRepo ActionRepository,
	docs DocumentProvider,
	dispatcher Dispatcher,
	codec *pagination.Codec,
) *ActionService {
	return &ActionService{
		log:        log,
		actionRepo: actionRepo,
		docs:       docs,
		dispatcher: dispatcher,
		codec:      codec,
	}
}

// Add validates every submitted action before creating any, appends
// them after the document's existing actions as PENDING, and enqueues
// one task per action for the out-of-process worker.
func (s *ActionService) Add(ctx context.Context, siteID string, documentID string, userID string, actions []*models.Action) error {
	op := pkg + "Add"

	log := s.log.With(slog.String("op", op))

	if _, err := s.docs.DocumentByID(ctx, siteID, documentID); err != nil {
		return err
	}

	verrs := make(models.ValidationErrors, 0)

	for _, action := range actions {
		if !action.Type.IsValid() {
			verrs = append(verrs, models.ValidationError{
				Key:   "type",
				Error: "missing/invalid 'type' in body",
			})
		}
	}

	if len(verrs) > 0 {
		log.Warn("action validation failed", slog.Int("errors", len(verrs)))
		return verrs
	}

	now := time.Now().UTC()

	for _, action := range actions {
		action.DocumentID = documentID
		action.SiteID = siteID
		action.Status = models.ActionStatusPending
		action.UserID = userID
		action.InsertedDate = now

		if err := s.actionRepo.Create(ctx, action); err != nil {
			log.Error("failed to save action",
				slog.String("type", string(action.Type)), slog.String("error", err.Error()))
			return fmt.Errorf("%s: %w", op, models.ErrInternal)
		}

		task := queue.ActionTask{
			ActionID:   action.ID,
			DocumentID: documentID,
			SiteID:     siteID,
			Type:       string(action.Type),
			Parameters: action.Parameters,
		}

		if err := s.dispatcher.EnqueueAction(ctx, task); err != nil {
			// the action stays PENDING; a requeue sweep can pick it up
			log.Error("failed to enqueue action",
				slog.Int64("action_id", action.ID), slog.String("error", err.Error()))
		}
	}

	log.Debug("actions added",
		slog.String("document_id", documentID), slog.Int("count", len(actions)))

	return nil
}

func (s *ActionService) List(ctx context.Context, siteID string, documentID string, limit int, next string, previous string) (pagination.Page[*models.Action], error) {
	op := pkg + "List"

	log := s.log.With(slog.String("op", op))

	if _, err := s.docs.DocumentByID(ctx, siteID, documentID); err != nil {
		return pagination.Page[*models.Action]{}, err
	}

	cur, current, err := s.codec.Resolve(ctx, next, previous, limit)
	if err != nil {
		log.Error("failed to resolve pagination cursor", slog.String("error", err.Error()))
		return pagination.Page[*models.Action]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	actions, err := s.actionRepo.ListByDocument(ctx, siteID, documentID, cur.Limit+1, cur.StartIndex)
	if err != nil {
		log.Error("failed to list actions", slog.String("error", err.Error()))
		return pagination.Page[*models.Action]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	page, err := pagination.Build(ctx, s.codec, actions, cur, current)
	if err != nil {
		log.Error("failed to build page", slog.String("error", err.Error()))
		return pagination.Page[*models.Action]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return page, nil
}
