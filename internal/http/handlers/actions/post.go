package actions

import (
	"context"
	"log/slog"
	"net/http"

	"docstore/internal/models"
	"docstore/internal/utils/httpjson"
	"docstore/internal/utils/request"
)

type actionRequest struct {
	Type       string            `json:"type"`
	Parameters map[string]string `json:"parameters"`
}

type addRequest struct {
	Actions []actionRequest `json:"actions"`
}

func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, auth Authorizer, aa ActionAdder) {
	op := pkg + "Add"

	log = log.With(slog.String("op", op))

	caller, ok := request.Caller(r)
	if !ok {
		log.Error("failed to get caller from context")
		httpjson.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return
	}

	siteID, err := auth.AuthorizeWrite(r.URL.Query().Get("siteId"), caller)
	if err != nil {
		log.Warn("write not authorized", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	var body addRequest
	if err := request.DecodeBody(r, &body); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	actions := make([]*models.Action, 0, len(body.Actions))
	for _, a := range body.Actions {
		actions = append(actions, &models.Action{
			Type:       models.ActionType(a.Type),
			Parameters: a.Parameters,
		})
	}

	if err := aa.Add(ctx, siteID, docID, caller.Username, actions); err != nil {
		log.Warn("failed to add actions", slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]string{
		"message": "Actions saved",
	})
}
