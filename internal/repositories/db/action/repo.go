package actionrepo

import (
	"context"
	"database/sql"
	"docstore/internal/entities"
	"docstore/internal/models"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const pkg = "actionRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

// Create appends an action to the document's list; the serial id keeps
// insertion order across requests.
func (r *repository) Create(ctx context.Context, action *models.Action) error {
	op := pkg + "Create"

	var params []byte

	if len(action.Parameters) > 0 {
		raw, err := json.Marshal(action.Parameters)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		params = raw
	}

	err := r.db.GetContext(ctx, &action.ID,
		`INSERT INTO actions (site_id, document_id, action_type, status, parameters, message, user_id, inserted_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		action.SiteID, action.DocumentID, string(action.Type), string(action.Status),
		params, action.Message, action.UserID, action.InsertedDate)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) ListByDocument(ctx context.Context, siteID string, documentID string, limit int, offset int) ([]*models.Action, error) {
	op := pkg + "ListByDocument"

	rawActions := make([]entities.Action, 0)

	err := r.db.SelectContext(ctx, &rawActions,
		`SELECT
			a.id AS id,
			a.document_id AS document_id,
			a.site_id AS site_id,
			a.action_type AS action_type,
			a.status AS status,
			a.parameters AS parameters,
			a.message AS message,
			a.user_id AS user_id,
			a.inserted_date AS inserted_date
		FROM actions a
		WHERE a.site_id = $1 AND a.document_id = $2
		ORDER BY a.id
		LIMIT $3 OFFSET $4`,
		siteID, documentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	actions := make([]*models.Action, 0, len(rawActions))
	for _, raw := range rawActions {
		action, err := toModel(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		actions = append(actions, action)
	}

	return actions, nil
}

func (r *repository) ActionByID(ctx context.Context, id int64) (*models.Action, error) {
	op := pkg + "ActionByID"

	raw := entities.Action{}

	err := r.db.GetContext(ctx, &raw,
		`SELECT
			a.id AS id,
			a.document_id AS document_id,
			a.site_id AS site_id,
			a.action_type AS action_type,
			a.status AS status,
			a.parameters AS parameters,
			a.message AS message,
			a.user_id AS user_id,
			a.inserted_date AS inserted_date
		FROM actions a
		WHERE a.id = $1`,
		id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNoRows)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(raw)
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status models.ActionStatus, message string) error {
	op := pkg + "UpdateStatus"

	res, err := r.db.ExecContext(ctx,
		`UPDATE actions SET status = $1, message = $2 WHERE id = $3`,
		string(status), message, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNoRows)
	}

	return nil
}

func toModel(raw entities.Action) (*models.Action, error) {
	action := &models.Action{
		ID:           raw.ID,
		DocumentID:   raw.DocumentID,
		SiteID:       raw.SiteID,
		Type:         models.ActionType(raw.Type),
		Status:       models.ActionStatus(raw.Status),
		Message:      raw.Message,
		UserID:       raw.UserID,
		InsertedDate: raw.InsertedDate,
	}

	if len(raw.Parameters) > 0 {
		if err := json.Unmarshal(raw.Parameters, &action.Parameters); err != nil {
			return nil, err
		}
	}

	return action, nil
}
