package presets

import (
	"context"

	"docstore/internal/models"
	"docstore/internal/pagination"
)

const pkg = "presetsHandler/"

type Authorizer interface {
	AuthorizeRead(requestedSiteID string, caller *models.Caller) (string, error)
	AuthorizeWrite(requestedSiteID string, caller *models.Caller) (string, error)
}

type PresetService interface {
	Create(ctx context.Context, siteID string, userID string, name string, presetType string) (*models.Preset, error)
	List(ctx context.Context, siteID string, limit int, next string, previous string) (pagination.Page[*models.Preset], error)
	Delete(ctx context.Context, siteID string, id string) error
	AddTag(ctx context.Context, siteID string, presetID string, key string) (*models.PresetTag, error)
	ListTags(ctx context.Context, siteID string, presetID string, limit int, next string, previous string) (pagination.Page[*models.PresetTag], error)
	DeleteTag(ctx context.Context, siteID string, presetID string, key string) error
}
