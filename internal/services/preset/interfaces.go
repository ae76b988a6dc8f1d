package presetservice

import (
	"context"
	"docstore/internal/models"
)

type PresetRepository interface {
	Create(ctx context.Context, preset *models.Preset) error
	PresetByID(ctx context.Context, siteID string, id string) (*models.Preset, error)
	ListBySite(ctx context.Context, siteID string, limit int, offset int) ([]*models.Preset, error)
	Delete(ctx context.Context, siteID string, id string) error
	AddTag(ctx context.Context, presetID string, tag *models.PresetTag) error
	ListTags(ctx context.Context, presetID string, limit int, offset int) ([]*models.PresetTag, error)
	DeleteTag(ctx context.Context, presetID string, key string) error
}
