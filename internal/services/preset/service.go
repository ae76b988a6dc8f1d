package presetservice

import (
	"context"
	"docstore/internal/models"
	"docstore/internal/pagination"
	"errors"
	"fmt"
	"log/slog"
	"time"

	uuid "github.com/satori/go.uuid"
)

const pkg = "presetService/"

type PresetService struct {
	log        *slog.Logger
	presetRepo PresetRepository
	codec      *pagination.Codec
}

func New(log *slog.Logger, presetRepo PresetRepository, codec *pagination.Codec) *PresetService {
	return &PresetService{
		log:        log,
		presetRepo: presetRepo,
		codec:      codec,
	}
}

func (s *PresetService) Create(ctx context.Context, siteID string, userID string, name string, presetType string) (*models.Preset, error) {
	op := pkg + "Create"

	log := s.log.With(slog.String("op", op))

	var verrs models.ValidationErrors
	if name == "" {
		verrs = append(verrs, models.ValidationError{Key: "name", Error: "attribute is required"})
	}
	if presetType == "" {
		verrs = append(verrs, models.ValidationError{Key: "type", Error: "attribute is required"})
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	preset := &models.Preset{
		ID:           uuid.NewV4().String(),
		SiteID:       siteID,
		Name:         name,
		Type:         presetType,
		UserID:       userID,
		InsertedDate: time.Now().UTC(),
	}

	if err := s.presetRepo.Create(ctx, preset); err != nil {
		log.Error("failed to save preset", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("preset created", slog.String("preset_id", preset.ID))

	return preset, nil
}

func (s *PresetService) PresetByID(ctx context.Context, siteID string, id string) (*models.Preset, error) {
	op := pkg + "PresetByID"

	log := s.log.With(slog.String("op", op))

	preset, err := s.presetRepo.PresetByID(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, models.ErrPresetNotFound) {
			log.Warn("preset not found", slog.String("preset_id", id))
			return nil, &models.NotFoundError{
				Message: fmt.Sprintf("Preset %s not found.", id),
				Err:     models.ErrPresetNotFound,
			}
		}
		log.Error("failed to get preset", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return preset, nil
}

func (s *PresetService) List(ctx context.Context, siteID string, limit int, next string, previous string) (pagination.Page[*models.Preset], error) {
	op := pkg + "List"

	log := s.log.With(slog.String("op", op))

	cur, current, err := s.codec.Resolve(ctx, next, previous, limit)
	if err != nil {
		log.Error("failed to resolve pagination cursor", slog.String("error", err.Error()))
		return pagination.Page[*models.Preset]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	presets, err := s.presetRepo.ListBySite(ctx, siteID, cur.Limit+1, cur.StartIndex)
	if err != nil {
		log.Error("failed to list presets", slog.String("error", err.Error()))
		return pagination.Page[*models.Preset]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	page, err := pagination.Build(ctx, s.codec, presets, cur, current)
	if err != nil {
		log.Error("failed to build page", slog.String("error", err.Error()))
		return pagination.Page[*models.Preset]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return page, nil
}

func (s *PresetService) Delete(ctx context.Context, siteID string, id string) error {
	op := pkg + "Delete"

	log := s.log.With(slog.String("op", op))

	if err := s.presetRepo.Delete(ctx, siteID, id); err != nil {
		if errors.Is(err, models.ErrPresetNotFound) {
			return &models.NotFoundError{
				Message: fmt.Sprintf("Preset %s not found.", id),
				Err:     models.ErrPresetNotFound,
			}
		}
		log.Error("failed to delete preset", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("preset deleted", slog.String("preset_id", id))

	return nil
}

// AddTag appends the key to the preset's ordered tag list. Re-adding an
// existing key moves it to the end of the order.
func (s *PresetService) AddTag(ctx context.Context, siteID string, presetID string, key string) (*models.PresetTag, error) {
	op := pkg + "AddTag"

	log := s.log.With(slog.String("op", op))

	if key == "" {
		return nil, models.ValidationErrors{
			{Key: "key", Error: "attribute is required"},
		}
	}

	if _, err := s.PresetByID(ctx, siteID, presetID); err != nil {
		return nil, err
	}

	tag := &models.PresetTag{
		PresetID:     presetID,
		Key:          key,
		InsertedDate: time.Now().UTC(),
	}

	if err := s.presetRepo.AddTag(ctx, presetID, tag); err != nil {
		log.Error("failed to add preset tag", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("preset tag added",
		slog.String("preset_id", presetID), slog.String("key", key))

	return tag, nil
}

func (s *PresetService) ListTags(ctx context.Context, siteID string, presetID string, limit int, next string, previous string) (pagination.Page[*models.PresetTag], error) {
	op := pkg + "ListTags"

	log := s.log.With(slog.String("op", op))

	if _, err := s.PresetByID(ctx, siteID, presetID); err != nil {
		return pagination.Page[*models.PresetTag]{}, err
	}

	cur, current, err := s.codec.Resolve(ctx, next, previous, limit)
	if err != nil {
		log.Error("failed to resolve pagination cursor", slog.String("error", err.Error()))
		return pagination.Page[*models.PresetTag]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	tags, err := s.presetRepo.ListTags(ctx, presetID, cur.Limit+1, cur.StartIndex)
	if err != nil {
		log.Error("failed to list preset tags", slog.String("error", err.Error()))
		return pagination.Page[*models.PresetTag]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	page, err := pagination.Build(ctx, s.codec, tags, cur, current)
	if err != nil {
		log.Error("failed to build page", slog.String("error", err.Error()))
		return pagination.Page[*models.PresetTag]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return page, nil
}

func (s *PresetService) DeleteTag(ctx context.Context, siteID string, presetID string, key string) error {
	op := pkg + "DeleteTag"

	log := s.log.With(slog.String("op", op))

	if _, err := s.PresetByID(ctx, siteID, presetID); err != nil {
		return err
	}

	if err := s.presetRepo.DeleteTag(ctx, presetID, key); err != nil {
		if errors.Is(err, models.ErrTagNotFound) {
			return &models.NotFoundError{
				Message: fmt.Sprintf("Tag %s not found.", key),
				Err:     models.ErrTagNotFound,
			}
		}
		log.Error("failed to delete preset tag", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("preset tag deleted",
		slog.String("preset_id", presetID), slog.String("key", key))

	return nil
}
