package folderindexservice

import (
	"context"
	"docstore/internal/models"
	"docstore/internal/pagination"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const pkg = "folderIndexService/"

type FolderIndexService struct {
	log       *slog.Logger
	indexRepo FolderIndexRepository
	codec     *pagination.Codec
}

func New(log *slog.Logger, indexRepo FolderIndexRepository, codec *pagination.Codec) *FolderIndexService {
	return &FolderIndexService{
		log:       log,
		indexRepo: indexRepo,
		codec:     codec,
	}
}

// Move relocates a folder or file node and everything beneath it.
func (s *FolderIndexService) Move(ctx context.Context, siteID string, source string, target string) error {
	op := pkg + "Move"

	log := s.log.With(slog.String("op", op))

	var verrs models.ValidationErrors
	if source == "" {
		verrs = append(verrs, models.ValidationError{Key: "source", Error: "attribute is required"})
	}
	if target == "" {
		verrs = append(verrs, models.ValidationError{Key: "target", Error: "attribute is required"})
	}
	if len(verrs) > 0 {
		return verrs
	}

	source = strings.TrimSuffix(source, "/")
	target = strings.TrimSuffix(target, "/")

	if err := s.indexRepo.Move(ctx, siteID, source, target); err != nil {
		if errors.Is(err, models.ErrIndexNotFound) {
			log.Warn("move source not found", slog.String("source", source))
			return &models.NotFoundError{
				Message: fmt.Sprintf("Folder %s not found.", source),
				Err:     models.ErrIndexNotFound,
			}
		}
		log.Error("failed to move folder", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("folder moved",
		slog.String("source", source), slog.String("target", target))

	return nil
}

// Delete removes one index entry. Folders must be empty first.
func (s *FolderIndexService) Delete(ctx context.Context, siteID string, indexType string, path string) error {
	op := pkg + "Delete"

	log := s.log.With(slog.String("op", op))

	if !models.IndexType(indexType).IsValid() {
		return &models.NotFoundError{
			Message: models.ErrIndexNotFound.Error(),
			Err:     models.ErrIndexNotFound,
		}
	}

	record, err := s.indexRepo.RecordByPath(ctx, siteID, path)
	if err != nil {
		if errors.Is(err, models.ErrIndexNotFound) {
			return &models.NotFoundError{
				Message: fmt.Sprintf("Folder %s not found.", path),
				Err:     models.ErrIndexNotFound,
			}
		}
		log.Error("failed to load index record", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if record.IsFolder {
		count, err := s.indexRepo.ChildCount(ctx, siteID, record.Path)
		if err != nil {
			log.Error("failed to count folder children", slog.String("error", err.Error()))
			return fmt.Errorf("%s: %w", op, models.ErrInternal)
		}
		if count > 0 {
			return &models.ConflictError{
				Message: models.ErrFolderNotEmpty.Error(),
				Err:     models.ErrFolderNotEmpty,
			}
		}
	}

	if err := s.indexRepo.Delete(ctx, siteID, path); err != nil {
		if errors.Is(err, models.ErrIndexNotFound) {
			return &models.NotFoundError{
				Message: fmt.Sprintf("Folder %s not found.", path),
				Err:     models.ErrIndexNotFound,
			}
		}
		log.Error("failed to delete index record", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("index record deleted", slog.String("path", path))

	return nil
}

// Search lists the direct children of a folder; an empty parent returns
// the site's root entries.
func (s *FolderIndexService) Search(ctx context.Context, siteID string, parent string, limit int, next string, previous string) (pagination.Page[*models.FolderIndexRecord], error) {
	op := pkg + "Search"

	log := s.log.With(slog.String("op", op))

	parent = strings.TrimSuffix(parent, "/")

	cur, current, err := s.codec.Resolve(ctx, next, previous, limit)
	if err != nil {
		log.Error("failed to resolve pagination cursor", slog.String("error", err.Error()))
		return pagination.Page[*models.FolderIndexRecord]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	records, err := s.indexRepo.Search(ctx, siteID, parent, cur.Limit+1, cur.StartIndex)
	if err != nil {
		log.Error("failed to search folder index", slog.String("error", err.Error()))
		return pagination.Page[*models.FolderIndexRecord]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	page, err := pagination.Build(ctx, s.codec, records, cur, current)
	if err != nil {
		log.Error("failed to build page", slog.String("error", err.Error()))
		return pagination.Page[*models.FolderIndexRecord]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return page, nil
}
