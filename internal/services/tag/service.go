package tagservice

import (
	"context"
	"docstore/internal/models"
	"docstore/internal/pagination"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const pkg = "tagService/"

// systemTagKeys are reserved; user requests cannot create or delete them.
var systemTagKeys = map[string]bool{
	"untagged": true,
	"path":     true,
}

type TagService struct {
	log     *slog.Logger
	tagRepo TagRepository
	docs    DocumentProvider
	schema  SchemaValidator
	codec   *pagination.Codec
}

func New(
	log *slog.Logger,
	tagRepo TagRepository,
	docs DocumentProvider,
	schema SchemaValidator,
	codec *pagination.Codec,
) *TagService {
	return &TagService{
		log:     log,
		tagRepo: tagRepo,
		docs:    docs,
		schema:  schema,
		codec:   codec,
	}
}

// AddTags validates the whole batch before writing anything, then
// upserts each tag. Re-adding an existing key replaces its value.
func (s *TagService) AddTags(ctx context.Context, siteID string, documentID string, userID string, tags []*models.Tag) error {
	op := pkg + "AddTags"

	log := s.log.With(slog.String("op", op))

	if _, err := s.docs.DocumentByID(ctx, siteID, documentID); err != nil {
		return err
	}

	verrs := make(models.ValidationErrors, 0)

	for _, tag := range tags {
		if tag.Key == "" {
			verrs = append(verrs, models.ValidationError{Key: "key", Error: "attribute is required"})
		} else if systemTagKeys[tag.Key] {
			verrs = append(verrs, models.ValidationError{
				Key:   "key",
				Error: fmt.Sprintf("unallowed tag key '%s'", tag.Key),
			})
		}
	}

	if s.schema != nil {
		verrs = append(verrs, s.schema.ValidateTags(ctx, siteID, tags)...)
	}

	if len(verrs) > 0 {
		log.Warn("tag validation failed", slog.Int("errors", len(verrs)))
		return verrs
	}

	now := time.Now().UTC()

	for _, tag := range tags {
		tag.DocumentID = documentID
		tag.UserID = userID
		tag.InsertedDate = now

		if err := s.tagRepo.Upsert(ctx, tag, siteID); err != nil {
			log.Error("failed to save tag",
				slog.String("key", tag.Key), slog.String("error", err.Error()))
			return fmt.Errorf("%s: %w", op, models.ErrInternal)
		}
	}

	log.Debug("tags added",
		slog.String("document_id", documentID), slog.Int("count", len(tags)))

	return nil
}

// UpdateTag is PUT semantics: the tag's values are replaced entirely.
// The returned message mirrors the tag round-trip contract.
func (s *TagService) UpdateTag(ctx context.Context, siteID string, documentID string, userID string, tag *models.Tag) (string, error) {
	op := pkg + "UpdateTag"

	log := s.log.With(slog.String("op", op))

	if _, err := s.docs.DocumentByID(ctx, siteID, documentID); err != nil {
		return "", err
	}

	tag.DocumentID = documentID
	tag.UserID = userID
	tag.InsertedDate = time.Now().UTC()

	if err := s.tagRepo.Upsert(ctx, tag, siteID); err != nil {
		log.Error("failed to update tag",
			slog.String("key", tag.Key), slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("tag updated", slog.String("key", tag.Key))

	return fmt.Sprintf("Updated tag '%s' to '%s'", tag.Key, tag.Value), nil
}

func (s *TagService) TagByKey(ctx context.Context, siteID string, documentID string, key string) (*models.Tag, error) {
	op := pkg + "TagByKey"

	log := s.log.With(slog.String("op", op))

	tag, err := s.tagRepo.TagByKey(ctx, siteID, documentID, key)
	if err != nil {
		if errors.Is(err, models.ErrTagNotFound) {
			return nil, tagNotFound(key)
		}
		log.Error("failed to get tag", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return tag, nil
}

// DeleteTag removes the tag entirely, regardless of how many values it
// held or whether a value was named at delete time.
func (s *TagService) DeleteTag(ctx context.Context, siteID string, documentID string, key string) error {
	op := pkg + "DeleteTag"

	log := s.log.With(slog.String("op", op))

	if err := s.tagRepo.Delete(ctx, siteID, documentID, key); err != nil {
		if errors.Is(err, models.ErrTagNotFound) {
			log.Warn("tag not found", slog.String("key", key))
			return tagNotFound(key)
		}
		log.Error("failed to delete tag", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("tag deleted", slog.String("key", key))

	return nil
}

func (s *TagService) List(ctx context.Context, siteID string, documentID string, limit int, next string, previous string) (pagination.Page[*models.Tag], error) {
	op := pkg + "List"

	log := s.log.With(slog.String("op", op))

	if _, err := s.docs.DocumentByID(ctx, siteID, documentID); err != nil {
		return pagination.Page[*models.Tag]{}, err
	}

	cur, current, err := s.codec.Resolve(ctx, next, previous, limit)
	if err != nil {
		log.Error("failed to resolve pagination cursor", slog.String("error", err.Error()))
		return pagination.Page[*models.Tag]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	tags, err := s.tagRepo.ListByDocument(ctx, siteID, documentID, cur.Limit+1, cur.StartIndex)
	if err != nil {
		log.Error("failed to list tags", slog.String("error", err.Error()))
		return pagination.Page[*models.Tag]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	page, err := pagination.Build(ctx, s.codec, tags, cur, current)
	if err != nil {
		log.Error("failed to build page", slog.String("error", err.Error()))
		return pagination.Page[*models.Tag]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return page, nil
}

// Search returns document ids whose tag matches key (and value, when
// given); eq against a multi-valued tag is a membership check.
func (s *TagService) Search(ctx context.Context, siteID string, key string, value string, limit int) ([]string, error) {
	op := pkg + "Search"

	log := s.log.With(slog.String("op", op))

	if key == "" {
		return nil, models.ValidationErrors{
			{Key: "tag/key", Error: "attribute is required"},
		}
	}

	if limit < 1 {
		limit = pagination.MaxResults
	}

	ids, err := s.tagRepo.FindDocumentsByTag(ctx, siteID, key, value, limit, 0)
	if err != nil {
		log.Error("failed to search tags", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return ids, nil
}

func tagNotFound(key string) *models.NotFoundError {
	return &models.NotFoundError{
		Message: fmt.Sprintf("Tag %s not found.", key),
		Err:     models.ErrTagNotFound,
	}
}
