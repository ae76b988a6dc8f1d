package documentservice

import (
	"context"
	"docstore/internal/models"
	"docstore/internal/pagination"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"
)

const pkg = "documentService/"

type DocumentService struct {
	log         *slog.Logger
	docRepo     DocumentRepository
	tagRepo     TagRepository
	folderIndex FolderIndexer
	configs     ConfigProvider
	codec       *pagination.Codec
}

func New(
	log *slog.Logger,
	docRepo DocumentRepository,
	tagRepo TagRepository,
	folderIndex FolderIndexer,
	configs ConfigProvider,
	codec *pagination.Codec,
) *DocumentService {
	return &DocumentService{
		log:         log,
		docRepo:     docRepo,
		tagRepo:     tagRepo,
		folderIndex: folderIndex,
		configs:     configs,
		codec:       codec,
	}
}

// Create validates site limits and persists the document metadata plus
// its folder-index entry. All validation happens before any mutation.
func (s *DocumentService) Create(ctx context.Context, siteID string, doc *models.Document) (string, error) {
	op := pkg + "Create"

	log := s.log.With(slog.String("op", op))

	log.Debug("attempting to create document",
		slog.String("site_id", siteID), slog.String("path", doc.Path))

	if err := s.checkLimits(ctx, siteID, doc.ContentLength); err != nil {
		log.Warn("document limits exceeded", slog.String("error", err.Error()))
		return "", err
	}

	doc.ID = uuid.NewV4().String()
	doc.SiteID = siteID
	doc.InsertedDate = time.Now().UTC()

	if err := s.docRepo.CreateDocument(ctx, doc); err != nil {
		log.Error("failed to save document", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if doc.Path != "" {
		if err := s.indexPath(ctx, siteID, doc); err != nil {
			log.Error("failed to index document path", slog.String("error", err.Error()))
		}
	}

	log.Debug("document created", slog.String("document_id", doc.ID))

	return doc.ID, nil
}

func (s *DocumentService) DocumentByID(ctx context.Context, siteID string, id string) (*models.Document, error) {
	op := pkg + "DocumentByID"

	log := s.log.With(slog.String("op", op))

	doc, err := s.docRepo.DocumentByID(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("document not found", slog.String("document_id", id))
			return nil, &models.NotFoundError{
				Message: fmt.Sprintf("Document %s not found.", id),
				Err:     models.ErrDocumentNotFound,
			}
		}
		log.Error("failed to get document", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return doc, nil
}

// Patch updates mutable metadata; empty fields keep their stored value.
func (s *DocumentService) Patch(ctx context.Context, siteID string, id string, path string, deepLinkPath string, contentType string) (*models.Document, error) {
	op := pkg + "Patch"

	log := s.log.With(slog.String("op", op))

	doc, err := s.DocumentByID(ctx, siteID, id)
	if err != nil {
		return nil, err
	}

	if path != "" {
		doc.Path = path
	}
	if deepLinkPath != "" {
		doc.DeepLinkPath = deepLinkPath
	}
	if contentType != "" {
		doc.ContentType = contentType
	}

	if err := s.docRepo.UpdateDocument(ctx, doc); err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			return nil, &models.NotFoundError{
				Message: fmt.Sprintf("Document %s not found.", id),
				Err:     models.ErrDocumentNotFound,
			}
		}
		log.Error("failed to update document", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("document updated", slog.String("document_id", id))

	return doc, nil
}

func (s *DocumentService) Delete(ctx context.Context, siteID string, id string) error {
	op := pkg + "Delete"

	log := s.log.With(slog.String("op", op))

	doc, err := s.DocumentByID(ctx, siteID, id)
	if err != nil {
		return err
	}

	if err := s.docRepo.Delete(ctx, siteID, id); err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			return &models.NotFoundError{
				Message: fmt.Sprintf("Document %s not found.", id),
				Err:     models.ErrDocumentNotFound,
			}
		}
		log.Error("failed to delete document", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if err := s.tagRepo.DeleteByDocument(ctx, siteID, id); err != nil {
		log.Error("failed to delete document tags", slog.String("error", err.Error()))
	}

	if doc.Path != "" {
		if err := s.folderIndex.Delete(ctx, siteID, doc.Path); err != nil {
			log.Warn("failed to delete folder index entry", slog.String("error", err.Error()))
		}
	}

	log.Debug("document deleted", slog.String("document_id", id))

	return nil
}

func (s *DocumentService) List(ctx context.Context, siteID string, limit int, next string, previous string) (pagination.Page[*models.Document], error) {
	op := pkg + "List"

	log := s.log.With(slog.String("op", op))

	cur, current, err := s.codec.Resolve(ctx, next, previous, limit)
	if err != nil {
		log.Error("failed to resolve pagination cursor", slog.String("error", err.Error()))
		return pagination.Page[*models.Document]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	docs, err := s.docRepo.ListBySite(ctx, siteID, cur.Limit+1, cur.StartIndex)
	if err != nil {
		log.Error("failed to list documents", slog.String("error", err.Error()))
		return pagination.Page[*models.Document]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	page, err := pagination.Build(ctx, s.codec, docs, cur, current)
	if err != nil {
		log.Error("failed to build page", slog.String("error", err.Error()))
		return pagination.Page[*models.Document]{}, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return page, nil
}

func (s *DocumentService) checkLimits(ctx context.Context, siteID string, contentLength int64) error {
	op := pkg + "checkLimits"

	config, err := s.configs.ConfigBySite(ctx, siteID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if config.MaxContentLengthBytes > 0 && contentLength > config.MaxContentLengthBytes {
		return &models.ConflictError{
			Message: fmt.Sprintf("'contentLength' cannot exceed %d bytes", config.MaxContentLengthBytes),
		}
	}

	if config.MaxDocuments > 0 {
		count, err := s.docRepo.CountBySite(ctx, siteID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, models.ErrInternal)
		}
		if count >= config.MaxDocuments {
			return &models.ConflictError{
				Message: models.ErrMaxDocuments.Error(),
				Err:     models.ErrMaxDocuments,
			}
		}
	}

	return nil
}

func (s *DocumentService) indexPath(ctx context.Context, siteID string, doc *models.Document) error {
	parent := ""
	if i := strings.LastIndex(doc.Path, "/"); i >= 0 {
		parent = doc.Path[:i]
	}

	return s.folderIndex.Create(ctx, &models.FolderIndexRecord{
		SiteID:       siteID,
		Path:         doc.Path,
		Parent:       parent,
		DocumentID:   doc.ID,
		IsFolder:     false,
		InsertedDate: doc.InsertedDate,
	})
}
