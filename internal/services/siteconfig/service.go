package siteconfigservice

import (
	"context"
	"crypto/rand"
	"docstore/internal/models"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/crypto/bcrypt"
)

const pkg = "siteConfigService/"

const apiKeyBytes = 24

type SiteConfigService struct {
	log        *slog.Logger
	configRepo ConfigRepository
	cache      Cache
}

func New(log *slog.Logger, configRepo ConfigRepository, cache Cache) *SiteConfigService {
	return &SiteConfigService{
		log:        log,
		configRepo: configRepo,
		cache:      cache,
	}
}

// ConfigBySite reads through the cache; limit checks run on every
// document write so the database is only hit on a miss.
func (s *SiteConfigService) ConfigBySite(ctx context.Context, siteID string) (*models.SiteConfig, error) {
	op := pkg + "ConfigBySite"

	log := s.log.With(slog.String("op", op))

	configJSON, err := s.cache.Get(ctx, siteID)
	if err == nil && configJSON != "" {
		var config models.SiteConfig
		if err := json.Unmarshal([]byte(configJSON), &config); err == nil {
			return &config, nil
		}
		log.Warn("failed to parse cached config, falling back to db")
	}

	config, err := s.configRepo.ConfigBySite(ctx, siteID)
	if err != nil {
		log.Error("failed to get site config", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if raw, err := json.Marshal(config); err == nil {
		if err := s.cache.Set(ctx, siteID, string(raw)); err != nil {
			log.Warn("failed to cache site config", slog.String("error", err.Error()))
		}
	}

	return config, nil
}

func (s *SiteConfigService) Update(ctx context.Context, config *models.SiteConfig) error {
	op := pkg + "Update"

	log := s.log.With(slog.String("op", op))

	if err := s.configRepo.UpsertConfig(ctx, config); err != nil {
		log.Error("failed to update site config", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if err := s.cache.Del(ctx, config.SiteID); err != nil {
		log.Warn("failed to invalidate config cache", slog.String("error", err.Error()))
	}

	log.Debug("site config updated", slog.String("site_id", config.SiteID))

	return nil
}

// CreateAPIKey generates the secret, stores only its bcrypt hash plus a
// display mask, and returns the cleartext exactly once.
func (s *SiteConfigService) CreateAPIKey(ctx context.Context, siteID string, userID string, name string) (*models.APIKey, string, error) {
	op := pkg + "CreateAPIKey"

	log := s.log.With(slog.String("op", op))

	if name == "" {
		return nil, "", models.ValidationErrors{
			{Key: "name", Error: "attribute is required"},
		}
	}

	raw := make([]byte, apiKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		log.Error("failed to generate api key", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	secret := hex.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash api key", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	key := &models.APIKey{
		ID:           uuid.NewV4().String(),
		SiteID:       siteID,
		Name:         name,
		Masked:       secret[:8] + "****",
		UserID:       userID,
		InsertedDate: time.Now().UTC(),
	}

	if err := s.configRepo.CreateAPIKey(ctx, key, hash); err != nil {
		log.Error("failed to save api key", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("api key created", slog.String("site_id", siteID), slog.String("name", name))

	return key, secret, nil
}

func (s *SiteConfigService) ListAPIKeys(ctx context.Context, siteID string, limit int, offset int) ([]*models.APIKey, error) {
	op := pkg + "ListAPIKeys"

	log := s.log.With(slog.String("op", op))

	keys, err := s.configRepo.ListAPIKeys(ctx, siteID, limit, offset)
	if err != nil {
		log.Error("failed to list api keys", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return keys, nil
}

func (s *SiteConfigService) DeleteAPIKey(ctx context.Context, siteID string, id string) error {
	op := pkg + "DeleteAPIKey"

	log := s.log.With(slog.String("op", op))

	if err := s.configRepo.DeleteAPIKey(ctx, siteID, id); err != nil {
		if errors.Is(err, models.ErrAPIKeyNotFound) {
			return &models.NotFoundError{
				Message: fmt.Sprintf("ApiKey %s not found.", id),
				Err:     models.ErrAPIKeyNotFound,
			}
		}
		log.Error("failed to delete api key", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("api key deleted", slog.String("site_id", siteID))

	return nil
}

// VerifyAPIKey compares a presented key against the site's stored
// hashes; used by the gateway authorizer path.
func (s *SiteConfigService) VerifyAPIKey(ctx context.Context, siteID string, secret string) error {
	op := pkg + "VerifyAPIKey"

	log := s.log.With(slog.String("op", op))

	hashes, err := s.configRepo.APIKeyHashes(ctx, siteID)
	if err != nil {
		log.Error("failed to load api key hashes", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	for _, hash := range hashes {
		if bcrypt.CompareHashAndPassword(hash, []byte(secret)) == nil {
			return nil
		}
	}

	return models.ErrUnauthorized
}
