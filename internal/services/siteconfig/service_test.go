package siteconfigservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"docstore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) ConfigBySite(ctx context.Context, siteID string) (*models.SiteConfig, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).(*models.SiteConfig), args.Error(1)
}

func (m *MockConfigRepository) UpsertConfig(ctx context.Context, config *models.SiteConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockConfigRepository) CreateAPIKey(ctx context.Context, key *models.APIKey, keyHash []byte) error {
	args := m.Called(ctx, key, keyHash)
	return args.Error(0)
}

func (m *MockConfigRepository) ListAPIKeys(ctx context.Context, siteID string, limit int, offset int) ([]*models.APIKey, error) {
	args := m.Called(ctx, siteID, limit, offset)
	return args.Get(0).([]*models.APIKey), args.Error(1)
}

func (m *MockConfigRepository) DeleteAPIKey(ctx context.Context, siteID string, id string) error {
	args := m.Called(ctx, siteID, id)
	return args.Error(0)
}

func (m *MockConfigRepository) APIKeyHashes(ctx context.Context, siteID string) ([][]byte, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).([][]byte), args.Error(1)
}

type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, siteID string) (string, error) {
	return c.data[siteID], nil
}

func (c *fakeCache) Set(_ context.Context, siteID string, value interface{}) error {
	c.data[siteID] = value.(string)
	return nil
}

func (c *fakeCache) Del(_ context.Context, siteID string) error {
	delete(c.data, siteID)
	return nil
}

func TestConfigBySite_CachesResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := new(MockConfigRepository)
	cache := newFakeCache()

	stored := &models.SiteConfig{SiteID: "default", MaxDocuments: 100}
	repo.On("ConfigBySite", ctx, "default").Return(stored, nil).Once()

	svc := New(slog.Default(), repo, cache)

	first, err := svc.ConfigBySite(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, int64(100), first.MaxDocuments)

	// second read must come from cache; the repo expectation is Once
	second, err := svc.ConfigBySite(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, int64(100), second.MaxDocuments)

	repo.AssertExpectations(t)
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := new(MockConfigRepository)
	cache := newFakeCache()
	cache.data["default"] = `{"siteId":"default"}`

	config := &models.SiteConfig{SiteID: "default", MaxDocuments: 5}
	repo.On("UpsertConfig", ctx, config).Return(nil)

	svc := New(slog.Default(), repo, cache)

	err := svc.Update(ctx, config)
	assert.NoError(t, err)
	assert.Empty(t, cache.data["default"])
}

func TestCreateAPIKey_HashAndMask(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := new(MockConfigRepository)

	var gotHash []byte
	repo.On("CreateAPIKey", ctx, mock.AnythingOfType("*models.APIKey"), mock.AnythingOfType("[]uint8")).
		Run(func(args mock.Arguments) {
			gotHash = args.Get(2).([]byte)
		}).
		Return(nil)

	svc := New(slog.Default(), repo, newFakeCache())

	key, secret, err := svc.CreateAPIKey(ctx, "default", "admin", "ci-key")
	require.NoError(t, err)
	require.NotEmpty(t, secret)
	assert.Equal(t, secret[:8]+"****", key.Masked)
	assert.NoError(t, bcrypt.CompareHashAndPassword(gotHash, []byte(secret)))
}

func TestCreateAPIKey_MissingName(t *testing.T) {
	t.Parallel()

	svc := New(slog.Default(), new(MockConfigRepository), newFakeCache())

	_, _, err := svc.CreateAPIKey(context.Background(), "default", "admin", "")

	var verrs models.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "name", verrs[0].Key)
}

func TestVerifyAPIKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := new(MockConfigRepository)

	hash, err := bcrypt.GenerateFromPassword([]byte("good-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("APIKeyHashes", ctx, "default").Return([][]byte{hash}, nil)

	svc := New(slog.Default(), repo, newFakeCache())

	assert.NoError(t, svc.VerifyAPIKey(ctx, "default", "good-secret"))
	assert.ErrorIs(t, svc.VerifyAPIKey(ctx, "default", "bad-secret"), models.ErrUnauthorized)
}

func TestDeleteAPIKey_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := new(MockConfigRepository)

	repo.On("DeleteAPIKey", ctx, "default", "key1").Return(models.ErrAPIKeyNotFound)

	svc := New(slog.Default(), repo, newFakeCache())

	err := svc.DeleteAPIKey(ctx, "default", "key1")

	var notFound *models.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "ApiKey key1 not found.", notFound.Message)
}
