package presetservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"docstore/internal/models"
	"docstore/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPresetRepository struct {
	mock.Mock
}

func (m *MockPresetRepository) Create(ctx context.Context, preset *models.Preset) error {
	args := m.Called(ctx, preset)
	return args.Error(0)
}

func (m *MockPresetRepository) PresetByID(ctx context.Context, siteID string, id string) (*models.Preset, error) {
	args := m.Called(ctx, siteID, id)
	return args.Get(0).(*models.Preset), args.Error(1)
}

func (m *MockPresetRepository) ListBySite(ctx context.Context, siteID string, limit int, offset int) ([]*models.Preset, error) {
	args := m.Called(ctx, siteID, limit, offset)
	return args.Get(0).([]*models.Preset), args.Error(1)
}

func (m *MockPresetRepository) Delete(ctx context.Context, siteID string, id string) error {
	args := m.Called(ctx, siteID, id)
	return args.Error(0)
}

func (m *MockPresetRepository) AddTag(ctx context.Context, presetID string, tag *models.PresetTag) error {
	args := m.Called(ctx, presetID, tag)
	return args.Error(0)
}

func (m *MockPresetRepository) ListTags(ctx context.Context, presetID string, limit int, offset int) ([]*models.PresetTag, error) {
	args := m.Called(ctx, presetID, limit, offset)
	return args.Get(0).([]*models.PresetTag), args.Error(1)
}

func (m *MockPresetRepository) DeleteTag(ctx context.Context, presetID string, key string) error {
	args := m.Called(ctx, presetID, key)
	return args.Error(0)
}

type fakeTokenStore struct {
	data map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{data: make(map[string]string)}
}

func (s *fakeTokenStore) Get(_ context.Context, key string) (string, error) {
	return s.data[key], nil
}

func (s *fakeTokenStore) Set(_ context.Context, key string, value interface{}) error {
	s.data[key] = value.(string)
	return nil
}

func newService(repo *MockPresetRepository) *PresetService {
	codec := pagination.New(slog.Default(), newFakeTokenStore())
	return New(slog.Default(), repo, codec)
}

func TestCreate_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := new(MockPresetRepository)

	repo.On("Create", ctx, mock.AnythingOfType("*models.Preset")).Return(nil)

	svc := newService(repo)

	preset, err := svc.Create(ctx, "default", "joe", "invoice-tags", "tagging")
	require.NoError(t, err)
	assert.NotEmpty(t, preset.ID)
	assert.Equal(t, "default", preset.SiteID)
	assert.Equal(t, "invoice-tags", preset.Name)

	repo.AssertExpectations(t)
}

func TestCreate_MissingFields(t *testing.T) {
	t.Parallel()

	svc := newService(new(MockPresetRepository))

	_, err := svc.Create(context.Background(), "default", "joe", "", "")

	var verrs models.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "name", verrs[0].Key)
	assert.Equal(t, "type", verrs[1].Key)
}

func TestPresetByID_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := new(MockPresetRepository)

	repo.On("PresetByID", ctx, "default", "p1").
		Return((*models.Preset)(nil), models.ErrPresetNotFound)

	svc := newService(repo)

	_, err := svc.PresetByID(ctx, "default", "p1")

	var notFound *models.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Preset p1 not found.", notFound.Message)
}

func TestAddTag_MissingKey(t *testing.T) {
	t.Parallel()

	svc := newService(new(MockPresetRepository))

	_, err := svc.AddTag(context.Background(), "default", "p1", "")

	var verrs models.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "key", verrs[0].Key)
}

func TestAddTag_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := new(MockPresetRepository)

	repo.On("PresetByID", ctx, "default", "p1").
		Return(&models.Preset{ID: "p1", SiteID: "default"}, nil)
	repo.On("AddTag", ctx, "p1", mock.AnythingOfType("*models.PresetTag")).Return(nil)

	svc := newService(repo)

	tag, err := svc.AddTag(ctx, "default", "p1", "department")
	require.NoError(t, err)
	assert.Equal(t, "department", tag.Key)

	repo.AssertExpectations(t)
}

func TestListTags_OrderPreserved(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := new(MockPresetRepository)

	now := time.Now().UTC()
	stored := []*models.PresetTag{
		{PresetID: "p1", Key: "department", InsertedDate: now},
		{PresetID: "p1", Key: "status", InsertedDate: now},
		{PresetID: "p1", Key: "owner", InsertedDate: now},
	}

	repo.On("PresetByID", ctx, "default", "p1").
		Return(&models.Preset{ID: "p1", SiteID: "default"}, nil)
	repo.On("ListTags", ctx, "p1", pagination.MaxResults+1, 0).Return(stored, nil)

	svc := newService(repo)

	page, err := svc.ListTags(ctx, "default", "p1", 0, "", "")
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "department", page.Items[0].Key)
	assert.Equal(t, "status", page.Items[1].Key)
	assert.Equal(t, "owner", page.Items[2].Key)
	assert.Empty(t, page.Next)
}

func TestDeleteTag_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := new(MockPresetRepository)

	repo.On("PresetByID", ctx, "default", "p1").
		Return(&models.Preset{ID: "p1", SiteID: "default"}, nil)
	repo.On("DeleteTag", ctx, "p1", "missing").Return(models.ErrTagNotFound)

	svc := newService(repo)

	err := svc.DeleteTag(ctx, "default", "p1", "missing")

	var notFound *models.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Tag missing not found.", notFound.Message)
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := new(MockPresetRepository)

	repo.On("Delete", ctx, "default", "missing").Return(models.ErrPresetNotFound)

	svc := newService(repo)

	err := svc.Delete(ctx, "default", "missing")

	var notFound *models.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Preset missing not found.", notFound.Message)
}
