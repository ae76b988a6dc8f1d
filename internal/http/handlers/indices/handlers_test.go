package indices

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docstore/internal/models"
	"docstore/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthorizer struct{ mock.Mock }

func (m *mockAuthorizer) AuthorizeRead(siteID string, caller *models.Caller) (string, error) {
	args := m.Called(siteID, caller)
	return args.String(0), args.Error(1)
}

func (m *mockAuthorizer) AuthorizeWrite(siteID string, caller *models.Caller) (string, error) {
	args := m.Called(siteID, caller)
	return args.String(0), args.Error(1)
}

type mockIndexService struct{ mock.Mock }

func (m *mockIndexService) Move(ctx context.Context, siteID string, source string, target string) error {
	args := m.Called(ctx, siteID, source, target)
	return args.Error(0)
}

func (m *mockIndexService) Delete(ctx context.Context, siteID string, indexType string, path string) error {
	args := m.Called(ctx, siteID, indexType, path)
	return args.Error(0)
}

func (m *mockIndexService) Search(ctx context.Context, siteID string, parent string, limit int, next string, previous string) (pagination.Page[*models.FolderIndexRecord], error) {
	args := m.Called(ctx, siteID, parent, limit, next, previous)
	return args.Get(0).(pagination.Page[*models.FolderIndexRecord]), args.Error(1)
}

func withCaller(r *http.Request, caller *models.Caller) *http.Request {
	ctx := context.WithValue(r.Context(), models.CallerContextKey, caller)
	return r.WithContext(ctx)
}

func TestMove_Success(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/indices/folder/move",
		strings.NewReader(`{"source":"invoices/2025","target":"archive/2025"}`))
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeWrite", "", caller).Return("default", nil)

	svc := new(mockIndexService)
	svc.On("Move", ctx, "default", "invoices/2025", "archive/2025").Return(nil)

	Move(ctx, slog.Default(), w, req, auth, svc)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	svc.AssertExpectations(t)
}

func TestDelete_InvalidIndexType(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/indices/bogus/invoices", nil)
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeWrite", "", caller).Return("default", nil)

	svc := new(mockIndexService)
	svc.On("Delete", ctx, "default", "bogus", "invoices").
		Return(&models.NotFoundError{Message: "invalid indexType"})

	Delete(ctx, slog.Default(), w, req, "bogus", "invoices", auth, svc)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
	assert.JSONEq(t, `{"message":"invalid indexType"}`, w.Body.String())
}

func TestDelete_FolderNotEmpty(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/indices/folder/invoices", nil)
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeWrite", "", caller).Return("default", nil)

	svc := new(mockIndexService)
	svc.On("Delete", ctx, "default", "folder", "invoices").
		Return(&models.ConflictError{Message: "Folder not empty"})

	Delete(ctx, slog.Default(), w, req, "folder", "invoices", auth, svc)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	assert.JSONEq(t, `{"message":"Folder not empty"}`, w.Body.String())
}

func TestSearch_ReturnsRecords(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/indices/search",
		strings.NewReader(`{"parent":"invoices"}`))
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeRead", "", caller).Return("default", nil)

	svc := new(mockIndexService)
	svc.On("Search", ctx, "default", "invoices", 0, "", "").
		Return(pagination.Page[*models.FolderIndexRecord]{
			Items: []*models.FolderIndexRecord{
				{Path: "invoices/2025", IsFolder: true},
			},
		}, nil)

	Search(ctx, slog.Default(), w, req, auth, svc)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		Records []models.FolderIndexRecord `json:"records"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.Len(t, parsed.Records, 1)
	assert.True(t, parsed.Records[0].IsFolder)
}
