package tags

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

type mockAdder struct{ mock.Mock }

func (m *mockAdder) AddTags(ctx context.Context, siteID string, documentID string, userID string, tags []*models.Tag) error {
	args := m.Called(ctx, siteID, documentID, userID, tags)
	return args.Error(0)
}

type mockProvider struct{ mock.Mock }

func (m *mockProvider) TagByKey(ctx context.Context, siteID string, documentID string, key string) (*models.Tag, error) {
	args := m.Called(ctx, siteID, documentID, key)
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *mockProvider) List(ctx context.Context, siteID string, documentID string, limit int, next string, previous string) (pagination.Page[*models.Tag], error) {
	args := m.Called(ctx, siteID, documentID, limit, next, previous)
	return args.Get(0).(pagination.Page[*models.Tag]), args.Error(1)
}

type mockUpdater struct{ mock.Mock }

func (m *mockUpdater) UpdateTag(ctx context.Context, siteID string, documentID string, userID string, tag *models.Tag) (string, error) {
	args := m.Called(ctx, siteID, documentID, userID, tag)
	return args.String(0), args.Error(1)
}

type mockDeleter struct{ mock.Mock }

func (m *mockDeleter) DeleteTag(ctx context.Context, siteID string, documentID string, key string) error {
	args := m.Called(ctx, siteID, documentID, key)
	return args.Error(0)
}

type mockSearcher struct{ mock.Mock }

func (m *mockSearcher) Search(ctx context.Context, siteID string, key string, value string, limit int) ([]string, error) {
	args := m.Called(ctx, siteID, key, value, limit)
	return args.Get(0).([]string), args.Error(1)
}

func withCaller(r *http.Request, caller *models.Caller) *http.Request {
	ctx := context.WithValue(r.Context(), models.CallerContextKey, caller)
	return r.WithContext(ctx)
}

func TestAdd_SingleTag(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/documents/d1/tags",
		strings.NewReader(`{"key":"department","value":"finance"}`))
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeWrite", "", caller).Return("default", nil)

	adder := new(mockAdder)
	adder.On("AddTags", ctx, "default", "d1", "joe",
		mock.MatchedBy(func(tags []*models.Tag) bool {
			return len(tags) == 1 && tags[0].Key == "department" && tags[0].Value == "finance"
		})).Return(nil)

	Add(ctx, slog.Default(), w, req, "d1", auth, adder)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
	assert.JSONEq(t, `{"message":"Created Tags."}`, w.Body.String())

	adder.AssertExpectations(t)
}

func TestAdd_Batch(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/documents/d1/tags",
		strings.NewReader(`{"tags":[{"key":"a","value":"1"},{"key":"b","values":["x","y"]}]}`))
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeWrite", "", caller).Return("default", nil)

	adder := new(mockAdder)
	adder.On("AddTags", ctx, "default", "d1", "joe",
		mock.MatchedBy(func(tags []*models.Tag) bool {
			return len(tags) == 2 && tags[1].Values[1] == "y"
		})).Return(nil)

	Add(ctx, slog.Default(), w, req, "d1", auth, adder)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
	adder.AssertExpectations(t)
}

func TestAdd_ValidationErrors(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/documents/d1/tags",
		strings.NewReader(`{"key":""}`))
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeWrite", "", caller).Return("default", nil)

	adder := new(mockAdder)
	adder.On("AddTags", ctx, "default", "d1", "joe", mock.Anything).
		Return(models.ValidationErrors{{Key: "key", Error: "attribute is required"}})

	Add(ctx, slog.Default(), w, req, "d1", auth, adder)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	assert.JSONEq(t, `{"errors":[{"key":"key","error":"attribute is required"}]}`, w.Body.String())
}

func TestGetByKey_NotFound(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/documents/d1/tags/missing", nil)
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeRead", "", caller).Return("default", nil)

	provider := new(mockProvider)
	provider.On("TagByKey", ctx, "default", "d1", "missing").
		Return((*models.Tag)(nil), &models.NotFoundError{Message: "Tag missing not found."})

	GetByKey(ctx, slog.Default(), w, req, "d1", "missing", auth, provider)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
	assert.JSONEq(t, `{"message":"Tag missing not found."}`, w.Body.String())
}

func TestUpdate_ReturnsMessage(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/documents/d1/tags/department",
		strings.NewReader(`{"value":"legal"}`))
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeWrite", "", caller).Return("default", nil)

	updater := new(mockUpdater)
	updater.On("UpdateTag", ctx, "default", "d1", "joe",
		mock.MatchedBy(func(tag *models.Tag) bool {
			return tag.Key == "department" && tag.Value == "legal"
		})).Return("Updated tag 'department' to 'legal'", nil)

	Update(ctx, slog.Default(), w, req, "d1", "department", auth, updater)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.JSONEq(t, `{"message":"Updated tag 'department' to 'legal'"}`, w.Body.String())
}

func TestDelete_Success(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/documents/d1/tags/department", nil)
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeWrite", "", caller).Return("default", nil)

	deleter := new(mockDeleter)
	deleter.On("DeleteTag", ctx, "default", "d1", "department").Return(nil)

	Delete(ctx, slog.Default(), w, req, "d1", "department", auth, deleter)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.JSONEq(t, `{"message":"Removed 'department' from document 'd1'."}`, w.Body.String())
}

func TestSearch_ByKeyAndValue(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search",
		strings.NewReader(`{"query":{"tag":{"key":"department","eq":"finance"}}}`))
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeRead", "", caller).Return("default", nil)

	searcher := new(mockSearcher)
	searcher.On("Search", ctx, "default", "department", "finance", 0).
		Return([]string{"d1", "d2"}, nil)

	Search(ctx, slog.Default(), w, req, auth, searcher)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		Documents []map[string]string `json:"documents"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.Len(t, parsed.Documents, 2)
	assert.Equal(t, "d1", parsed.Documents[0]["documentId"])
}

func TestSearch_MissingKey(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search",
		strings.NewReader(`{"query":{"tag":{}}}`))
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeRead", "", caller).Return("default", nil)

	searcher := new(mockSearcher)
	searcher.On("Search", ctx, "default", "", "", 0).
		Return(([]string)(nil), models.ValidationErrors{{Key: "tag/key", Error: "attribute is required"}})

	Search(ctx, slog.Default(), w, req, auth, searcher)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	assert.JSONEq(t, `{"errors":[{"key":"tag/key","error":"attribute is required"}]}`, w.Body.String())
}
