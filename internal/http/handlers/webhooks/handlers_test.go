package webhooks

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

type mockCreator struct{ mock.Mock }

func (m *mockCreator) Create(ctx context.Context, siteID string, userID string, name string, enabled models.WebhookEnabled, ttl string) (*models.Webhook, error) {
	args := m.Called(ctx, siteID, userID, name, enabled, ttl)
	return args.Get(0).(*models.Webhook), args.Error(1)
}

type mockProvider struct{ mock.Mock }

func (m *mockProvider) WebhookByID(ctx context.Context, siteID string, id string) (*models.Webhook, error) {
	args := m.Called(ctx, siteID, id)
	return args.Get(0).(*models.Webhook), args.Error(1)
}

func (m *mockProvider) List(ctx context.Context, siteID string, limit int, next string, previous string) (pagination.Page[*models.Webhook], error) {
	args := m.Called(ctx, siteID, limit, next, previous)
	return args.Get(0).(pagination.Page[*models.Webhook]), args.Error(1)
}

type mockReceiver struct{ mock.Mock }

func (m *mockReceiver) Receive(ctx context.Context, siteID string, id string, authenticated bool, contentType string, body []byte) (string, error) {
	args := m.Called(ctx, siteID, id, authenticated, contentType, body)
	return args.String(0), args.Error(1)
}

func withCaller(r *http.Request, caller *models.Caller) *http.Request {
	ctx := context.WithValue(r.Context(), models.CallerContextKey, caller)
	return r.WithContext(ctx)
}

func TestAdd_PublicURL(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks",
		strings.NewReader(`{"name":"paypal"}`))
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeWrite", "", caller).Return("default", nil)

	creator := new(mockCreator)
	creator.On("Create", ctx, "default", "joe", "paypal", models.WebhookEnabled(""), "").
		Return(&models.Webhook{ID: "w1", SiteID: "default", Name: "paypal", Enabled: models.WebhookEnabledPublic}, nil)

	Add(ctx, slog.Default(), w, req, auth, creator)

	resp := w.Result()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	assert.Equal(t, "/public/webhooks/w1", parsed["url"])
}

func TestGetByID_PrivateURL(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhooks/w1", nil)
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeRead", "", caller).Return("default", nil)

	provider := new(mockProvider)
	provider.On("WebhookByID", ctx, "default", "w1").
		Return(&models.Webhook{ID: "w1", SiteID: "default", Name: "partner", Enabled: models.WebhookEnabledPrivate}, nil)

	GetByID(ctx, slog.Default(), w, req, "w1", auth, provider)

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(w.Result().Body).Decode(&parsed))
	assert.Equal(t, "/private/webhooks/w1", parsed["url"])
}

func TestReceive_PublicDelivery(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/public/webhooks/w1",
		strings.NewReader(`{"event":"payment"}`))
	req.Header.Set("Content-Type", "application/json")
	ctx := req.Context()

	receiver := new(mockReceiver)
	receiver.On("Receive", ctx, "default", "w1", false, "application/json",
		[]byte(`{"event":"payment"}`)).Return("doc-9", nil)

	Receive(ctx, slog.Default(), w, req, "w1", false, receiver)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.JSONEq(t, `{"documentId":"doc-9"}`, w.Body.String())

	receiver.AssertExpectations(t)
}

func TestReceive_DisabledWebhook(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/public/webhooks/w1",
		strings.NewReader(`{}`))
	ctx := req.Context()

	receiver := new(mockReceiver)
	receiver.On("Receive", ctx, "default", "w1", false, "", []byte(`{}`)).
		Return("", models.ErrWebhookDisabled)

	Receive(ctx, slog.Default(), w, req, "w1", false, receiver)

	assert.Equal(t, http.StatusTooManyRequests, w.Result().StatusCode)
}

func TestReceive_PrivateRejectsUnauthenticated(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/public/webhooks/w2",
		strings.NewReader(`{}`))
	ctx := req.Context()

	receiver := new(mockReceiver)
	receiver.On("Receive", ctx, "default", "w2", false, "", []byte(`{}`)).
		Return("", models.ErrAccessDenied)

	Receive(ctx, slog.Default(), w, req, "w2", false, receiver)

	assert.Equal(t, http.StatusForbidden, w.Result().StatusCode)
	assert.JSONEq(t, `{"message":"Access Denied"}`, w.Body.String())
}

func TestGet_ListsWebhooks(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhooks?siteId=default", nil)
	caller := &models.Caller{Username: "joe", Groups: []string{"default"}}
	req = withCaller(req, caller)
	ctx := req.Context()

	auth := new(mockAuthorizer)
	auth.On("AuthorizeRead", "default", caller).Return("default", nil)

	provider := new(mockProvider)
	provider.On("List", ctx, "default", 0, "", "").Return(pagination.Page[*models.Webhook]{
		Items: []*models.Webhook{
			{ID: "w1", Enabled: models.WebhookEnabledPublic},
			{ID: "w2", Enabled: models.WebhookEnabledDisabled},
		},
	}, nil)

	Get(ctx, slog.Default(), w, req, auth, provider)

	var parsed struct {
		Webhooks []map[string]any `json:"webhooks"`
	}
	require.NoError(t, json.NewDecoder(w.Result().Body).Decode(&parsed))
	require.Len(t, parsed.Webhooks, 2)
	assert.Equal(t, "/public/webhooks/w1", parsed.Webhooks[0]["url"])
}
