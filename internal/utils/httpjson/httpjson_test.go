package httpjson

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"docstore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_SetsHeaders(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()

	Write(rec, http.StatusOK, map[string]string{"ok": "yes"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type,X-Amz-Date,Authorization,X-Api-Key",
		rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestWriteDomainError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation errors",
			err:        models.ValidationErrors{{Key: "siteId", Error: "parameter required - multiple siteIds found"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"errors":[{"key":"siteId","error":"parameter required - multiple siteIds found"}]}`,
		},
		{
			name:       "forbidden",
			err:        &models.ForbiddenError{Message: "fkq access denied (groups: finance)"},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"message":"fkq access denied (groups: finance)"}`,
		},
		{
			name:       "access denied sentinel",
			err:        models.ErrAccessDenied,
			wantStatus: http.StatusForbidden,
			wantBody:   `{"message":"Access Denied"}`,
		},
		{
			name:       "unauthorized",
			err:        models.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"user is unauthorized"}`,
		},
		{
			name:       "not found",
			err:        &models.NotFoundError{Message: "Document abc not found."},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"Document abc not found."}`,
		},
		{
			name:       "conflict",
			err:        &models.ConflictError{Message: "Max Number of Documents reached"},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Max Number of Documents reached"}`,
		},
		{
			name:       "body required",
			err:        models.ErrBodyRequired,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"request body is required"}`,
		},
		{
			name:       "unknown error",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()

			WriteDomainError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWriteDomainError_ValidationEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()

	WriteDomainError(rec, models.ValidationErrors{
		{Key: "name", Error: "attribute is required"},
		{Key: "type", Error: "attribute is required"},
	})

	var body struct {
		Errors []models.ValidationError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "name", body.Errors[0].Key)
}
