package request

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"docstore/internal/models"
)

// Caller returns the identity the middleware stored in the request
// context.
func Caller(r *http.Request) (*models.Caller, bool) {
	caller, ok := r.Context().Value(models.CallerContextKey).(*models.Caller)
	return caller, ok
}

// DecodeBody reads the request body into dst, mapping an empty body and
// malformed JSON onto their canonical errors.
func DecodeBody(r *http.Request, dst any) error {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return models.ErrBodyRequired
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return models.ErrBodyRequired
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return models.ErrInvalidJSONBody
	}

	return nil
}
