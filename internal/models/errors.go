package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoRows           = errors.New("no rows")
	ErrInternal         = errors.New("internal server error")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrAccessDenied     = errors.New("Access Denied")
	ErrUnauthorized     = errors.New("user is unauthorized")
	ErrBodyRequired     = errors.New("request body is required")
	ErrInvalidJSONBody  = errors.New("invalid JSON body")
	ErrDocumentNotFound = errors.New("document not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrWebhookNotFound  = errors.New("webhook not found")
	ErrWebhookDisabled  = errors.New("webhook is disabled")
	ErrPresetNotFound   = errors.New("preset not found")
	ErrAPIKeyNotFound   = errors.New("api key not found")
	ErrIndexNotFound    = errors.New("invalid indexType")
	ErrFolderNotEmpty   = errors.New("Folder not empty")
	ErrMaxDocuments     = errors.New("Max Number of Documents reached")
)

// ValidationError is a single field-level request failure, serialized as
// {"key": ..., "error": ...} in the errors list of a 400 response.
type ValidationError struct {
	Key   string `json:"key,omitempty"`
	Error string `json:"error"`
}

// ValidationErrors aggregates every invalid field of a request so the
// caller sees them all at once instead of one per round trip.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		if e.Key != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.Key, e.Error))
		} else {
			msgs = append(msgs, e.Error)
		}
	}
	return strings.Join(msgs, "; ")
}

// ForbiddenError is a 403 with a caller-specific message, e.g. a write
// attempt against a site where the caller only holds read access.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// NotFoundError carries a resource-specific 404 message.
type NotFoundError struct {
	Message string
	Err     error
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ConflictError is a business-rule violation surfaced as a 400, e.g.
// "Folder not empty" or a reached document limit.
type ConflictError struct {
	Message string
	Err     error
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
