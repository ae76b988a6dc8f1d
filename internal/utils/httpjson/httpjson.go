package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"docstore/internal/models"
)

// Every response carries the same CORS headers so browser clients can
// hit the API directly.
func setHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type,X-Amz-Date,Authorization,X-Api-Key")
	w.Header().Set("Content-Type", "application/json")
}

func Write(w http.ResponseWriter, status int, body any) {
	setHeaders(w)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func WriteJSONError(w http.ResponseWriter, status int, message string) {
	Write(w, status, map[string]string{"message": message})
}

// WriteDomainError maps service-layer errors onto the response
// envelope: field-level problems come back as {"errors": [...]},
// everything else as {"message": "..."}.
func WriteDomainError(w http.ResponseWriter, err error) {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		Write(w, http.StatusBadRequest, map[string]any{"errors": verrs})
		return
	}

	var forbidden *models.ForbiddenError
	if errors.As(err, &forbidden) {
		WriteJSONError(w, http.StatusForbidden, forbidden.Message)
		return
	}

	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		WriteJSONError(w, http.StatusNotFound, notFound.Message)
		return
	}

	var conflict *models.ConflictError
	if errors.As(err, &conflict) {
		WriteJSONError(w, http.StatusBadRequest, conflict.Message)
		return
	}

	switch {
	case errors.Is(err, models.ErrAccessDenied):
		WriteJSONError(w, http.StatusForbidden, models.ErrAccessDenied.Error())
	case errors.Is(err, models.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
	case errors.Is(err, models.ErrBodyRequired):
		WriteJSONError(w, http.StatusBadRequest, models.ErrBodyRequired.Error())
	case errors.Is(err, models.ErrInvalidJSONBody):
		WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidJSONBody.Error())
	case errors.Is(err, models.ErrWebhookDisabled):
		WriteJSONError(w, http.StatusTooManyRequests, models.ErrWebhookDisabled.Error())
	case errors.Is(err, models.ErrMethodNotAllowed):
		WriteJSONError(w, http.StatusMethodNotAllowed, models.ErrMethodNotAllowed.Error())
	default:
		WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
	}
}
