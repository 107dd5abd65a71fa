package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "careteam/internal/errors"
	"careteam/internal/logger"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeError maps the error taxonomy to HTTP statuses: validation errors to
// 400, scheduling conflicts to 409, unreachable collaborators to 503,
// explicit HTTP errors to their own code, anything else to 500.
func writeError(w http.ResponseWriter, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Fields: verr.Fields})
		return
	}

	var conflict *apperrors.SchedulingConflict
	if errors.As(err, &conflict) {
		writeErrorMessage(w, http.StatusConflict, conflict.Error())
		return
	}

	var unavailable *apperrors.CollaboratorUnavailable
	if errors.As(err, &unavailable) {
		logger.S().Errorf("Collaborator unavailable: %v", err)
		writeErrorMessage(w, http.StatusServiceUnavailable, "service temporarily unavailable")
		return
	}

	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		writeErrorMessage(w, httpErr.Code, httpErr.Message)
		return
	}

	logger.S().Errorf("Unhandled error: %v", err)
	writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
}
