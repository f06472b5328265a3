// Package handlers provides HTTP response utilities for JSON APIs.
// These stateless functions standardize response formatting across handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/folio/pkg/apperr"
)

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields []apperr.FieldError `json:"fields,omitempty"`
}

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes a JSON error response.
// Server errors are reported with a generic message so internals never reach the caller.
// Validation errors include their field-level detail.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	body := ErrorResponse{Error: err.Error(), Fields: apperr.FieldsOf(err)}

	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
		body = ErrorResponse{Error: http.StatusText(status)}
	} else {
		logger.Warn("request rejected", "error", err, "status", status)
	}

	RespondJSON(w, status, body)
}

// RespondAppError writes err using the status implied by its kind.
func RespondAppError(w http.ResponseWriter, logger *slog.Logger, err error) {
	RespondError(w, logger, apperr.HTTPStatus(err), err)
}
