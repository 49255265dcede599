package helpers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"campusevents/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

var badRequestErrors = []error{
	domain.ErrHasDependents,
	domain.ErrInvalidRange,
	domain.ErrInvalidState,
	domain.ErrInvalidInput,
	domain.ErrEventInPast,
	domain.ErrCapacityExceeded,
	domain.ErrAlreadyCancelled,
	domain.ErrEventAlreadyStarted,
	domain.ErrOutsideCheckInWindow,
	domain.ErrEventNotEnded,
	domain.ErrNotAttended,
	domain.ErrInvalidRating,
	domain.ErrTooEarly,
}

// WriteServiceError maps a service error to a status and code. Unknown errors are logged and
// answered with a generic 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
		return
	case errors.Is(err, domain.ErrDuplicateName), errors.Is(err, domain.ErrAlreadyRegistered):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, err.Error())
		return
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
	}
	logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}
