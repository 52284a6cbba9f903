package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"worldmark/internal/model"
	"worldmark/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeParticipantNotFound  = "PARTICIPANT_NOT_FOUND"
	CodeParticipantExists    = "PARTICIPANT_EXISTS"
	CodeEmptyParticipantID   = "EMPTY_PARTICIPANT_ID"
	CodeMalformedColour      = "MALFORMED_COLOUR"
	CodeMalformedCountryCode = "MALFORMED_COUNTRY_CODE"
	CodeStoreNotFound        = "STORE_NOT_FOUND"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeUsernameExists       = "USERNAME_EXISTS"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrParticipantNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeParticipantNotFound, "Participant not found"}}
	case errors.Is(err, model.ErrParticipantExists):
		return &httpError{http.StatusConflict, APIError{CodeParticipantExists, "Participant already exists"}}
	case errors.Is(err, model.ErrEmptyParticipantID):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyParticipantID, "Participant id must not be empty"}}
	case errors.Is(err, model.ErrMalformedColour):
		return &httpError{http.StatusBadRequest, APIError{CodeMalformedColour, "Colour must be a six digit hex string"}}
	case errors.Is(err, model.ErrMalformedCountryCode):
		return &httpError{http.StatusBadRequest, APIError{CodeMalformedCountryCode, "Country codes must be two letters"}}
	case errors.Is(err, model.ErrStoreNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeStoreNotFound, "Store not found"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
