package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrIssueNotFound is returned when an issue id does not exist.
	ErrIssueNotFound = errors.New("Issue not found")
	// ErrInvalidCategory is returned when the category is outside the fixed set.
	ErrInvalidCategory = errors.New("Invalid category")
	// ErrInvalidStatus is returned when the status is outside the fixed set.
	ErrInvalidStatus = errors.New("Invalid status")
)

// MissingFieldError reports a required creation field that is absent or blank
// after trimming. The message format is part of the API contract.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " is required"
}

// NewMissingField creates a MissingFieldError for the given field.
func NewMissingField(field string) *MissingFieldError {
	return &MissingFieldError{Field: field}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse to
// a generic 500 so store detail never leaks to the caller; handlers replace the
// generic message with their route-specific one.
func MapErrorToHTTP(err error) *HTTPError {
	var missing *MissingFieldError
	switch {
	case errors.As(err, &missing):
		return NewHTTPError(http.StatusBadRequest, missing.Error(), "MISSING_FIELD")
	case errors.Is(err, ErrInvalidCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CATEGORY")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrIssueNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ISSUE_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
