package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTaskNotFound is returned when a task does not exist or is not
	// owned by the caller. The two cases are deliberately indistinguishable
	// so that task ids cannot be enumerated.
	ErrTaskNotFound = errors.New("task not found")
	// ErrEmailTaken is returned when registering with an email that is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmptyTitle is returned when a task title is empty or whitespace-only.
	ErrEmptyTitle = errors.New("title is required")
	// ErrInvalidStatus is returned when a status value is outside the enumeration.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrInvalidPriority is returned when a priority value is outside the enumeration.
	ErrInvalidPriority = errors.New("invalid priority value")
	// ErrPasswordTooShort is returned when a new password is below the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors map to a
// generic 500 so that store or infrastructure detail never reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrTaskNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrEmptyTitle:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TITLE_REQUIRED")
	case ErrInvalidStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case ErrInvalidPriority:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PRIORITY")
	case ErrPasswordTooShort:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_TOO_SHORT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
