package schedsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/huddlehq/huddle/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest   = "invalid_request"
	ErrorCodeValidationFailed = "validation_failed"
	ErrorCodeNotFound         = "not_found"
	ErrorCodeConflict         = "conflict"
	ErrorCodeServerError      = "server_error"
)

// ============================================================================
// APIError - Standard scheduler error type
// ============================================================================

// APIError represents a standard scheduler error response. It implements the
// error interface and is used both by the server (to write HTTP responses)
// and by the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "not_found", "conflict")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the request body is malformed or a
	// required parameter is missing or invalid.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrNotFound is returned when the requested meeting, participant or
	// notification does not exist.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrServerError is returned when the scheduler encountered an unexpected
	// condition that prevented it from fulfilling the request.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	// ErrMethodNotAllowed is returned when the HTTP method is not allowed.
	ErrMethodNotAllowed = &APIError{
		StatusCode:  http.StatusMethodNotAllowed,
		Code:        ErrorCodeInvalidRequest,
		Description: "method not allowed",
	}
)

// NewAPIError creates a new APIError with the given status code, error code
// and description. This is used for error messages that carry request-specific
// detail, such as which field failed validation.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Conflict Error Response
// ============================================================================

// ConflictError is returned when the proposed time slot collides with a
// participant's existing schedule. It is returned with HTTP 409 Conflict and
// carries the full per-participant collision map so callers can show the user
// exactly what is in the way.
type ConflictError struct {
	// Conflicts maps participant email to the overlapping meetings
	Conflicts map[string][]ConflictingMeeting `json:"conflicts"`
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflict for %d participant(s)", len(e.Conflicts))
}

// WriteError writes the conflict as a 409 with the standard error envelope
// plus the collision map.
func (e *ConflictError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusConflict)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":             ErrorCodeConflict,
		"error_description": "the proposed time conflicts with existing meetings",
		"conflicts":         e.Conflicts,
	})
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse attempts to parse an HTTP error response into a typed
// error. It checks for schedule conflicts (409) and standard API errors.
// Returns nil if the response indicates success (2xx status code).
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Check for a schedule conflict carrying a collision map (409 Conflict)
	if resp.StatusCode == http.StatusConflict {
		var conflictResp struct {
			Error     string                          `json:"error"`
			Conflicts map[string][]ConflictingMeeting `json:"conflicts"`
		}
		if err := json.Unmarshal(body, &conflictResp); err == nil {
			if conflictResp.Error == ErrorCodeConflict && len(conflictResp.Conflicts) > 0 {
				return &ConflictError{Conflicts: conflictResp.Conflicts}
			}
		}
	}

	// Try parsing as a standard API error
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fall back to a generic error with the raw body
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("unexpected response (status %d): %s", resp.StatusCode, string(body)),
	}
}
