package services

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
)

// ServiceError represents a structured service error
type ServiceError struct {
	Type       string         `json:"type"`
	Message    string         `json:"message"`
	Code       string         `json:"code,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	StatusCode int            `json:"-"`
	Cause      error          `json:"-"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// GetStatusCode returns the HTTP status code for this error
func (e *ServiceError) GetStatusCode() int {
	if e.StatusCode > 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *ServiceError {
	return &ServiceError{
		Type:       "VALIDATION_ERROR",
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{
		Type:       "NOT_FOUND",
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{
		Type:       "UNAUTHORIZED",
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *ServiceError {
	return &ServiceError{
		Type:       "FORBIDDEN",
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewConflictError creates a conflict error
func NewConflictError(message, code string) *ServiceError {
	return &ServiceError{
		Type:       "CONFLICT",
		Message:    message,
		Code:       code,
		StatusCode: http.StatusConflict,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *ServiceError {
	return &ServiceError{
		Type:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// NewAggregationError creates an error for a failed activity-stats read.
// Badge evaluation aborts entirely on this: partial or zeroed stats must
// never silently stand in for a failed aggregation.
func NewAggregationError(userID int64, cause error) *ServiceError {
	return &ServiceError{
		Type:       "AGGREGATION_FAILED",
		Message:    "failed to aggregate user activity statistics",
		StatusCode: http.StatusInternalServerError,
		Details:    map[string]any{"user_id": userID},
		Cause:      cause,
	}
}

// NewAwardError creates an error for a non-conflict badge insert failure.
// Evaluation of the remaining candidate badges continues; the failed badge
// stays a candidate until an insert eventually succeeds.
func NewAwardError(userID, badgeID int64, cause error) *ServiceError {
	return &ServiceError{
		Type:       "AWARD_FAILED",
		Message:    "failed to record earned badge",
		StatusCode: http.StatusInternalServerError,
		Details:    map[string]any{"user_id": userID, "badge_id": badgeID},
		Cause:      cause,
	}
}

// GetServiceError extracts a ServiceError from an error, or wraps it
func GetServiceError(err error) *ServiceError {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr
	}
	return NewInternalError(err.Error())
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType string) bool {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Type == errorType
	}
	return false
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return IsErrorType(err, "NOT_FOUND")
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return IsErrorType(err, "VALIDATION_ERROR")
}

// IsAggregationError checks if an error is a failed stats aggregation
func IsAggregationError(err error) bool {
	return IsErrorType(err, "AGGREGATION_FAILED")
}

// withCause attaches an underlying error to a service error
func (e *ServiceError) withCause(cause error) *ServiceError {
	e.Cause = cause
	return e
}

// repoNotFound reports whether a repository error means no matching row
func repoNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
