package response

import (
	"encoding/json"
	"net/http"

	"craftpin/internal/middleware"
	"craftpin/internal/services"

	"go.uber.org/zap"
)

// APIResponse is the JSON envelope for every API reply
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      any          `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
}

// ErrorDetail carries error information in API responses
type ErrorDetail struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// JSON writes a success envelope with the given status and payload
func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	write(w, r, status, &APIResponse{
		Success:   true,
		Data:      data,
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

// Created writes a 201 success envelope
func Created(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, r, http.StatusCreated, data)
}

// NoContent writes an empty 204 reply
func NoContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Error maps a service error onto the envelope, hiding internal detail.
// Unknown error types come out as 500 with a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	svcErr := services.GetServiceError(err)

	detail := &ErrorDetail{
		Type:    svcErr.Type,
		Message: svcErr.Message,
		Code:    svcErr.Code,
		Details: svcErr.Details,
	}
	if svcErr.StatusCode >= http.StatusInternalServerError {
		middleware.GetRequestLogger(r.Context()).Error("Request failed",
			zap.String("error_type", svcErr.Type),
			zap.Error(err),
		)
		detail.Message = "internal server error"
		detail.Details = nil
	}

	write(w, r, svcErr.StatusCode, &APIResponse{
		Success:   false,
		Error:     detail,
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

func write(w http.ResponseWriter, r *http.Request, status int, body *APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		middleware.GetRequestLogger(r.Context()).Error("Failed to encode response", zap.Error(err))
	}
}
