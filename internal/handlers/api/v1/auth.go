package v1

import (
	"net/http"

	"craftpin/internal/response"
	"craftpin/internal/services"
)

// AuthHandler serves registration and login
type AuthHandler struct {
	auth services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.Created(w, r, result)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}
