package v1

import (
	"net/http"

	"craftpin/internal/response"
	"craftpin/internal/services"
)

// UserHandler serves user profile and follow endpoints
type UserHandler struct {
	users  services.UserService
	pins   services.PinService
	boards services.BoardService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users services.UserService, pins services.PinService, boards services.BoardService) *UserHandler {
	return &UserHandler{users: users, pins: pins, boards: boards}
}

// Get handles GET /api/v1/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, user)
}

// ListPins handles GET /api/v1/users/{id}/pins
func (h *UserHandler) ListPins(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := h.pins.ListPinsByUser(r.Context(), id, pagination(r))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// ListBoards handles GET /api/v1/users/{id}/boards
func (h *UserHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	boards, err := h.boards.ListBoardsByUser(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, boards)
}

// Follow handles POST /api/v1/users/{id}/follow
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	targetID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.users.FollowUser(r.Context(), userID, targetID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// Unfollow handles DELETE /api/v1/users/{id}/follow
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	targetID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.users.UnfollowUser(r.Context(), userID, targetID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.NoContent(w, r)
}
