package v1

import (
	"net/http"

	"craftpin/internal/response"
	"craftpin/internal/services"
)

// BadgeHandler serves the badge catalog and per-user earned state
type BadgeHandler struct {
	badges services.BadgeService
}

// NewBadgeHandler creates a new badge handler
func NewBadgeHandler(badges services.BadgeService) *BadgeHandler {
	return &BadgeHandler{badges: badges}
}

// List handles GET /api/v1/badges
func (h *BadgeHandler) List(w http.ResponseWriter, r *http.Request) {
	badges, err := h.badges.ListBadges(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, badges)
}

// ListForUser handles GET /api/v1/users/{id}/badges. The reply is the
// whole catalog annotated with the user's earned state, so clients can
// render locked and unlocked badges from one call.
func (h *BadgeHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	badges, err := h.badges.GetUserBadges(r.Context(), userID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, badges)
}
