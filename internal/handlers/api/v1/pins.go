package v1

import (
	"net/http"

	"craftpin/internal/response"
	"craftpin/internal/services"
)

// PinHandler serves pin CRUD and like endpoints
type PinHandler struct {
	pins services.PinService
}

// NewPinHandler creates a new pin handler
func NewPinHandler(pins services.PinService) *PinHandler {
	return &PinHandler{pins: pins}
}

// Create handles POST /api/v1/pins
func (h *PinHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req services.CreatePinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	req.UserID = userID

	pin, err := h.pins.CreatePin(r.Context(), &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.Created(w, r, pin)
}

// Get handles GET /api/v1/pins/{id}
func (h *PinHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	pin, err := h.pins.GetPinByID(r.Context(), id, viewerID(r))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, pin)
}

// List handles GET /api/v1/pins with optional ?category= filter
func (h *PinHandler) List(w http.ResponseWriter, r *http.Request) {
	var category *string
	if c := r.URL.Query().Get("category"); c != "" {
		category = &c
	}

	result, err := h.pins.ListPins(r.Context(), category, pagination(r))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// Delete handles DELETE /api/v1/pins/{id}
func (h *PinHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.pins.DeletePin(r.Context(), id, userID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// Like handles POST /api/v1/pins/{id}/like
func (h *PinHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.pins.LikePin(r.Context(), id, userID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// Unlike handles DELETE /api/v1/pins/{id}/like
func (h *PinHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.pins.UnlikePin(r.Context(), id, userID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.NoContent(w, r)
}
