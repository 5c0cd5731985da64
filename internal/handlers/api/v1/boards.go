package v1

import (
	"net/http"

	"craftpin/internal/response"
	"craftpin/internal/services"
)

// BoardHandler serves board and saved-pin endpoints
type BoardHandler struct {
	boards services.BoardService
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boards services.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// Create handles POST /api/v1/boards
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req services.CreateBoardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	req.UserID = userID

	board, err := h.boards.CreateBoard(r.Context(), &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.Created(w, r, board)
}

// Get handles GET /api/v1/boards/{id}
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	board, err := h.boards.GetBoardByID(r.Context(), id, viewerID(r))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, board)
}

// Delete handles DELETE /api/v1/boards/{id}
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.boards.DeleteBoard(r.Context(), id, userID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// SavePin handles POST /api/v1/boards/{id}/pins
func (h *BoardHandler) SavePin(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	boardID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req services.SavePinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	req.UserID = userID
	req.BoardID = boardID

	if err := h.boards.SavePin(r.Context(), &req); err != nil {
		response.Error(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// UnsavePin handles DELETE /api/v1/boards/{id}/pins/{pinID}
func (h *BoardHandler) UnsavePin(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	boardID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	pinID, err := pathID(r, "pinID")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.boards.UnsavePin(r.Context(), userID, boardID, pinID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.NoContent(w, r)
}
