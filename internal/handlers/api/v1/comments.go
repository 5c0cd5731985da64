package v1

import (
	"net/http"

	"craftpin/internal/response"
	"craftpin/internal/services"
)

// CommentHandler serves comment endpoints
type CommentHandler struct {
	comments services.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Create handles POST /api/v1/pins/{id}/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	pinID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req services.CreateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	req.UserID = userID
	req.PinID = pinID

	comment, err := h.comments.CreateComment(r.Context(), &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.Created(w, r, comment)
}

// List handles GET /api/v1/pins/{id}/comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	pinID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	result, err := h.comments.ListCommentsByPin(r.Context(), pinID, pagination(r))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// Delete handles DELETE /api/v1/comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.comments.DeleteComment(r.Context(), id, userID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.NoContent(w, r)
}
