package v1

import (
	"io"
	"net/http"

	"craftpin/internal/response"
	"craftpin/internal/services"
)

const maxUploadBytes = 10 << 20 // 10MB

// UploadHandler serves pin image uploads
type UploadHandler struct {
	files services.FileService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(files services.FileService) *UploadHandler {
	return &UploadHandler{files: files}
}

// UploadImage handles POST /api/v1/uploads (multipart form, field "image")
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, r, services.NewValidationError("invalid multipart form", err))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, r, services.NewValidationError("missing image file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, r, services.NewValidationError("failed to read image file", err))
		return
	}

	result, err := h.files.UploadImage(r.Context(), &services.UploadImageRequest{
		UserID:   userID,
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.Created(w, r, result)
}
