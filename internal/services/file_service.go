package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"craftpin/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

const uploadTimeout = 2 * time.Minute

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

type fileService struct {
	cloudinary *cloudinary.Cloudinary
	config     config.MediaConfig
	logger     *zap.Logger
}

// NewFileService creates a Cloudinary-backed file service
func NewFileService(cfg config.MediaConfig, logger *zap.Logger) (FileService, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}

	return &fileService{
		cloudinary: cld,
		config:     cfg,
		logger:     logger,
	}, nil
}

// UploadImage stores a pin image and returns its public URL
func (s *fileService) UploadImage(ctx context.Context, req *UploadImageRequest) (*UploadImageResult, error) {
	if err := s.validateImage(req); err != nil {
		return nil, err
	}

	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	params := uploader.UploadParams{
		Folder:         fmt.Sprintf("%s/%d", s.config.UploadFolder, req.UserID),
		ResourceType:   "image",
		UseFilename:    boolPtr(false),
		UniqueFilename: boolPtr(true),
		Tags:           []string{"craftpin", "pin_image"},
	}

	result, err := s.cloudinary.Upload.Upload(uploadCtx, bytes.NewReader(req.Data), params)
	if err != nil {
		s.logger.Error("Failed to upload image",
			zap.Int64("user_id", req.UserID),
			zap.String("filename", req.Filename),
			zap.Error(err),
		)
		return nil, NewInternalError("failed to upload image").withCause(err)
	}

	return &UploadImageResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
	}, nil
}

func (s *fileService) validateImage(req *UploadImageRequest) error {
	if len(req.Data) == 0 {
		return NewValidationError("empty file", nil)
	}
	if int64(len(req.Data)) > s.config.MaxFileSize {
		return NewValidationError(fmt.Sprintf("file exceeds %d bytes", s.config.MaxFileSize), nil)
	}

	ext := strings.ToLower(filepath.Ext(req.Filename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return NewValidationError("unsupported image type: "+ext, nil)
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
