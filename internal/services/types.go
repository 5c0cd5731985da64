package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateRequest runs struct-tag validation and converts failures into a
// single ValidationError naming the offending fields.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if ok := isValidationErrors(err, &validationErrs); !ok {
		return NewValidationError("invalid request", err)
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}

	return NewValidationError("invalid fields: "+strings.Join(fields, ", "), err)
}

func isValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}

// ===============================
// REQUEST / RESPONSE TYPES
// ===============================

// RegisterRequest creates a new account
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest authenticates an account
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries a signed token and the authenticated user id
type AuthResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
}

// CreatePinRequest creates a new pin
type CreatePinRequest struct {
	UserID      int64   `json:"-"`
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL    string  `json:"image_url" validate:"required,url"`
	Category    *string `json:"category,omitempty" validate:"omitempty,min=1,max=50"`
	LinkURL     *string `json:"link_url,omitempty" validate:"omitempty,url"`
}

// CreateBoardRequest creates a new board
type CreateBoardRequest struct {
	UserID      int64   `json:"-"`
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IsSecret    bool    `json:"is_secret"`
}

// SavePinRequest files a pin into a board
type SavePinRequest struct {
	UserID  int64 `json:"-"`
	BoardID int64 `json:"board_id" validate:"required,gt=0"`
	PinID   int64 `json:"pin_id" validate:"required,gt=0"`
}

// CreateCommentRequest creates a comment on a pin
type CreateCommentRequest struct {
	UserID  int64  `json:"-"`
	PinID   int64  `json:"pin_id" validate:"required,gt=0"`
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// UploadImageRequest uploads a pin image
type UploadImageRequest struct {
	UserID   int64
	Filename string
	Data     []byte
}

// UploadImageResult reports the stored image location
type UploadImageResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}
