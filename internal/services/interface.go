package services

import (
	"context"

	"craftpin/internal/models"
)

// BadgeService evaluates badge requirements and records earned badges.
type BadgeService interface {
	// EvaluateAndAward recomputes the user's activity statistics, checks
	// every not-yet-earned badge, persists the newly satisfied ones and
	// returns their ids. Safe under concurrent invocation for the same
	// user: the storage uniqueness constraint makes awarding idempotent.
	EvaluateAndAward(ctx context.Context, userID int64) ([]int64, error)

	// TriggerBadgeCheck schedules a background evaluation for the user.
	// Fire-and-forget: errors are logged by the engine, never returned
	// to the mutation path that triggered the check.
	TriggerBadgeCheck(userID int64)

	// GetUserBadges returns the whole catalog annotated with the user's
	// earned state.
	GetUserBadges(ctx context.Context, userID int64) ([]*models.BadgeWithStatus, error)

	// ListBadges returns the badge catalog.
	ListBadges(ctx context.Context) ([]*models.Badge, error)
}

// PinService defines pin business logic
type PinService interface {
	CreatePin(ctx context.Context, req *CreatePinRequest) (*models.Pin, error)
	GetPinByID(ctx context.Context, id int64, viewerID *int64) (*models.Pin, error)
	ListPins(ctx context.Context, category *string, params models.PaginationParams) (*models.PaginatedResponse[*models.Pin], error)
	ListPinsByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Pin], error)
	DeletePin(ctx context.Context, pinID, userID int64) error

	LikePin(ctx context.Context, pinID, userID int64) error
	UnlikePin(ctx context.Context, pinID, userID int64) error
}

// BoardService defines board and saved-pin business logic
type BoardService interface {
	CreateBoard(ctx context.Context, req *CreateBoardRequest) (*models.Board, error)
	GetBoardByID(ctx context.Context, id int64, viewerID *int64) (*models.Board, error)
	ListBoardsByUser(ctx context.Context, userID int64) ([]*models.Board, error)
	DeleteBoard(ctx context.Context, boardID, userID int64) error

	SavePin(ctx context.Context, req *SavePinRequest) error
	UnsavePin(ctx context.Context, userID, boardID, pinID int64) error
}

// CommentService defines comment business logic
type CommentService interface {
	CreateComment(ctx context.Context, req *CreateCommentRequest) (*models.Comment, error)
	ListCommentsByPin(ctx context.Context, pinID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error)
	DeleteComment(ctx context.Context, commentID, userID int64) error
}

// UserService defines user and follow business logic
type UserService interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	FollowUser(ctx context.Context, followerID, followingID int64) error
	UnfollowUser(ctx context.Context, followerID, followingID int64) error
}

// AuthService defines registration and login
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
}

// FileService uploads pin images to external media storage
type FileService interface {
	UploadImage(ctx context.Context, req *UploadImageRequest) (*UploadImageResult, error)
}
