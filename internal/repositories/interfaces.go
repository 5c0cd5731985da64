package repositories

import (
	"context"
	"errors"

	"craftpin/internal/models"
)

// ErrBadgeAlreadyAwarded is returned by AwardBadge when the storage-level
// uniqueness constraint on (user_id, badge_id) rejects the insert. Another
// evaluation already recorded the award; callers treat this as a no-op.
var ErrBadgeAlreadyAwarded = errors.New("badge already awarded")

// BadgeRepository exposes the badge catalog and the earned-badge records
type BadgeRepository interface {
	// ListBadges returns every catalog badge in stable order.
	ListBadges(ctx context.Context) ([]*models.Badge, error)
	// GetEarnedBadgeIDs returns the set of badge ids the user has earned.
	GetEarnedBadgeIDs(ctx context.Context, userID int64) (map[int64]struct{}, error)
	// AwardBadge inserts an earned-badge record. Returns
	// ErrBadgeAlreadyAwarded when the uniqueness constraint fires.
	AwardBadge(ctx context.Context, userID, badgeID int64) (*models.UserBadge, error)
	// GetUserBadgesWithStatus returns every catalog badge annotated with
	// the user's earned state.
	GetUserBadgesWithStatus(ctx context.Context, userID int64) ([]*models.BadgeWithStatus, error)
}

// StatsRepository computes a user's activity snapshot from the store
type StatsRepository interface {
	GetUserStats(ctx context.Context, userID int64) (*models.UserStats, error)
}

// PinRepository manages pins and their like edges
type PinRepository interface {
	Create(ctx context.Context, pin *models.Pin) error
	GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Pin, error)
	ListByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Pin], error)
	List(ctx context.Context, category *string, params models.PaginationParams) (*models.PaginatedResponse[*models.Pin], error)
	Delete(ctx context.Context, pinID, userID int64) error

	// AddLike records a like edge; returns false when it already existed.
	AddLike(ctx context.Context, pinID, userID int64) (bool, error)
	RemoveLike(ctx context.Context, pinID, userID int64) error
}

// BoardRepository manages boards and saved pins
type BoardRepository interface {
	Create(ctx context.Context, board *models.Board) error
	GetByID(ctx context.Context, id int64) (*models.Board, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Board, error)
	Delete(ctx context.Context, boardID, userID int64) error

	// SavePin files a pin into a board; returns false when already saved.
	SavePin(ctx context.Context, boardID, pinID int64) (bool, error)
	UnsavePin(ctx context.Context, boardID, pinID int64) error
}

// CommentRepository manages comments on pins
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPin(ctx context.Context, pinID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error)
	Delete(ctx context.Context, commentID, userID int64) error
}

// FollowRepository manages follow edges between users
type FollowRepository interface {
	// Follow records a follow edge; returns false when it already existed.
	Follow(ctx context.Context, followerID, followingID int64) (bool, error)
	Unfollow(ctx context.Context, followerID, followingID int64) error
	IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error)
	CountFollowers(ctx context.Context, userID int64) (int, error)
}

// UserRepository manages user accounts
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
