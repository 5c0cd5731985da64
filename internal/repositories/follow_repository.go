package repositories

import (
	"context"
	"fmt"

	"craftpin/internal/database"

	"go.uber.org/zap"
)

// followRepository implements FollowRepository
type followRepository struct {
	*BaseRepository
}

// NewFollowRepository creates a new instance of FollowRepository
func NewFollowRepository(db *database.Manager, logger *zap.Logger) FollowRepository {
	return &followRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Follow records a follow edge. Idempotent via ON CONFLICT; the bool
// result reports whether a new edge was written.
func (r *followRepository) Follow(ctx context.Context, followerID, followingID int64) (bool, error) {
	if followerID == followingID {
		return false, fmt.Errorf("user %d cannot follow themselves", followerID)
	}

	query := `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, following_id) DO NOTHING`

	result, err := r.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("failed to follow user %d: %w", followingID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Unfollow removes a follow edge
func (r *followRepository) Unfollow(ctx context.Context, followerID, followingID int64) error {
	_, err := r.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID,
	)
	if err != nil {
		return fmt.Errorf("failed to unfollow user %d: %w", followingID, err)
	}
	return nil
}

// IsFollowing reports whether follower follows following
func (r *followRepository) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	var exists bool
	err := r.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`,
		followerID, followingID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check follow edge: %w", err)
	}
	return exists, nil
}

// CountFollowers returns the number of users following the given user
func (r *followRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE following_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers for user %d: %w", userID, err)
	}
	return count, nil
}
