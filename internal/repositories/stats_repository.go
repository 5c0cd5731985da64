package repositories

import (
	"context"
	"fmt"

	"craftpin/internal/database"
	"craftpin/internal/models"

	"go.uber.org/zap"
)

// statsRepository computes user activity snapshots for badge evaluation.
//
// The five counts are read in independent queries without a shared
// transaction: under concurrent writes the snapshot is an approximation
// of "now", which is acceptable because awarding is eventually correct:
// a count that lands just below a threshold will cross it on the user's
// next qualifying action and be re-evaluated then.
type statsRepository struct {
	*BaseRepository
}

// NewStatsRepository creates a new instance of StatsRepository
func NewStatsRepository(db *database.Manager, logger *zap.Logger) StatsRepository {
	return &statsRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// GetUserStats builds the user's current activity snapshot. Any failing
// sub-query fails the whole call: partial or defaulted stats must never
// be mistaken for real ones, or a user could be denied (or granted)
// badges based on garbage. A nonexistent user yields all-zero stats
// because every sub-query legitimately finds nothing.
func (r *statsRepository) GetUserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	stats := &models.UserStats{
		CategoryPins: make(map[string]int),
	}

	if err := r.loadPinCounts(ctx, userID, stats); err != nil {
		return nil, fmt.Errorf("pin counts for user %d: %w", userID, err)
	}

	if err := r.loadFollowerCount(ctx, userID, stats); err != nil {
		return nil, fmt.Errorf("follower count for user %d: %w", userID, err)
	}

	if err := r.loadCommentCount(ctx, userID, stats); err != nil {
		return nil, fmt.Errorf("comment count for user %d: %w", userID, err)
	}

	if err := r.loadSavedCount(ctx, userID, stats); err != nil {
		return nil, fmt.Errorf("saved count for user %d: %w", userID, err)
	}

	if err := r.loadLikesReceived(ctx, userID, stats); err != nil {
		return nil, fmt.Errorf("likes received for user %d: %w", userID, err)
	}

	return stats, nil
}

// loadPinCounts fills the total pin count and the per-category buckets.
// Pins without a category tag count toward the total but appear in no
// bucket.
func (r *statsRepository) loadPinCounts(ctx context.Context, userID int64, stats *models.UserStats) error {
	query := `
		SELECT category, COUNT(*)
		FROM pins
		WHERE user_id = $1
		GROUP BY category`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			category *string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return err
		}

		stats.PinCount += count
		if category != nil && *category != "" {
			stats.CategoryPins[*category] = count
		}
	}

	return rows.Err()
}

func (r *statsRepository) loadFollowerCount(ctx context.Context, userID int64, stats *models.UserStats) error {
	query := `SELECT COUNT(*) FROM follows WHERE following_id = $1`
	return r.QueryRowContext(ctx, query, userID).Scan(&stats.FollowerCount)
}

// loadCommentCount counts comments the user authored on pins owned by
// someone else. Self-comments are excluded so commenting on your own
// pins cannot farm the comment milestone.
func (r *statsRepository) loadCommentCount(ctx context.Context, userID int64, stats *models.UserStats) error {
	query := `
		SELECT COUNT(*)
		FROM comments c
		JOIN pins p ON p.id = c.pin_id
		WHERE c.user_id = $1 AND p.user_id <> $1`
	return r.QueryRowContext(ctx, query, userID).Scan(&stats.CommentCount)
}

// loadSavedCount counts saved-pin rows across every board the user owns:
// how many pins the user has filed into their own collections. Saves of
// the user's content by other people are a different metric entirely.
func (r *statsRepository) loadSavedCount(ctx context.Context, userID int64, stats *models.UserStats) error {
	query := `
		SELECT COUNT(*)
		FROM saved_pins sp
		JOIN boards b ON b.id = sp.board_id
		WHERE b.user_id = $1`
	return r.QueryRowContext(ctx, query, userID).Scan(&stats.SavedCount)
}

func (r *statsRepository) loadLikesReceived(ctx context.Context, userID int64, stats *models.UserStats) error {
	query := `
		SELECT COUNT(*)
		FROM likes l
		JOIN pins p ON p.id = l.pin_id
		WHERE p.user_id = $1`
	return r.QueryRowContext(ctx, query, userID).Scan(&stats.LikesReceived)
}
