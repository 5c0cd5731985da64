package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"craftpin/internal/database"
	"craftpin/internal/models"

	"go.uber.org/zap"
)

// badgeRepository implements BadgeRepository over the badges and
// user_badges tables.
type badgeRepository struct {
	*BaseRepository
}

// NewBadgeRepository creates a new instance of BadgeRepository
func NewBadgeRepository(db *database.Manager, logger *zap.Logger) BadgeRepository {
	return &badgeRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// ListBadges returns the full badge catalog grouped by category. The
// catalog is small and immutable, so no filtering or pagination applies.
func (r *badgeRepository) ListBadges(ctx context.Context) ([]*models.Badge, error) {
	query := `
		SELECT id, name, description, icon, category, requirement, created_at
		FROM badges
		ORDER BY category, id`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	var badges []*models.Badge
	for rows.Next() {
		badge, err := scanBadge(rows)
		if err != nil {
			return nil, err
		}
		badges = append(badges, badge)
	}

	return badges, rows.Err()
}

// GetEarnedBadgeIDs returns the ids of badges the user already earned,
// as a single existence query.
func (r *badgeRepository) GetEarnedBadgeIDs(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	query := `SELECT badge_id FROM user_badges WHERE user_id = $1`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get earned badges for user %d: %w", userID, err)
	}
	defer rows.Close()

	earned := make(map[int64]struct{})
	for rows.Next() {
		var badgeID int64
		if err := rows.Scan(&badgeID); err != nil {
			return nil, fmt.Errorf("failed to scan earned badge id: %w", err)
		}
		earned[badgeID] = struct{}{}
	}

	return earned, rows.Err()
}

// AwardBadge records an earned badge. The uniqueness constraint on
// (user_id, badge_id) is the real idempotency guarantee: under concurrent
// evaluations exactly one insert succeeds and the rest get
// ErrBadgeAlreadyAwarded.
func (r *badgeRepository) AwardBadge(ctx context.Context, userID, badgeID int64) (*models.UserBadge, error) {
	query := `
		INSERT INTO user_badges (user_id, badge_id, earned_at)
		VALUES ($1, $2, NOW())
		RETURNING id, earned_at`

	userBadge := &models.UserBadge{
		UserID:  userID,
		BadgeID: badgeID,
	}

	err := r.QueryRowContext(ctx, query, userID, badgeID).Scan(&userBadge.ID, &userBadge.EarnedAt)
	if err != nil {
		if isUniqueViolation(err, "user_badges_user_id_badge_id_key") {
			return nil, ErrBadgeAlreadyAwarded
		}
		return nil, fmt.Errorf("failed to award badge %d to user %d: %w", badgeID, userID, err)
	}

	r.GetLogger().Info("Badge awarded",
		zap.Int64("user_id", userID),
		zap.Int64("badge_id", badgeID),
	)

	return userBadge, nil
}

// GetUserBadgesWithStatus returns every catalog badge annotated with the
// user's earned state and timestamp.
func (r *badgeRepository) GetUserBadgesWithStatus(ctx context.Context, userID int64) ([]*models.BadgeWithStatus, error) {
	query := `
		SELECT
			b.id, b.name, b.description, b.icon, b.category, b.requirement, b.created_at,
			ub.earned_at
		FROM badges b
		LEFT JOIN user_badges ub ON ub.badge_id = b.id AND ub.user_id = $1
		ORDER BY b.category, b.id`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get badges for user %d: %w", userID, err)
	}
	defer rows.Close()

	var result []*models.BadgeWithStatus
	for rows.Next() {
		var (
			badge          models.Badge
			rawRequirement []byte
			earnedAt       sql.NullTime
		)

		err := rows.Scan(
			&badge.ID, &badge.Name, &badge.Description, &badge.Icon,
			&badge.Category, &rawRequirement, &badge.CreatedAt,
			&earnedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan badge status: %w", err)
		}

		badge.Requirement = models.ParseRequirement(rawRequirement)

		status := &models.BadgeWithStatus{
			Badge:  &badge,
			Earned: earnedAt.Valid,
		}
		if earnedAt.Valid {
			t := earnedAt.Time
			status.EarnedAt = &t
		}

		result = append(result, status)
	}

	return result, rows.Err()
}

// scanBadge reads one badges row, decoding the stored requirement document
// into its typed form. Unknown requirement shapes decode to the inert zero
// value rather than failing the scan.
func scanBadge(rows *sql.Rows) (*models.Badge, error) {
	var (
		badge          models.Badge
		rawRequirement []byte
		createdAt      time.Time
	)

	err := rows.Scan(
		&badge.ID, &badge.Name, &badge.Description, &badge.Icon,
		&badge.Category, &rawRequirement, &createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan badge: %w", err)
	}

	badge.Requirement = models.ParseRequirement(rawRequirement)
	badge.CreatedAt = createdAt

	return &badge, nil
}
