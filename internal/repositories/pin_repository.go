package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"craftpin/internal/database"
	"craftpin/internal/models"

	"go.uber.org/zap"
)

// pinRepository implements PinRepository
type pinRepository struct {
	*BaseRepository
}

// NewPinRepository creates a new instance of PinRepository
func NewPinRepository(db *database.Manager, logger *zap.Logger) PinRepository {
	return &pinRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create creates a new pin
func (r *pinRepository) Create(ctx context.Context, pin *models.Pin) error {
	query := `
		INSERT INTO pins (user_id, title, description, image_url, category, link_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.QueryRowContext(
		ctx, query,
		pin.UserID, pin.Title, pin.Description, pin.ImageURL, pin.Category, pin.LinkURL,
	).Scan(&pin.ID, &pin.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create pin: %w", err)
	}

	r.GetLogger().Info("Pin created",
		zap.Int64("pin_id", pin.ID),
		zap.Int64("user_id", pin.UserID),
	)

	return nil
}

// GetByID retrieves a pin with author info and engagement metrics
func (r *pinRepository) GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Pin, error) {
	query := `
		SELECT
			p.id, p.user_id, p.title, p.description, p.image_url, p.category,
			p.link_url, p.created_at, p.updated_at,
			u.username, u.avatar_url,
			COALESCE(lc.cnt, 0) AS like_count,
			COALESCE(cc.cnt, 0) AS comment_count,
			COALESCE(sc.cnt, 0) AS save_count,
			CASE WHEN $2::bigint IS NOT NULL AND EXISTS (
				SELECT 1 FROM likes WHERE pin_id = p.id AND user_id = $2
			) THEN TRUE ELSE FALSE END AS liked_by_me
		FROM pins p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN (SELECT pin_id, COUNT(*) AS cnt FROM likes GROUP BY pin_id) lc ON lc.pin_id = p.id
		LEFT JOIN (SELECT pin_id, COUNT(*) AS cnt FROM comments GROUP BY pin_id) cc ON cc.pin_id = p.id
		LEFT JOIN (SELECT pin_id, COUNT(*) AS cnt FROM saved_pins GROUP BY pin_id) sc ON sc.pin_id = p.id
		WHERE p.id = $1`

	pin := &models.Pin{}
	err := r.QueryRowContext(ctx, query, id, viewerID).Scan(
		&pin.ID, &pin.UserID, &pin.Title, &pin.Description, &pin.ImageURL,
		&pin.Category, &pin.LinkURL, &pin.CreatedAt, &pin.UpdatedAt,
		&pin.Username, &pin.AvatarURL,
		&pin.LikeCount, &pin.CommentCount, &pin.SaveCount, &pin.LikedByMe,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pin %d: %w", id, err)
	}

	return pin, nil
}

// ListByUser returns a user's pins, newest first
func (r *pinRepository) ListByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Pin], error) {
	return r.list(ctx, "p.user_id = $1", []any{userID}, params)
}

// List returns pins, optionally filtered by category
func (r *pinRepository) List(ctx context.Context, category *string, params models.PaginationParams) (*models.PaginatedResponse[*models.Pin], error) {
	if category != nil {
		return r.list(ctx, "p.category = $1", []any{*category}, params)
	}
	return r.list(ctx, "", nil, params)
}

func (r *pinRepository) list(ctx context.Context, where string, args []any, params models.PaginationParams) (*models.PaginatedResponse[*models.Pin], error) {
	params.Normalize()

	baseQuery := `
		SELECT
			p.id, p.user_id, p.title, p.description, p.image_url, p.category,
			p.link_url, p.created_at, p.updated_at,
			u.username, u.avatar_url,
			COALESCE(lc.cnt, 0) AS like_count
		FROM pins p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN (SELECT pin_id, COUNT(*) AS cnt FROM likes GROUP BY pin_id) lc ON lc.pin_id = p.id`
	countQuery := `SELECT COUNT(*) FROM pins p`

	if where != "" {
		baseQuery += " WHERE " + where
		countQuery += " WHERE " + where
	}

	total, err := r.GetTotalCount(ctx, countQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count pins: %w", err)
	}

	orderClause, orderArgs := r.BuildOrderLimit(params, len(args)+1)
	// Qualify the sort column; the join makes bare created_at ambiguous.
	query := baseQuery + strings.Replace(orderClause, "ORDER BY ", "ORDER BY p.", 1)
	args = append(args, orderArgs...)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pins: %w", err)
	}
	defer rows.Close()

	var pins []*models.Pin
	for rows.Next() {
		pin := &models.Pin{}
		err := rows.Scan(
			&pin.ID, &pin.UserID, &pin.Title, &pin.Description, &pin.ImageURL,
			&pin.Category, &pin.LinkURL, &pin.CreatedAt, &pin.UpdatedAt,
			&pin.Username, &pin.AvatarURL, &pin.LikeCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pin: %w", err)
		}
		pins = append(pins, pin)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.PaginatedResponse[*models.Pin]{
		Data:       pins,
		Pagination: models.NewPaginationMeta(params, total),
	}, nil
}

// Delete removes a pin owned by the given user
func (r *pinRepository) Delete(ctx context.Context, pinID, userID int64) error {
	result, err := r.ExecContext(ctx, `DELETE FROM pins WHERE id = $1 AND user_id = $2`, pinID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete pin %d: %w", pinID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// AddLike records a like edge. ON CONFLICT keeps the operation idempotent;
// the bool result tells the caller whether a new edge was written.
func (r *pinRepository) AddLike(ctx context.Context, pinID, userID int64) (bool, error) {
	query := `
		INSERT INTO likes (pin_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (pin_id, user_id) DO NOTHING`

	result, err := r.ExecContext(ctx, query, pinID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to like pin %d: %w", pinID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// RemoveLike deletes a like edge
func (r *pinRepository) RemoveLike(ctx context.Context, pinID, userID int64) error {
	_, err := r.ExecContext(ctx, `DELETE FROM likes WHERE pin_id = $1 AND user_id = $2`, pinID, userID)
	if err != nil {
		return fmt.Errorf("failed to unlike pin %d: %w", pinID, err)
	}
	return nil
}
