package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"craftpin/internal/database"
	"craftpin/internal/models"

	"go.uber.org/zap"
)

// commentRepository implements CommentRepository
type commentRepository struct {
	*BaseRepository
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *database.Manager, logger *zap.Logger) CommentRepository {
	return &commentRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create creates a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (pin_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.QueryRowContext(
		ctx, query,
		comment.PinID, comment.UserID, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	r.GetLogger().Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("pin_id", comment.PinID),
		zap.Int64("user_id", comment.UserID),
	)

	return nil
}

// ListByPin returns a pin's comments with author info, oldest first
func (r *commentRepository) ListByPin(ctx context.Context, pinID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error) {
	params.Normalize()

	total, err := r.GetTotalCount(ctx, `SELECT COUNT(*) FROM comments WHERE pin_id = $1`, pinID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	query := `
		SELECT
			c.id, c.pin_id, c.user_id, c.content, c.created_at, c.updated_at,
			u.username, u.avatar_url
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.pin_id = $1
		ORDER BY c.created_at ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.QueryContext(ctx, query, pinID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for pin %d: %w", pinID, err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment := &models.Comment{}
		err := rows.Scan(
			&comment.ID, &comment.PinID, &comment.UserID, &comment.Content,
			&comment.CreatedAt, &comment.UpdatedAt,
			&comment.Username, &comment.AvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.PaginatedResponse[*models.Comment]{
		Data:       comments,
		Pagination: models.NewPaginationMeta(params, total),
	}, nil
}

// Delete removes a comment authored by the given user
func (r *commentRepository) Delete(ctx context.Context, commentID, userID int64) error {
	result, err := r.ExecContext(ctx, `DELETE FROM comments WHERE id = $1 AND user_id = $2`, commentID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", commentID, err)
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
