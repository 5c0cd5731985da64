package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"craftpin/internal/database"
	"craftpin/internal/models"

	"go.uber.org/zap"
)

// boardRepository implements BoardRepository
type boardRepository struct {
	*BaseRepository
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *database.Manager, logger *zap.Logger) BoardRepository {
	return &boardRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create creates a new board
func (r *boardRepository) Create(ctx context.Context, board *models.Board) error {
	query := `
		INSERT INTO boards (user_id, name, description, is_secret)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.QueryRowContext(
		ctx, query,
		board.UserID, board.Name, board.Description, board.IsSecret,
	).Scan(&board.ID, &board.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}

	return nil
}

// GetByID retrieves a board with its pin count
func (r *boardRepository) GetByID(ctx context.Context, id int64) (*models.Board, error) {
	query := `
		SELECT
			b.id, b.user_id, b.name, b.description, b.is_secret,
			b.created_at, b.updated_at,
			COALESCE(sp.cnt, 0) AS pin_count
		FROM boards b
		LEFT JOIN (SELECT board_id, COUNT(*) AS cnt FROM saved_pins GROUP BY board_id) sp ON sp.board_id = b.id
		WHERE b.id = $1`

	board := &models.Board{}
	err := r.QueryRowContext(ctx, query, id).Scan(
		&board.ID, &board.UserID, &board.Name, &board.Description,
		&board.IsSecret, &board.CreatedAt, &board.UpdatedAt, &board.PinCount,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get board %d: %w", id, err)
	}

	return board, nil
}

// ListByUser returns a user's boards
func (r *boardRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Board, error) {
	query := `
		SELECT
			b.id, b.user_id, b.name, b.description, b.is_secret,
			b.created_at, b.updated_at,
			COALESCE(sp.cnt, 0) AS pin_count
		FROM boards b
		LEFT JOIN (SELECT board_id, COUNT(*) AS cnt FROM saved_pins GROUP BY board_id) sp ON sp.board_id = b.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards for user %d: %w", userID, err)
	}
	defer rows.Close()

	var boards []*models.Board
	for rows.Next() {
		board := &models.Board{}
		err := rows.Scan(
			&board.ID, &board.UserID, &board.Name, &board.Description,
			&board.IsSecret, &board.CreatedAt, &board.UpdatedAt, &board.PinCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, board)
	}

	return boards, rows.Err()
}

// Delete removes a board owned by the given user
func (r *boardRepository) Delete(ctx context.Context, boardID, userID int64) error {
	result, err := r.ExecContext(ctx, `DELETE FROM boards WHERE id = $1 AND user_id = $2`, boardID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete board %d: %w", boardID, err)
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

// SavePin files a pin into a board. Idempotent via ON CONFLICT; the bool
// result reports whether a new save was recorded.
func (r *boardRepository) SavePin(ctx context.Context, boardID, pinID int64) (bool, error) {
	query := `
		INSERT INTO saved_pins (board_id, pin_id)
		VALUES ($1, $2)
		ON CONFLICT (board_id, pin_id) DO NOTHING`

	result, err := r.ExecContext(ctx, query, boardID, pinID)
	if err != nil {
		return false, fmt.Errorf("failed to save pin %d to board %d: %w", pinID, boardID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// UnsavePin removes a pin from a board
func (r *boardRepository) UnsavePin(ctx context.Context, boardID, pinID int64) error {
	_, err := r.ExecContext(ctx, `DELETE FROM saved_pins WHERE board_id = $1 AND pin_id = $2`, boardID, pinID)
	if err != nil {
		return fmt.Errorf("failed to unsave pin %d from board %d: %w", pinID, boardID, err)
	}
	return nil
}
