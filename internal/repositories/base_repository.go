package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"craftpin/internal/database"
	"craftpin/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// BaseRepository provides common database operations shared by all repositories
type BaseRepository struct {
	db     *database.Manager
	logger *zap.Logger
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *database.Manager, logger *zap.Logger) *BaseRepository {
	return &BaseRepository{
		db:     db,
		logger: logger,
	}
}

// ExecContext executes a statement
func (r *BaseRepository) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.db.ExecContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows
func (r *BaseRepository) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, query, args...)
}

// QueryRowContext executes a query that returns a single row
func (r *BaseRepository) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.db.QueryRowContext(ctx, query, args...)
}

// WithTransaction executes a function within a database transaction
func (r *BaseRepository) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Error("Failed to rollback transaction",
				zap.Error(rbErr),
				zap.NamedError("cause", err),
			)
		}
		return err
	}

	return tx.Commit()
}

// BuildOrderLimit appends validated ORDER BY / LIMIT / OFFSET clauses
func (r *BaseRepository) BuildOrderLimit(params models.PaginationParams, argIndex int) (string, []any) {
	params.Normalize()

	validSorts := map[string]bool{"created_at": true, "updated_at": true, "title": true}
	if !validSorts[params.Sort] {
		params.Sort = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(params.Order, "asc") {
		order = "ASC"
	}

	clause := fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", params.Sort, order, argIndex, argIndex+1)
	return clause, []any{params.Limit, params.Offset}
}

// GetTotalCount executes a count query
func (r *BaseRepository) GetTotalCount(ctx context.Context, countQuery string, args ...any) (int64, error) {
	var total int64
	err := r.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	return total, err
}

// IsNotFound checks if error is a "not found" error
func (r *BaseRepository) IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// GetLogger returns the logger instance
func (r *BaseRepository) GetLogger() *zap.Logger {
	return r.logger
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally on a specific constraint name.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
