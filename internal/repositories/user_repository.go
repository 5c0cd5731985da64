package repositories

import (
	"context"
	"fmt"

	"craftpin/internal/database"
	"craftpin/internal/models"

	"go.uber.org/zap"
)

// userRepository implements UserRepository
type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const userColumns = `id, username, email, password_hash, display_name, bio, avatar_url, created_at, updated_at`

// Create creates a new user account
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.QueryRowContext(
		ctx, query,
		user.Username, user.Email, user.PasswordHash, user.DisplayName,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("username or email already taken: %w", err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.GetLogger().Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return nil
}

// GetByID retrieves a user by id
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username = $1", username)
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *userRepository) getBy(ctx context.Context, where string, arg any) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s`, userColumns, where)

	user := &models.User{}
	err := r.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.DisplayName, &user.Bio, &user.AvatarURL,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
