package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"craftpin/internal/config"
	"craftpin/internal/models"
	"craftpin/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	users  repositories.UserRepository
	config config.AuthConfig
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, cfg config.AuthConfig, logger *zap.Logger) AuthService {
	return &authService{
		users:  users,
		config: cfg,
		logger: logger,
	}
}

// Register creates an account and returns a signed token
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		return nil, NewInternalError("failed to hash password").withCause(err)
	}

	user := &models.User{
		Username:     strings.ToLower(req.Username),
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if strings.Contains(err.Error(), "already taken") {
			return nil, NewConflictError("username or email already taken", "USER_EXISTS")
		}
		return nil, NewInternalError("failed to create user").withCause(err)
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return &AuthResponse{Token: token, UserID: user.ID}, nil
}

// Login authenticates by email and password and returns a signed token
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, NewInternalError("failed to get user").withCause(err)
	}
	if user == nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, UserID: user.ID}, nil
}

func (s *authService) signToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"iat": now.Unix(),
		"exp": now.Add(s.config.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", NewInternalError("failed to sign token").withCause(err)
	}
	return signed, nil
}
