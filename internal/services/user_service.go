package services

import (
	"context"

	"craftpin/internal/events"
	"craftpin/internal/models"
	"craftpin/internal/repositories"

	"go.uber.org/zap"
)

type userService struct {
	users   repositories.UserRepository
	follows repositories.FollowRepository
	bus     events.Bus
	logger  *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository, follows repositories.FollowRepository, bus events.Bus, logger *zap.Logger) UserService {
	return &userService{
		users:   users,
		follows: follows,
		bus:     bus,
		logger:  logger,
	}
}

// GetUserByID returns a user profile
func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to get user").withCause(err)
	}
	if user == nil {
		return nil, NewNotFoundError("user not found")
	}
	return user, nil
}

// GetUserByUsername returns a user profile by username
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, NewInternalError("failed to get user").withCause(err)
	}
	if user == nil {
		return nil, NewNotFoundError("user not found")
	}
	return user, nil
}

// FollowUser records a follow edge and schedules a badge check for the
// FOLLOWED user, whose follower count changed. Following twice is a no-op
// with no second trigger.
func (s *userService) FollowUser(ctx context.Context, followerID, followingID int64) error {
	if followerID == followingID {
		return NewValidationError("cannot follow yourself", nil)
	}

	target, err := s.users.GetByID(ctx, followingID)
	if err != nil {
		return NewInternalError("failed to get user").withCause(err)
	}
	if target == nil {
		return NewNotFoundError("user not found")
	}

	created, err := s.follows.Follow(ctx, followerID, followingID)
	if err != nil {
		return NewInternalError("failed to follow user").withCause(err)
	}

	if created {
		s.publish(events.NewUserFollowed(followingID, followerID))
	}

	return nil
}

// UnfollowUser removes a follow edge. Earned badges persist even when the
// follower count drops back below a threshold, so no check is scheduled.
func (s *userService) UnfollowUser(ctx context.Context, followerID, followingID int64) error {
	if err := s.follows.Unfollow(ctx, followerID, followingID); err != nil {
		return NewInternalError("failed to unfollow user").withCause(err)
	}
	return nil
}

func (s *userService) publish(event events.Event) {
	if err := s.bus.PublishAsync(event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("event_type", event.GetEventType()),
			zap.Error(err),
		)
	}
}
