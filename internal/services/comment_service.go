package services

import (
	"context"

	"craftpin/internal/events"
	"craftpin/internal/models"
	"craftpin/internal/repositories"

	"go.uber.org/zap"
)

type commentService struct {
	comments repositories.CommentRepository
	pins     repositories.PinRepository
	bus      events.Bus
	logger   *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(comments repositories.CommentRepository, pins repositories.PinRepository, bus events.Bus, logger *zap.Logger) CommentService {
	return &commentService{
		comments: comments,
		pins:     pins,
		bus:      bus,
		logger:   logger,
	}
}

// CreateComment adds a comment to a pin and schedules a badge check for
// the commenter
func (s *commentService) CreateComment(ctx context.Context, req *CreateCommentRequest) (*models.Comment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	pin, err := s.pins.GetByID(ctx, req.PinID, nil)
	if err != nil {
		return nil, NewInternalError("failed to get pin").withCause(err)
	}
	if pin == nil {
		return nil, NewNotFoundError("pin not found")
	}

	comment := &models.Comment{
		UserID:  req.UserID,
		PinID:   req.PinID,
		Content: req.Content,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, NewInternalError("failed to create comment").withCause(err)
	}

	s.publish(events.NewCommentCreated(comment.UserID, comment.PinID, comment.ID))

	return comment, nil
}

// ListCommentsByPin returns a pin's comments, oldest first
func (s *commentService) ListCommentsByPin(ctx context.Context, pinID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Comment], error) {
	result, err := s.comments.ListByPin(ctx, pinID, params)
	if err != nil {
		return nil, NewInternalError("failed to list comments").withCause(err)
	}
	return result, nil
}

// DeleteComment removes a comment owned by the given user
func (s *commentService) DeleteComment(ctx context.Context, commentID, userID int64) error {
	if err := s.comments.Delete(ctx, commentID, userID); err != nil {
		if repoNotFound(err) {
			return NewNotFoundError("comment not found")
		}
		return NewInternalError("failed to delete comment").withCause(err)
	}
	return nil
}

func (s *commentService) publish(event events.Event) {
	if err := s.bus.PublishAsync(event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("event_type", event.GetEventType()),
			zap.Error(err),
		)
	}
}
