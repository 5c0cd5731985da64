package services

import (
	"context"

	"craftpin/internal/events"
	"craftpin/internal/models"
	"craftpin/internal/repositories"

	"go.uber.org/zap"
)

type pinService struct {
	pins   repositories.PinRepository
	bus    events.Bus
	logger *zap.Logger
}

// NewPinService creates a new pin service
func NewPinService(pins repositories.PinRepository, bus events.Bus, logger *zap.Logger) PinService {
	return &pinService{
		pins:   pins,
		bus:    bus,
		logger: logger,
	}
}

// CreatePin creates a pin and schedules a badge check for its creator
func (s *pinService) CreatePin(ctx context.Context, req *CreatePinRequest) (*models.Pin, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	pin := &models.Pin{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		LinkURL:     req.LinkURL,
	}

	if err := s.pins.Create(ctx, pin); err != nil {
		return nil, NewInternalError("failed to create pin").withCause(err)
	}

	s.publish(events.NewPinCreated(pin.UserID, pin.ID, pin.Category))

	return pin, nil
}

// GetPinByID returns one pin with engagement metrics
func (s *pinService) GetPinByID(ctx context.Context, id int64, viewerID *int64) (*models.Pin, error) {
	if id <= 0 {
		return nil, NewValidationError("invalid pin id", nil)
	}

	pin, err := s.pins.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, NewInternalError("failed to get pin").withCause(err)
	}
	if pin == nil {
		return nil, NewNotFoundError("pin not found")
	}

	return pin, nil
}

// ListPins returns pins, optionally filtered by category
func (s *pinService) ListPins(ctx context.Context, category *string, params models.PaginationParams) (*models.PaginatedResponse[*models.Pin], error) {
	result, err := s.pins.List(ctx, category, params)
	if err != nil {
		return nil, NewInternalError("failed to list pins").withCause(err)
	}
	return result, nil
}

// ListPinsByUser returns a user's pins
func (s *pinService) ListPinsByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Pin], error) {
	result, err := s.pins.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, NewInternalError("failed to list pins").withCause(err)
	}
	return result, nil
}

// DeletePin removes a pin owned by the given user
func (s *pinService) DeletePin(ctx context.Context, pinID, userID int64) error {
	if err := s.pins.Delete(ctx, pinID, userID); err != nil {
		if repoNotFound(err) {
			return NewNotFoundError("pin not found")
		}
		return NewInternalError("failed to delete pin").withCause(err)
	}
	return nil
}

// LikePin records a like and schedules a badge check for the pin OWNER,
// whose likes-received count changed. Liking twice is a no-op with no
// second trigger.
func (s *pinService) LikePin(ctx context.Context, pinID, userID int64) error {
	pin, err := s.pins.GetByID(ctx, pinID, nil)
	if err != nil {
		return NewInternalError("failed to get pin").withCause(err)
	}
	if pin == nil {
		return NewNotFoundError("pin not found")
	}

	created, err := s.pins.AddLike(ctx, pinID, userID)
	if err != nil {
		return NewInternalError("failed to like pin").withCause(err)
	}

	if created {
		s.publish(events.NewPinLiked(pin.UserID, pinID, userID))
	}

	return nil
}

// UnlikePin removes a like. Negative actions do not trigger badge
// re-evaluation: earned badges persist even when the stat drops back
// below its threshold.
func (s *pinService) UnlikePin(ctx context.Context, pinID, userID int64) error {
	if err := s.pins.RemoveLike(ctx, pinID, userID); err != nil {
		return NewInternalError("failed to unlike pin").withCause(err)
	}
	return nil
}

func (s *pinService) publish(event events.Event) {
	if err := s.bus.PublishAsync(event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("event_type", event.GetEventType()),
			zap.Error(err),
		)
	}
}
