package services

import (
	"context"

	"craftpin/internal/events"
	"craftpin/internal/models"
	"craftpin/internal/repositories"

	"go.uber.org/zap"
)

type boardService struct {
	boards repositories.BoardRepository
	pins   repositories.PinRepository
	bus    events.Bus
	logger *zap.Logger
}

// NewBoardService creates a new board service
func NewBoardService(boards repositories.BoardRepository, pins repositories.PinRepository, bus events.Bus, logger *zap.Logger) BoardService {
	return &boardService{
		boards: boards,
		pins:   pins,
		bus:    bus,
		logger: logger,
	}
}

// CreateBoard creates a board for the given user
func (s *boardService) CreateBoard(ctx context.Context, req *CreateBoardRequest) (*models.Board, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	board := &models.Board{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		IsSecret:    req.IsSecret,
	}

	if err := s.boards.Create(ctx, board); err != nil {
		return nil, NewInternalError("failed to create board").withCause(err)
	}

	return board, nil
}

// GetBoardByID returns a board. Secret boards are only visible to their owner.
func (s *boardService) GetBoardByID(ctx context.Context, id int64, viewerID *int64) (*models.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to get board").withCause(err)
	}
	if board == nil {
		return nil, NewNotFoundError("board not found")
	}

	if board.IsSecret && (viewerID == nil || *viewerID != board.UserID) {
		return nil, NewNotFoundError("board not found")
	}

	return board, nil
}

// ListBoardsByUser returns a user's boards
func (s *boardService) ListBoardsByUser(ctx context.Context, userID int64) ([]*models.Board, error) {
	boards, err := s.boards.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to list boards").withCause(err)
	}
	return boards, nil
}

// DeleteBoard removes a board owned by the given user
func (s *boardService) DeleteBoard(ctx context.Context, boardID, userID int64) error {
	if err := s.boards.Delete(ctx, boardID, userID); err != nil {
		if repoNotFound(err) {
			return NewNotFoundError("board not found")
		}
		return NewInternalError("failed to delete board").withCause(err)
	}
	return nil
}

// SavePin files a pin into one of the user's boards and schedules a badge
// check for the saver. Saving the same pin to the same board twice is a
// no-op with no second trigger.
func (s *boardService) SavePin(ctx context.Context, req *SavePinRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	board, err := s.boards.GetByID(ctx, req.BoardID)
	if err != nil {
		return NewInternalError("failed to get board").withCause(err)
	}
	if board == nil {
		return NewNotFoundError("board not found")
	}
	if board.UserID != req.UserID {
		return NewForbiddenError("board belongs to another user")
	}

	pin, err := s.pins.GetByID(ctx, req.PinID, nil)
	if err != nil {
		return NewInternalError("failed to get pin").withCause(err)
	}
	if pin == nil {
		return NewNotFoundError("pin not found")
	}

	created, err := s.boards.SavePin(ctx, req.BoardID, req.PinID)
	if err != nil {
		return NewInternalError("failed to save pin").withCause(err)
	}

	if created {
		s.publish(events.NewPinSaved(req.UserID, req.PinID, req.BoardID))
	}

	return nil
}

// UnsavePin removes a pin from one of the user's boards
func (s *boardService) UnsavePin(ctx context.Context, userID, boardID, pinID int64) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return NewInternalError("failed to get board").withCause(err)
	}
	if board == nil {
		return NewNotFoundError("board not found")
	}
	if board.UserID != userID {
		return NewForbiddenError("board belongs to another user")
	}

	if err := s.boards.UnsavePin(ctx, boardID, pinID); err != nil {
		return NewInternalError("failed to unsave pin").withCause(err)
	}
	return nil
}

func (s *boardService) publish(event events.Event) {
	if err := s.bus.PublishAsync(event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("event_type", event.GetEventType()),
			zap.Error(err),
		)
	}
}
