package services

import (
	"fmt"

	"craftpin/internal/cache"
	"craftpin/internal/config"
	"craftpin/internal/events"
	"craftpin/internal/repositories"

	"go.uber.org/zap"
)

// Collection wires every service with its dependencies
type Collection struct {
	Auth     AuthService
	Users    UserService
	Pins     PinService
	Boards   BoardService
	Comments CommentService
	Badges   BadgeService
	Files    FileService

	Bus events.Bus
}

// NewCollection builds the service layer on top of the repository
// collection. The event bus is created here and returned as part of the
// collection; the caller owns its Start/Stop lifecycle.
func NewCollection(
	cfg *config.Config,
	repos *repositories.Collection,
	cacheClient cache.Cache,
	logger *zap.Logger,
) (*Collection, error) {
	bus := events.NewInMemoryBus(&events.BusConfig{
		QueueSize:      cfg.Badges.QueueSize,
		WorkerCount:    cfg.Badges.WorkerCount,
		HandlerTimeout: cfg.Badges.EvaluationTimeout,
	}, logger)

	badges := NewBadgeService(
		repos.Badges,
		repos.Stats,
		bus,
		cacheClient,
		&BadgeServiceConfig{
			EvaluationTimeout: cfg.Badges.EvaluationTimeout,
			CatalogTTL:        cfg.Badges.CatalogTTL,
		},
		logger,
	)
	RegisterTriggers(bus, badges)

	files, err := NewFileService(cfg.Media, logger)
	if err != nil {
		return nil, fmt.Errorf("create file service: %w", err)
	}

	return &Collection{
		Auth:     NewAuthService(repos.Users, cfg.Auth, logger),
		Users:    NewUserService(repos.Users, repos.Follows, bus, logger),
		Pins:     NewPinService(repos.Pins, bus, logger),
		Boards:   NewBoardService(repos.Boards, repos.Pins, bus, logger),
		Comments: NewCommentService(repos.Comments, repos.Pins, bus, logger),
		Badges:   badges,
		Files:    files,

		Bus: bus,
	}, nil
}
