package repositories

import (
	"craftpin/internal/database"

	"go.uber.org/zap"
)

// Collection holds all repositories with shared infrastructure
type Collection struct {
	Users    UserRepository
	Pins     PinRepository
	Boards   BoardRepository
	Comments CommentRepository
	Follows  FollowRepository
	Badges   BadgeRepository
	Stats    StatsRepository
}

// NewCollection wires every repository over one database manager
func NewCollection(db *database.Manager, logger *zap.Logger) *Collection {
	return &Collection{
		Users:    NewUserRepository(db, logger),
		Pins:     NewPinRepository(db, logger),
		Boards:   NewBoardRepository(db, logger),
		Comments: NewCommentRepository(db, logger),
		Follows:  NewFollowRepository(db, logger),
		Badges:   NewBadgeRepository(db, logger),
		Stats:    NewStatsRepository(db, logger),
	}
}
