package services

import (
	"context"
	"errors"
	"time"

	"craftpin/internal/events"
	"craftpin/internal/models"
	"craftpin/internal/repositories"

	"go.uber.org/zap"
)

const badgeCatalogCacheKey = "badges:catalog"

// CatalogCache is the subset of the cache interface the badge service
// uses for the (immutable, hot) badge catalog.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// BadgeServiceConfig tunes background evaluation
type BadgeServiceConfig struct {
	// EvaluationTimeout bounds one background evaluation run.
	EvaluationTimeout time.Duration
	// CatalogTTL is how long the catalog stays cached.
	CatalogTTL time.Duration
}

// DefaultBadgeServiceConfig returns default badge service configuration
func DefaultBadgeServiceConfig() *BadgeServiceConfig {
	return &BadgeServiceConfig{
		EvaluationTimeout: 10 * time.Second,
		CatalogTTL:        10 * time.Minute,
	}
}

type badgeService struct {
	badges repositories.BadgeRepository
	stats  repositories.StatsRepository
	bus    events.Bus
	cache  CatalogCache
	cfg    *BadgeServiceConfig
	logger *zap.Logger
}

// NewBadgeService creates the badge evaluation engine. The cache may be
// nil, in which case the catalog is read from the store on every pass.
func NewBadgeService(
	badges repositories.BadgeRepository,
	stats repositories.StatsRepository,
	bus events.Bus,
	cache CatalogCache,
	cfg *BadgeServiceConfig,
	logger *zap.Logger,
) BadgeService {
	if cfg == nil {
		cfg = DefaultBadgeServiceConfig()
	}

	return &badgeService{
		badges: badges,
		stats:  stats,
		bus:    bus,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterTriggers subscribes the engine to every mutation event that can
// change a user's statistics, plus direct check requests. Each event
// carries the user whose badges need re-checking, so one handler serves
// every trigger.
func RegisterTriggers(bus events.Bus, svc BadgeService) {
	handler := events.HandlerFunc{
		ID: "badge-evaluator",
		Func: func(ctx context.Context, event events.Event) error {
			_, err := svc.EvaluateAndAward(ctx, event.GetUserID())
			return err
		},
	}

	for _, eventType := range []string{
		events.EventPinCreated,
		events.EventPinLiked,
		events.EventPinSaved,
		events.EventCommentCreated,
		events.EventUserFollowed,
		events.EventBadgeCheckRequested,
	} {
		bus.Subscribe(eventType, handler)
	}
}

// EvaluateAndAward checks every not-yet-earned badge against the user's
// current statistics and persists the newly satisfied ones.
//
// The earned-set read is an optimization to skip finished work; it is NOT
// the correctness guarantee. Two concurrent evaluations can both see a
// badge as unearned and both attempt the insert. The uniqueness
// constraint on (user_id, badge_id) lets exactly one succeed, and the
// loser's conflict is absorbed as a no-op.
func (s *badgeService) EvaluateAndAward(ctx context.Context, userID int64) ([]int64, error) {
	allBadges, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if len(allBadges) == 0 {
		return nil, nil
	}

	earned, err := s.badges.GetEarnedBadgeIDs(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to load earned badges").withCause(err)
	}

	// A failed aggregation aborts the whole pass. Zeroed stats standing in
	// for real ones would be indistinguishable from an inactive user.
	stats, err := s.stats.GetUserStats(ctx, userID)
	if err != nil {
		return nil, NewAggregationError(userID, err)
	}

	var awarded []int64
	for _, badge := range allBadges {
		if _, done := earned[badge.ID]; done {
			continue
		}

		if !badge.Requirement.SatisfiedBy(stats) {
			continue
		}

		if _, err := s.badges.AwardBadge(ctx, userID, badge.ID); err != nil {
			if errors.Is(err, repositories.ErrBadgeAlreadyAwarded) {
				// A concurrent evaluation won the race. Not an error.
				continue
			}
			// Log and keep going: the remaining candidates still deserve a
			// shot, and this badge stays a candidate until an insert lands.
			s.logger.Error("Badge award failed",
				zap.Int64("user_id", userID),
				zap.Int64("badge_id", badge.ID),
				zap.Error(NewAwardError(userID, badge.ID, err)),
			)
			continue
		}

		awarded = append(awarded, badge.ID)
	}

	if len(awarded) > 0 {
		s.logger.Info("Badges awarded",
			zap.Int64("user_id", userID),
			zap.Int64s("badge_ids", awarded),
		)
	}

	return awarded, nil
}

// TriggerBadgeCheck schedules an evaluation without blocking the caller.
// With a bus wired it publishes a check request and lets the bus workers
// supply the timeout and panic boundary; without one it falls back to a
// goroutine with the same guarantees. The mutation path that called it
// has already responded to its user; a failed check degrades to "badge
// not yet shown" and self-heals on the next qualifying action.
func (s *badgeService) TriggerBadgeCheck(userID int64) {
	if s.bus != nil {
		if err := s.bus.PublishAsync(events.NewBadgeCheckRequested(userID)); err != nil {
			s.logger.Error("Badge check dispatch failed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.EvaluationTimeout)
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Badge check panicked",
					zap.Int64("user_id", userID),
					zap.Any("panic", r),
				)
			}
		}()

		if _, err := s.EvaluateAndAward(ctx, userID); err != nil {
			s.logger.Error("Badge check failed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	}()
}

// GetUserBadges returns the catalog annotated with the user's earned state
func (s *badgeService) GetUserBadges(ctx context.Context, userID int64) ([]*models.BadgeWithStatus, error) {
	if userID <= 0 {
		return nil, NewValidationError("invalid user id", nil)
	}

	statuses, err := s.badges.GetUserBadgesWithStatus(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to load user badges").withCause(err)
	}

	return statuses, nil
}

// ListBadges returns the badge catalog
func (s *badgeService) ListBadges(ctx context.Context) ([]*models.Badge, error) {
	return s.loadCatalog(ctx)
}

// loadCatalog reads the badge catalog through the cache. A cache failure
// is only logged: the store remains the source of truth.
func (s *badgeService) loadCatalog(ctx context.Context) ([]*models.Badge, error) {
	if s.cache != nil {
		var cached []*models.Badge
		hit, err := s.cache.Get(ctx, badgeCatalogCacheKey, &cached)
		if err != nil {
			s.logger.Warn("Badge catalog cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	badges, err := s.badges.ListBadges(ctx)
	if err != nil {
		return nil, NewInternalError("failed to load badge catalog").withCause(err)
	}

	if s.cache != nil && len(badges) > 0 {
		if err := s.cache.Set(ctx, badgeCatalogCacheKey, badges, s.cfg.CatalogTTL); err != nil {
			s.logger.Warn("Badge catalog cache write failed", zap.Error(err))
		}
	}

	return badges, nil
}
