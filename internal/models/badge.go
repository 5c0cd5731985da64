package models

import (
	"encoding/json"
	"time"
)

// BadgeCategory classifies a badge for display grouping.
// Not evaluated by the engine.
type BadgeCategory string

const (
	BadgeCategoryMilestone BadgeCategory = "milestone"
	BadgeCategoryCategory  BadgeCategory = "category"
	BadgeCategoryCommunity BadgeCategory = "community"
)

// Badge represents an achievement badge that users earn by reaching
// activity milestones. Catalog entries are immutable and seeded by migration.
type Badge struct {
	ID          int64         `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	Icon        string        `json:"icon" db:"icon"`
	Category    BadgeCategory `json:"category" db:"category"`
	Requirement Requirement   `json:"requirement" db:"requirement"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// UserBadge records that a user earned a badge. Append-only: a
// (user_id, badge_id) pair is written at most once and never removed,
// enforced by a uniqueness constraint at the storage layer.
type UserBadge struct {
	ID       int64     `json:"id" db:"id"`
	UserID   int64     `json:"user_id" db:"user_id"`
	BadgeID  int64     `json:"badge_id" db:"badge_id"`
	EarnedAt time.Time `json:"earned_at" db:"earned_at"`
}

// BadgeWithStatus pairs a catalog badge with a user's earned state.
type BadgeWithStatus struct {
	Badge    *Badge     `json:"badge"`
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// UserStats is a derived snapshot of a user's activity, recomputed on
// each evaluation and never persisted. The counts are read independently,
// so under concurrent mutation the snapshot is an approximation of "now",
// not an atomic cross-table view.
type UserStats struct {
	// PinCount is the total number of pins the user owns.
	PinCount int `json:"pin_count"`
	// CategoryPins maps a content category tag to the number of the
	// user's pins tagged with it. Untagged pins appear in no bucket.
	CategoryPins map[string]int `json:"category_pins"`
	// FollowerCount is the number of distinct followers.
	FollowerCount int `json:"follower_count"`
	// CommentCount counts comments the user authored on pins owned by
	// someone else. Self-comments do not count.
	CommentCount int `json:"comment_count"`
	// SavedCount is the number of saved-pin rows across boards the user owns.
	SavedCount int `json:"saved_count"`
	// LikesReceived is the number of likes across pins the user owns.
	LikesReceived int `json:"likes_received"`
}

// ===============================
// BADGE REQUIREMENTS
// ===============================

// RequirementKind discriminates the metric a badge requirement checks.
type RequirementKind string

const (
	// RequirementPins checks the user's total pin count.
	RequirementPins RequirementKind = "pins"
	// RequirementCategoryPins checks the pin count within one category tag.
	RequirementCategoryPins RequirementKind = "category_pins"
	// RequirementFollowers checks the user's follower count.
	RequirementFollowers RequirementKind = "followers"
	// RequirementComments checks comments authored on other users' pins.
	RequirementComments RequirementKind = "comments"
	// RequirementSaved checks saved pins across the user's own boards.
	RequirementSaved RequirementKind = "saved"
	// RequirementLikesReceived checks likes accumulated on the user's pins.
	RequirementLikesReceived RequirementKind = "likes_received"
)

// Requirement is a badge's awarding predicate: one metric, one threshold,
// and (for category-scoped pin counts) a category tag. The zero value is
// inert and never satisfied, so unrecognized requirement shapes stored in
// the catalog award nothing instead of failing evaluation.
type Requirement struct {
	Kind      RequirementKind `json:"kind"`
	Threshold int             `json:"threshold"`
	Category  string          `json:"category,omitempty"`
}

// SatisfiedBy reports whether the requirement holds for the given stats.
func (r Requirement) SatisfiedBy(stats *UserStats) bool {
	if stats == nil || r.Threshold <= 0 {
		return false
	}

	switch r.Kind {
	case RequirementPins:
		return stats.PinCount >= r.Threshold
	case RequirementCategoryPins:
		// Missing category bucket counts as zero.
		return stats.CategoryPins[r.Category] >= r.Threshold
	case RequirementFollowers:
		return stats.FollowerCount >= r.Threshold
	case RequirementComments:
		return stats.CommentCount >= r.Threshold
	case RequirementSaved:
		return stats.SavedCount >= r.Threshold
	case RequirementLikesReceived:
		return stats.LikesReceived >= r.Threshold
	default:
		return false
	}
}

// IsValid reports whether the requirement specifies a recognized metric.
func (r Requirement) IsValid() bool {
	switch r.Kind {
	case RequirementPins, RequirementCategoryPins, RequirementFollowers,
		RequirementComments, RequirementSaved, RequirementLikesReceived:
		return r.Threshold > 0
	default:
		return false
	}
}

// ParseRequirement converts the catalog's stored requirement document (a
// JSON key bag like {"pins": 3, "category": "sewing"}) into the typed form.
// The first recognized metric key wins; a document with no recognized key
// yields the inert zero Requirement.
func ParseRequirement(raw []byte) Requirement {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Requirement{}
	}

	intField := func(key string) (int, bool) {
		msg, ok := doc[key]
		if !ok {
			return 0, false
		}
		var n int
		if err := json.Unmarshal(msg, &n); err != nil {
			return 0, false
		}
		return n, true
	}

	if threshold, ok := intField("pins"); ok {
		var category string
		if msg, hasCategory := doc["category"]; hasCategory {
			if err := json.Unmarshal(msg, &category); err == nil && category != "" {
				return Requirement{Kind: RequirementCategoryPins, Threshold: threshold, Category: category}
			}
		}
		return Requirement{Kind: RequirementPins, Threshold: threshold}
	}

	if threshold, ok := intField("followers"); ok {
		return Requirement{Kind: RequirementFollowers, Threshold: threshold}
	}

	if threshold, ok := intField("comments"); ok {
		return Requirement{Kind: RequirementComments, Threshold: threshold}
	}

	if threshold, ok := intField("saved"); ok {
		return Requirement{Kind: RequirementSaved, Threshold: threshold}
	}

	if threshold, ok := intField("likes_received"); ok {
		return Requirement{Kind: RequirementLikesReceived, Threshold: threshold}
	}

	return Requirement{}
}
