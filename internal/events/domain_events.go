package events

import "time"

// Event types published by the mutation services. Each one names the user
// whose activity statistics may have changed and therefore whose badges
// should be re-checked.
const (
	EventPinCreated     = "pin.created"
	EventPinLiked       = "pin.liked"
	EventPinSaved       = "pin.saved"
	EventCommentCreated = "comment.created"
	EventUserFollowed   = "user.followed"

	// EventBadgeCheckRequested is a direct re-check request, published by
	// TriggerBadgeCheck rather than by a mutation.
	EventBadgeCheckRequested = "badge.check_requested"
)

// BaseEvent provides common event fields
type BaseEvent struct {
	Type      string    `json:"type"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// GetEventType returns the event type
func (e BaseEvent) GetEventType() string { return e.Type }

// GetUserID returns the user whose stats changed
func (e BaseEvent) GetUserID() int64 { return e.UserID }

// GetTimestamp returns the event timestamp
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// PinCreated fires after a pin is stored; UserID is the creator.
type PinCreated struct {
	BaseEvent
	PinID    int64   `json:"pin_id"`
	Category *string `json:"category,omitempty"`
}

// PinLiked fires after a like is stored; UserID is the pin OWNER, since
// the owner's likes-received count is what changed.
type PinLiked struct {
	BaseEvent
	PinID   int64 `json:"pin_id"`
	LikerID int64 `json:"liker_id"`
}

// PinSaved fires after a pin is filed into a board; UserID is the saver.
type PinSaved struct {
	BaseEvent
	PinID   int64 `json:"pin_id"`
	BoardID int64 `json:"board_id"`
}

// CommentCreated fires after a comment is stored; UserID is the commenter.
type CommentCreated struct {
	BaseEvent
	PinID     int64 `json:"pin_id"`
	CommentID int64 `json:"comment_id"`
}

// UserFollowed fires after a follow edge is stored; UserID is the user
// being followed, whose follower count changed.
type UserFollowed struct {
	BaseEvent
	FollowerID int64 `json:"follower_id"`
}

// NewPinCreated builds a PinCreated event
func NewPinCreated(creatorID, pinID int64, category *string) *PinCreated {
	return &PinCreated{
		BaseEvent: BaseEvent{Type: EventPinCreated, UserID: creatorID, Timestamp: time.Now()},
		PinID:     pinID,
		Category:  category,
	}
}

// NewPinLiked builds a PinLiked event for the pin's owner
func NewPinLiked(ownerID, pinID, likerID int64) *PinLiked {
	return &PinLiked{
		BaseEvent: BaseEvent{Type: EventPinLiked, UserID: ownerID, Timestamp: time.Now()},
		PinID:     pinID,
		LikerID:   likerID,
	}
}

// NewPinSaved builds a PinSaved event
func NewPinSaved(saverID, pinID, boardID int64) *PinSaved {
	return &PinSaved{
		BaseEvent: BaseEvent{Type: EventPinSaved, UserID: saverID, Timestamp: time.Now()},
		PinID:     pinID,
		BoardID:   boardID,
	}
}

// NewCommentCreated builds a CommentCreated event
func NewCommentCreated(commenterID, pinID, commentID int64) *CommentCreated {
	return &CommentCreated{
		BaseEvent: BaseEvent{Type: EventCommentCreated, UserID: commenterID, Timestamp: time.Now()},
		PinID:     pinID,
		CommentID: commentID,
	}
}

// BadgeCheckRequested asks for a badge re-check of UserID without a
// specific triggering mutation.
type BadgeCheckRequested struct {
	BaseEvent
}

// NewBadgeCheckRequested builds a BadgeCheckRequested event
func NewBadgeCheckRequested(userID int64) *BadgeCheckRequested {
	return &BadgeCheckRequested{
		BaseEvent: BaseEvent{Type: EventBadgeCheckRequested, UserID: userID, Timestamp: time.Now()},
	}
}

// NewUserFollowed builds a UserFollowed event for the followed user
func NewUserFollowed(followedID, followerID int64) *UserFollowed {
	return &UserFollowed{
		BaseEvent:  BaseEvent{Type: EventUserFollowed, UserID: followedID, Timestamp: time.Now()},
		FollowerID: followerID,
	}
}
