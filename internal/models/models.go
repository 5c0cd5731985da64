package models

import "time"

// ===============================
// CORE DOMAIN MODELS
// ===============================

// User represents a registered account
type User struct {
	ID           int64      `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	DisplayName  *string    `json:"display_name,omitempty" db:"display_name"`
	Bio          *string    `json:"bio,omitempty" db:"bio"`
	AvatarURL    *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at"`

	// Computed fields (populated by joins, not stored)
	FollowerCount  int `json:"follower_count,omitempty" db:"-"`
	FollowingCount int `json:"following_count,omitempty" db:"-"`
	PinCount       int `json:"pin_count,omitempty" db:"-"`
}

// Pin represents a shared piece of content
type Pin struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	ImageURL    string     `json:"image_url" db:"image_url"`
	// Category is the content tag ("sewing", "knitting", ...), nullable.
	// Distinct from Badge.Category, which classifies the badge itself.
	Category  *string    `json:"category,omitempty" db:"category"`
	LinkURL   *string    `json:"link_url,omitempty" db:"link_url"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`

	// Author information (JOIN to prevent N+1)
	Username  *string `json:"username,omitempty" db:"-"`
	AvatarURL *string `json:"author_avatar_url,omitempty" db:"-"`

	// Engagement metrics (computed)
	LikeCount    int  `json:"like_count" db:"-"`
	CommentCount int  `json:"comment_count" db:"-"`
	SaveCount    int  `json:"save_count" db:"-"`
	LikedByMe    bool `json:"liked_by_me,omitempty" db:"-"`
}

// Board represents a user-owned collection of saved pins
type Board struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	IsSecret    bool       `json:"is_secret" db:"is_secret"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`

	PinCount int `json:"pin_count" db:"-"`
}

// SavedPin associates a pin with a board
type SavedPin struct {
	ID        int64     `json:"id" db:"id"`
	BoardID   int64     `json:"board_id" db:"board_id"`
	PinID     int64     `json:"pin_id" db:"pin_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Comment represents a comment on a pin
type Comment struct {
	ID        int64      `json:"id" db:"id"`
	PinID     int64      `json:"pin_id" db:"pin_id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	Content   string     `json:"content" db:"content"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`

	Username  *string `json:"username,omitempty" db:"-"`
	AvatarURL *string `json:"avatar_url,omitempty" db:"-"`
}

// Like represents a like edge on a pin
type Like struct {
	ID        int64     `json:"id" db:"id"`
	PinID     int64     `json:"pin_id" db:"pin_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Follow represents a follow edge between users
type Follow struct {
	ID          int64     `json:"id" db:"id"`
	FollowerID  int64     `json:"follower_id" db:"follower_id"`
	FollowingID int64     `json:"following_id" db:"following_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ===============================
// PAGINATION
// ===============================

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Limit  int    `json:"limit" validate:"min=1,max=100"`
	Offset int    `json:"offset" validate:"min=0"`
	Sort   string `json:"sort,omitempty" validate:"omitempty,oneof=created_at updated_at title"`
	Order  string `json:"order,omitempty" validate:"omitempty,oneof=asc desc"`
}

// Normalize applies defaults and caps to pagination parameters
func (p *PaginationParams) Normalize() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Sort == "" {
		p.Sort = "created_at"
	}
	if p.Order == "" {
		p.Order = "desc"
	}
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}

// NewPaginationMeta builds pagination metadata from params and a total count
func NewPaginationMeta(params PaginationParams, total int64) PaginationMeta {
	currentPage := (params.Offset / params.Limit) + 1
	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	return PaginationMeta{
		CurrentPage:  currentPage,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: params.Limit,
		HasNext:      int64(params.Offset+params.Limit) < total,
		HasPrev:      params.Offset > 0,
	}
}
