package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Requirement
	}{
		{
			name: "total pins",
			raw:  `{"pins": 10}`,
			want: Requirement{Kind: RequirementPins, Threshold: 10},
		},
		{
			name: "category scoped pins",
			raw:  `{"pins": 5, "category": "sewing"}`,
			want: Requirement{Kind: RequirementCategoryPins, Threshold: 5, Category: "sewing"},
		},
		{
			name: "empty category falls back to total pins",
			raw:  `{"pins": 5, "category": ""}`,
			want: Requirement{Kind: RequirementPins, Threshold: 5},
		},
		{
			name: "followers",
			raw:  `{"followers": 10}`,
			want: Requirement{Kind: RequirementFollowers, Threshold: 10},
		},
		{
			name: "comments",
			raw:  `{"comments": 25}`,
			want: Requirement{Kind: RequirementComments, Threshold: 25},
		},
		{
			name: "saved",
			raw:  `{"saved": 20}`,
			want: Requirement{Kind: RequirementSaved, Threshold: 20},
		},
		{
			name: "likes received",
			raw:  `{"likes_received": 50}`,
			want: Requirement{Kind: RequirementLikesReceived, Threshold: 50},
		},
		{
			name: "unknown keys yield inert requirement",
			raw:  `{"streak_days": 7}`,
			want: Requirement{},
		},
		{
			name: "empty document",
			raw:  `{}`,
			want: Requirement{},
		},
		{
			name: "malformed json",
			raw:  `{"pins":`,
			want: Requirement{},
		},
		{
			name: "non-numeric threshold ignored",
			raw:  `{"pins": "lots"}`,
			want: Requirement{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRequirement([]byte(tt.raw))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequirementSatisfiedBy(t *testing.T) {
	stats := &UserStats{
		PinCount:      5,
		CategoryPins:  map[string]int{"sewing": 5},
		FollowerCount: 9,
		CommentCount:  25,
		SavedCount:    19,
		LikesReceived: 50,
	}

	tests := []struct {
		name string
		req  Requirement
		want bool
	}{
		{
			name: "pins exactly at threshold",
			req:  Requirement{Kind: RequirementPins, Threshold: 5},
			want: true,
		},
		{
			name: "pins one below threshold",
			req:  Requirement{Kind: RequirementPins, Threshold: 6},
			want: false,
		},
		{
			name: "category pins counted per tag",
			req:  Requirement{Kind: RequirementCategoryPins, Threshold: 5, Category: "sewing"},
			want: true,
		},
		{
			name: "missing category bucket counts as zero",
			req:  Requirement{Kind: RequirementCategoryPins, Threshold: 1, Category: "knitting"},
			want: false,
		},
		{
			name: "followers below threshold",
			req:  Requirement{Kind: RequirementFollowers, Threshold: 10},
			want: false,
		},
		{
			name: "comments at threshold",
			req:  Requirement{Kind: RequirementComments, Threshold: 25},
			want: true,
		},
		{
			name: "saved below threshold",
			req:  Requirement{Kind: RequirementSaved, Threshold: 20},
			want: false,
		},
		{
			name: "likes received above threshold",
			req:  Requirement{Kind: RequirementLikesReceived, Threshold: 40},
			want: true,
		},
		{
			name: "zero value never satisfied",
			req:  Requirement{},
			want: false,
		},
		{
			name: "zero threshold never satisfied",
			req:  Requirement{Kind: RequirementPins, Threshold: 0},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.SatisfiedBy(stats))
		})
	}
}

func TestRequirementSatisfiedByNilStats(t *testing.T) {
	req := Requirement{Kind: RequirementPins, Threshold: 1}
	assert.False(t, req.SatisfiedBy(nil))
}

func TestRequirementSatisfiedByNilCategoryMap(t *testing.T) {
	// A user with no pins has no category buckets at all.
	req := Requirement{Kind: RequirementCategoryPins, Threshold: 1, Category: "sewing"}
	assert.False(t, req.SatisfiedBy(&UserStats{}))
}

func TestRequirementIsValid(t *testing.T) {
	assert.True(t, Requirement{Kind: RequirementPins, Threshold: 1}.IsValid())
	assert.False(t, Requirement{Kind: RequirementPins}.IsValid())
	assert.False(t, Requirement{Kind: "streak", Threshold: 3}.IsValid())
	assert.False(t, Requirement{}.IsValid())
}

func TestPaginationParamsNormalize(t *testing.T) {
	p := PaginationParams{}
	p.Normalize()
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)
	assert.Equal(t, "created_at", p.Sort)
	assert.Equal(t, "desc", p.Order)

	p = PaginationParams{Limit: 500, Offset: -3, Sort: "title", Order: "asc"}
	p.Normalize()
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 0, p.Offset)
	assert.Equal(t, "title", p.Sort)
	assert.Equal(t, "asc", p.Order)
}
