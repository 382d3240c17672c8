package match_test

import (
	"testing"

	"rank-tracker/core/match"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Name(t *testing.T) {
	tests := []struct {
		category match.Category
		want     string
	}{
		{match.Ranked1v1, "1v1"},
		{match.Ranked2v2, "2v2"},
		{match.SoloRanked3v3, "solo-3v3"},
		{match.Ranked3v3, "3v3"},
		{match.Unranked, "unranked"},
		{match.Category(27), "27"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.Name())
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name string
		want match.Category
	}{
		{"1v1", match.Ranked1v1},
		{"Ranked 1v1", match.Ranked1v1},
		{"2v2", match.Ranked2v2},
		{"Ranked 2v2", match.Ranked2v2},
		{"solo-3v3", match.SoloRanked3v3},
		{"Solo Ranked 3v3", match.SoloRanked3v3},
		{"3v3", match.Ranked3v3},
		{"Ranked 3v3", match.Ranked3v3},
		{"unranked", match.Unranked},
		{"12", match.SoloRanked3v3},
		{"99", match.Category(99)},
		{"duel", match.UnknownCategory},
		{"", match.UnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, match.ParseCategory(tt.name))
		})
	}
}

func TestPolicy(t *testing.T) {
	ranked := match.Policy{}
	all := match.Policy{IncludeUnranked: true}

	t.Run("RankedOnly", func(t *testing.T) {
		assert.True(t, ranked.Valid(match.Ranked1v1))
		assert.True(t, ranked.Valid(match.Ranked3v3))
		assert.False(t, ranked.Valid(match.Unranked))
		assert.False(t, ranked.Valid(match.Category(14)))
		assert.False(t, ranked.Valid(match.UnknownCategory))
		assert.Len(t, ranked.Categories(), 4)
	})

	t.Run("WithUnranked", func(t *testing.T) {
		assert.True(t, all.Valid(match.Unranked))
		assert.True(t, all.Valid(match.SoloRanked3v3))
		assert.False(t, all.Valid(match.Category(9)))
		assert.Equal(t, []match.Category{
			match.Unranked, match.Ranked1v1, match.Ranked2v2, match.SoloRanked3v3, match.Ranked3v3,
		}, all.Categories())
	})
}
