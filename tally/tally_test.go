// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballotbox/models"
)

func board(counts ...int) []models.Candidate {
	out := make([]models.Candidate, len(counts))
	for i, n := range counts {
		out[i] = models.Candidate{
			CandidateID: i + 1,
			FullName:    string(rune('A' + i)),
			PartyName:   "Party",
			VoteCount:   n,
		}
	}
	return out
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, total int
		want        string
	}{
		{0, 0, "0.00"},
		{5, 0, "0.00"},
		{1, 3, "33.33"},
		{2, 3, "66.67"},
		{3, 3, "100.00"},
		{1, 8, "12.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.part, tt.total), "%d/%d", tt.part, tt.total)
	}
}

func TestRank(t *testing.T) {
	results := Rank(board(3, 1, 0), 3)

	assert.Equal(t, 4, results.TotalVotes)
	assert.Equal(t, 3, results.TotalBallots)
	assert.Equal(t, 3, results.TotalCandidates)

	require.Len(t, results.Leaderboard, 3)
	for i, e := range results.Leaderboard {
		assert.Equal(t, i+1, e.Rank)
	}
	assert.Equal(t, "75.00", results.Leaderboard[0].Percentage)
	assert.Equal(t, "25.00", results.Leaderboard[1].Percentage)
	assert.Equal(t, "0.00", results.Leaderboard[2].Percentage)

	require.NotNil(t, results.Leader)
	assert.Equal(t, results.Leaderboard[0], *results.Leader)
}

func TestRankEmpty(t *testing.T) {
	results := Rank(nil, 0)

	assert.Zero(t, results.TotalVotes)
	assert.Nil(t, results.Leader)
	assert.NotNil(t, results.Leaderboard)
	assert.Empty(t, results.Leaderboard)
}

func TestWinners(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		w, err := Winners(board(4, 2, 1))
		require.NoError(t, err)
		assert.False(t, w.IsTie)
		assert.Equal(t, 4, w.VoteCount)
		require.Len(t, w.Winners, 1)
		assert.Equal(t, 1, w.Winners[0].CandidateID)
		assert.Equal(t, "57.14", w.Winners[0].Percentage)
	})

	t.Run("tie", func(t *testing.T) {
		w, err := Winners(board(2, 2, 1))
		require.NoError(t, err)
		assert.True(t, w.IsTie)
		require.Len(t, w.Winners, 2)
		for _, e := range w.Winners {
			assert.Equal(t, 1, e.Rank)
		}
	})

	t.Run("nobody voted", func(t *testing.T) {
		w, err := Winners(board(0, 0))
		require.NoError(t, err)
		assert.True(t, w.IsTie)
		assert.Zero(t, w.VoteCount)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := Winners(nil)
		assert.ErrorIs(t, err, ErrNoCandidates)
	})
}
