// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tally turns a vote-ordered candidate leaderboard into ranked
// results and the winner view. Everything here is pure.
package tally

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/ballotbox/models"
)

var ErrNoCandidates = errors.New("no candidates registered")

// Rank numbers an already sorted leaderboard from 1. Percentages are taken
// against the sum of vote counts so weighted ballots add up to 100.
func Rank(board []models.Candidate, totalBallots int) models.Results {
	total := 0
	for _, c := range board {
		total += c.VoteCount
	}

	entries := make([]models.LeaderboardEntry, len(board))
	for i, c := range board {
		entries[i] = entry(i+1, c, total)
	}

	results := models.Results{
		TotalVotes:      total,
		TotalBallots:    totalBallots,
		TotalCandidates: len(board),
		Leaderboard:     entries,
	}
	if len(entries) > 0 {
		leader := entries[0]
		results.Leader = &leader
	}
	return results
}

// Winners reports every candidate tied at the top vote count
func Winners(board []models.Candidate) (models.Winner, error) {
	if len(board) == 0 {
		return models.Winner{}, ErrNoCandidates
	}

	total := 0
	top := board[0].VoteCount
	for _, c := range board {
		total += c.VoteCount
		top = max(top, c.VoteCount)
	}

	var winners []models.LeaderboardEntry
	for _, c := range board {
		if c.VoteCount == top {
			winners = append(winners, entry(1, c, total))
		}
	}

	return models.Winner{
		Winners:   winners,
		VoteCount: top,
		IsTie:     len(winners) > 1,
	}, nil
}

// Percentage formats part/total with two decimals, "0.00" when total is 0
func Percentage(part, total int) string {
	if total == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(part)/float64(total)*100)
}

func entry(rank int, c models.Candidate, total int) models.LeaderboardEntry {
	return models.LeaderboardEntry{
		Rank:          rank,
		CandidateID:   c.CandidateID,
		CandidateName: c.FullName,
		PartyName:     c.PartyName,
		Votes:         c.VoteCount,
		Percentage:    Percentage(c.VoteCount, total),
	}
}
