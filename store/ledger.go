// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"slices"
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

// Ledger owns vote records and the indices built over them.
//
// voterIndex is the single source of truth for "has this voter voted".
// Votes are append-only, so each timeline slice is in chronological order.
type Ledger struct {
	ids            *Allocator
	votes          map[int]*models.Vote
	voterIndex     map[int]int              // voter_id -> vote_id
	candidateIndex map[int]map[int]struct{} // candidate_id -> vote_ids
	timelineIndex  map[int][]models.TimelineEntry
}

func NewLedger() *Ledger {
	return &Ledger{
		ids:            NewAllocator(),
		votes:          make(map[int]*models.Vote),
		voterIndex:     make(map[int]int),
		candidateIndex: make(map[int]map[int]struct{}),
		timelineIndex:  make(map[int][]models.TimelineEntry),
	}
}

func (l *Ledger) HasVoterVoted(voterID int) bool {
	_, ok := l.voterIndex[voterID]
	return ok
}

// Create records a vote. It does not check the one-vote-per-voter rule;
// callers must consult HasVoterVoted first.
func (l *Ledger) Create(voterID, candidateID, weight int, now time.Time) models.Vote {
	if weight < 1 {
		weight = 1
	}

	v := &models.Vote{
		VoteID:      l.ids.Next(),
		VoterID:     voterID,
		CandidateID: candidateID,
		Timestamp:   now.UTC(),
		Weight:      weight,
	}

	l.votes[v.VoteID] = v
	l.voterIndex[voterID] = v.VoteID

	set, ok := l.candidateIndex[candidateID]
	if !ok {
		set = make(map[int]struct{})
		l.candidateIndex[candidateID] = set
	}
	set[v.VoteID] = struct{}{}

	l.timelineIndex[candidateID] = append(l.timelineIndex[candidateID], models.TimelineEntry{
		VoteID:    v.VoteID,
		Timestamp: v.Timestamp,
	})

	return *v
}

func (l *Ledger) find(voteID int) (models.Vote, bool) {
	v, ok := l.votes[voteID]
	if !ok {
		return models.Vote{}, false
	}
	return *v, true
}

func (l *Ledger) ByVoter(voterID int) (models.Vote, bool) {
	voteID, ok := l.voterIndex[voterID]
	if !ok {
		return models.Vote{}, false
	}
	return *l.votes[voteID], true
}

// ByCandidate returns the candidate's votes ordered by vote_id
func (l *Ledger) ByCandidate(candidateID int) []models.Vote {
	set := l.candidateIndex[candidateID]
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]models.Vote, 0, len(ids))
	for _, id := range ids {
		out = append(out, *l.votes[id])
	}
	return out
}

// CountForCandidate is the number of ballots, not the weighted total
func (l *Ledger) CountForCandidate(candidateID int) int {
	return len(l.candidateIndex[candidateID])
}

// Timeline returns a copy of the candidate's chronological vote timeline
func (l *Ledger) Timeline(candidateID int) []models.TimelineEntry {
	return slices.Clone(l.timelineIndex[candidateID])
}

// VotesInRange counts timeline entries with from <= timestamp <= to.
// Equal bounds are rejected along with inverted ones.
func (l *Ledger) VotesInRange(candidateID int, from, to time.Time) (int, error) {
	if !from.Before(to) {
		return 0, ErrInvalidInterval
	}

	count := 0
	for _, entry := range l.timelineIndex[candidateID] {
		if entry.Timestamp.Before(from) || entry.Timestamp.After(to) {
			continue
		}
		count++
	}
	return count, nil
}

// All returns every vote ordered by vote_id
func (l *Ledger) All() []models.Vote {
	out := make([]models.Vote, 0, len(l.votes))
	for _, v := range l.votes {
		out = append(out, *v)
	}
	slices.SortFunc(out, func(a, b models.Vote) int { return a.VoteID - b.VoteID })
	return out
}

// Count is the total number of ballots cast
func (l *Ledger) Count() int {
	return len(l.votes)
}
