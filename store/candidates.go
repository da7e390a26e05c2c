// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

// CandidateRegistry owns candidate records and a party -> candidate ids index.
type CandidateRegistry struct {
	ids        *Allocator
	candidates map[int]*models.Candidate
	order      []int
	partyIndex map[string][]int
}

func NewCandidateRegistry() *CandidateRegistry {
	return &CandidateRegistry{
		ids:        NewAllocator(),
		candidates: make(map[int]*models.Candidate),
		partyIndex: make(map[string][]int),
	}
}

// Create stores a new candidate with zero votes
func (r *CandidateRegistry) Create(req models.CreateCandidateRequest, now time.Time) models.Candidate {
	c := &models.Candidate{
		CandidateID: r.ids.Next(),
		FullName:    req.FullName,
		PartyName:   req.PartyName,
		Age:         req.Age,
		Bio:         req.Bio,
		VoteCount:   0,
		CreatedAt:   now,
	}

	r.candidates[c.CandidateID] = c
	r.order = append(r.order, c.CandidateID)
	r.partyIndex[c.PartyName] = append(r.partyIndex[c.PartyName], c.CandidateID)

	return *c
}

func (r *CandidateRegistry) FindByID(id int) (models.Candidate, bool) {
	c, ok := r.candidates[id]
	if !ok {
		return models.Candidate{}, false
	}
	return *c, true
}

// FindByNameAndParty matches both names case-insensitively
func (r *CandidateRegistry) FindByNameAndParty(fullName, party string) (models.Candidate, bool) {
	for _, id := range r.partyIndexFold(party) {
		c := r.candidates[id]
		if strings.EqualFold(strings.TrimSpace(c.FullName), strings.TrimSpace(fullName)) {
			return *c, true
		}
	}
	return models.Candidate{}, false
}

func (r *CandidateRegistry) partyIndexFold(party string) []int {
	party = strings.TrimSpace(party)
	var ids []int
	for name, members := range r.partyIndex {
		if strings.EqualFold(strings.TrimSpace(name), party) {
			ids = append(ids, members...)
		}
	}
	return ids
}

func (r *CandidateRegistry) Exists(id int) bool {
	_, ok := r.candidates[id]
	return ok
}

// All returns copies of every candidate in insertion order
func (r *CandidateRegistry) All() []models.Candidate {
	out := make([]models.Candidate, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.candidates[id])
	}
	return out
}

// ByParty is an exact-match index lookup
func (r *CandidateRegistry) ByParty(party string) []models.Candidate {
	ids := r.partyIndex[party]
	out := make([]models.Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.candidates[id])
	}
	return out
}

// Parties returns every party with at least one candidate, sorted
func (r *CandidateRegistry) Parties() []string {
	parties := make([]string, 0, len(r.partyIndex))
	for name := range r.partyIndex {
		parties = append(parties, name)
	}
	slices.Sort(parties)
	return parties
}

func (r *CandidateRegistry) Count() int {
	return len(r.candidates)
}

// IncrementVotes adds amount (at least 1) to the candidate's vote_count
func (r *CandidateRegistry) IncrementVotes(id, amount int) bool {
	c, ok := r.candidates[id]
	if !ok {
		return false
	}
	if amount < 1 {
		amount = 1
	}
	c.VoteCount += amount
	return true
}

func (r *CandidateRegistry) VoteCount(id int) (int, bool) {
	c, ok := r.candidates[id]
	if !ok {
		return 0, false
	}
	return c.VoteCount, true
}

// Leaderboard sorts by vote_count descending. The sort is stable so ties
// keep registration order.
func (r *CandidateRegistry) Leaderboard() []models.Candidate {
	board := r.All()
	slices.SortStableFunc(board, func(a, b models.Candidate) int {
		return cmp.Compare(b.VoteCount, a.VoteCount)
	})
	return board
}

// Delete removes the candidate and prunes the party index
func (r *CandidateRegistry) Delete(id int) bool {
	c, ok := r.candidates[id]
	if !ok {
		return false
	}

	delete(r.candidates, id)
	r.order = slices.DeleteFunc(r.order, func(x int) bool { return x == id })

	members := slices.DeleteFunc(r.partyIndex[c.PartyName], func(x int) bool { return x == id })
	if len(members) == 0 {
		delete(r.partyIndex, c.PartyName)
	} else {
		r.partyIndex[c.PartyName] = members
	}

	return true
}
