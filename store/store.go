// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store keeps the election in memory.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/tally"
)

// Store is the election's application context: the voter and candidate
// registries plus the vote ledger behind one lock. Every check-then-act
// sequence runs under the write lock, so concurrent requests cannot
// double-vote or skew vote counts.
type Store struct {
	mu         sync.RWMutex
	voters     *VoterRegistry
	candidates *CandidateRegistry
	ledger     *Ledger
	now        func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		voters:     NewVoterRegistry(),
		candidates: NewCandidateRegistry(),
		ledger:     NewLedger(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Voters

// RegisterVoter creates a voter unless the email is already taken
func (s *Store) RegisterVoter(req models.CreateVoterRequest) (models.Voter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.voters.FindByEmail(req.Email); exists {
		return models.Voter{}, ErrDuplicateEmail
	}

	return s.voters.Create(req, s.now().UTC()), nil
}

func (s *Store) Voter(id int) (models.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.voters.FindByID(id)
	if !ok {
		return models.Voter{}, ErrVoterNotFound
	}
	return v, nil
}

func (s *Store) Voters() []models.Voter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voters.All()
}

// UpdateVoter applies a partial update. Voters who have voted are locked.
func (s *Store) UpdateVoter(id int, patch models.VoterPatch) (models.Voter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.voters.Exists(id) {
		return models.Voter{}, ErrVoterNotFound
	}
	if s.ledger.HasVoterVoted(id) {
		return models.Voter{}, ErrVoterLocked
	}

	v, _ := s.voters.Update(id, patch, s.now().UTC())
	return v, nil
}

// DeleteVoter removes a voter who has not voted yet
func (s *Store) DeleteVoter(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.voters.Exists(id) {
		return ErrVoterNotFound
	}
	if s.ledger.HasVoterVoted(id) {
		return ErrVoterLocked
	}

	s.voters.Delete(id)
	return nil
}

// VoterAges returns the age of every registered voter
func (s *Store) VoterAges() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.voters.All()
	ages := make([]int, len(all))
	for i, v := range all {
		ages[i] = v.Age
	}
	return ages
}

// Candidates

// RegisterCandidate rejects a second candidate with the same name in the same party
func (s *Store) RegisterCandidate(req models.CreateCandidateRequest) (models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.candidates.FindByNameAndParty(req.FullName, req.PartyName); exists {
		return models.Candidate{}, ErrDuplicateCandidate
	}

	return s.candidates.Create(req, s.now().UTC()), nil
}

func (s *Store) Candidate(id int) (models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.candidates.FindByID(id)
	if !ok {
		return models.Candidate{}, ErrCandidateNotFound
	}
	return c, nil
}

func (s *Store) Candidates() []models.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.candidates.All()
}

func (s *Store) CandidatesByParty(party string) []models.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.candidates.ByParty(party)
}

func (s *Store) Parties() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.candidates.Parties()
}

// DeleteCandidate removes a candidate that has not received any votes
func (s *Store) DeleteCandidate(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.candidates.Exists(id) {
		return ErrCandidateNotFound
	}
	if s.ledger.CountForCandidate(id) > 0 {
		return ErrCandidateLocked
	}

	s.candidates.Delete(id)
	return nil
}

// CandidateVotes returns the weighted vote_count and the raw ballot count
func (s *Store) CandidateVotes(id int) (votes, ballots int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	votes, ok := s.candidates.VoteCount(id)
	if !ok {
		return 0, 0, ErrCandidateNotFound
	}
	return votes, s.ledger.CountForCandidate(id), nil
}

// Votes

// CastVote records a ballot for voterID. In weighted mode the ballot
// counts twice when the voter updated their profile after registering.
// Nothing is written unless every check passes.
func (s *Store) CastVote(voterID, candidateID int, mode string) (models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	voter, ok := s.voters.FindByID(voterID)
	if !ok {
		return models.Vote{}, ErrVoterNotFound
	}
	if !s.candidates.Exists(candidateID) {
		return models.Vote{}, ErrCandidateNotFound
	}
	if s.ledger.HasVoterVoted(voterID) {
		return models.Vote{}, ErrAlreadyVoted
	}

	weight := 1
	if mode == models.ModeWeighted && voter.ProfileUpdated() {
		weight = 2
	}

	vote := s.ledger.Create(voterID, candidateID, weight, s.now())
	s.candidates.IncrementVotes(candidateID, weight)
	s.voters.MarkAsVoted(voterID)

	return vote, nil
}

func (s *Store) Timeline(candidateID int) ([]models.TimelineEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.candidates.Exists(candidateID) {
		return nil, ErrCandidateNotFound
	}
	return s.ledger.Timeline(candidateID), nil
}

func (s *Store) VotesInRange(candidateID int, from, to time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.candidates.Exists(candidateID) {
		return 0, ErrCandidateNotFound
	}

	n, err := s.ledger.VotesInRange(candidateID, from, to)
	if err != nil {
		return 0, fmt.Errorf("candidate %d: %w", candidateID, err)
	}
	return n, nil
}

// Ballots returns every recorded vote ordered by vote_id
func (s *Store) Ballots() []models.Vote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.All()
}

// Results

func (s *Store) Results() models.Results {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tally.Rank(s.candidates.Leaderboard(), s.ledger.Count())
}

func (s *Store) Winner() (models.Winner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tally.Winners(s.candidates.Leaderboard())
}

// Counts reports registry sizes, used for startup logging
func (s *Store) Counts() (voters, candidates, votes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voters.Count(), s.candidates.Count(), s.ledger.Count()
}
