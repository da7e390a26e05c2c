// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package simulation

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

var (
	ErrInvalidProof         = errors.New("invalid zk proof")
	ErrNullifierUsed        = errors.New("nullifier already used in this election")
	ErrUnsupportedDimension = errors.New("unsupported query dimension")
	ErrInvalidBucket        = errors.New("invalid bucket")
	ErrUnboundedNoise       = errors.New("epsilon and delta give an unbounded noise scale")
)

// Source is the read side of the election the simulations draw from
type Source interface {
	Candidates() []models.Candidate
	Ballots() []models.Vote
	VoterAges() []int
}

// ProofVerifier decides whether an encrypted ballot's proof is acceptable
type ProofVerifier interface {
	Verify(ballot models.EncryptedBallotRequest) error
}

// AcceptingVerifier accepts every well-formed ballot
type AcceptingVerifier struct{}

func (AcceptingVerifier) Verify(models.EncryptedBallotRequest) error {
	return nil
}

// Engine backs the simulated endpoints. The only state it keeps is the set
// of nullifiers seen per election.
type Engine struct {
	source   Source
	verifier ProofVerifier
	noise    func() float64
	now      func() time.Time

	mu         sync.Mutex
	nullifiers map[string]map[string]struct{}
}

type Option func(*Engine)

func WithVerifier(v ProofVerifier) Option {
	return func(e *Engine) {
		e.verifier = v
	}
}

// WithNoise replaces the standard normal sampler used by DP queries
func WithNoise(sample func() float64) Option {
	return func(e *Engine) {
		e.noise = sample
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func New(source Source, opts ...Option) *Engine {
	e := &Engine{
		source:     source,
		verifier:   AcceptingVerifier{},
		noise:      rand.NormFloat64,
		now:        time.Now,
		nullifiers: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// claimNullifier records n for the election, failing if it was seen before
func (e *Engine) claimNullifier(electionID, n string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	seen, ok := e.nullifiers[electionID]
	if !ok {
		seen = make(map[string]struct{})
		e.nullifiers[electionID] = seen
	}
	if _, used := seen[n]; used {
		return ErrNullifierUsed
	}
	seen[n] = struct{}{}
	return nil
}
