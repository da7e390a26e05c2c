// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/tally"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var start = time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: start}
	return New(WithClock(clock.Now)), clock
}

func voterReq(name, email string) models.CreateVoterRequest {
	return models.CreateVoterRequest{
		FullName: name,
		Email:    email,
		Age:      30,
		Address:  "123 Main Street",
		Phone:    "+15551234567",
	}
}

func candidateReq(name, party string) models.CreateCandidateRequest {
	return models.CreateCandidateRequest{FullName: name, PartyName: party, Age: 45}
}

func TestAllocator(t *testing.T) {
	a := NewAllocator()
	assert.Equal(t, 1, a.peek())
	assert.Equal(t, 1, a.Next())
	assert.Equal(t, 2, a.Next())
	assert.Equal(t, 3, a.peek())
}

func TestRegisterVoter(t *testing.T) {
	st, _ := newStore(t)

	v, err := st.RegisterVoter(voterReq("Alice Johnson", "alice@example.com"))
	require.NoError(t, err)
	assert.Equal(t, 1, v.VoterID)
	assert.False(t, v.HasVoted)
	assert.Equal(t, start, v.CreatedAt)
	assert.Equal(t, v.CreatedAt, v.UpdatedAt)

	_, err = st.RegisterVoter(voterReq("Alice Again", " ALICE@example.com "))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	got, err := st.Voter(1)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	_, err = st.Voter(2)
	assert.ErrorIs(t, err, ErrVoterNotFound)
}

func TestVoterCopiesAreIsolated(t *testing.T) {
	st, _ := newStore(t)
	_, err := st.RegisterVoter(voterReq("Alice Johnson", "alice@example.com"))
	require.NoError(t, err)

	list := st.Voters()
	list[0].FullName = "Mallory"

	got, _ := st.Voter(1)
	assert.Equal(t, "Alice Johnson", got.FullName)
}

func TestUpdateVoter(t *testing.T) {
	st, clock := newStore(t)
	_, err := st.RegisterVoter(voterReq("Alice Johnson", "alice@example.com"))
	require.NoError(t, err)

	clock.Advance(time.Minute)
	age := 31
	v, err := st.UpdateVoter(1, models.VoterPatch{Age: &age})
	require.NoError(t, err)
	assert.Equal(t, 31, v.Age)
	assert.Equal(t, "Alice Johnson", v.FullName)
	assert.True(t, v.ProfileUpdated())
	assert.Equal(t, start.Add(time.Minute), v.UpdatedAt)

	_, err = st.UpdateVoter(9, models.VoterPatch{Age: &age})
	assert.ErrorIs(t, err, ErrVoterNotFound)
}

func TestVoterLockedAfterVoting(t *testing.T) {
	st, _ := newStore(t)
	_, err := st.RegisterVoter(voterReq("Alice Johnson", "alice@example.com"))
	require.NoError(t, err)
	_, err = st.RegisterCandidate(candidateReq("Jane Doe", "Green"))
	require.NoError(t, err)
	_, err = st.CastVote(1, 1, models.ModeSimple)
	require.NoError(t, err)

	name := "Alice J"
	_, err = st.UpdateVoter(1, models.VoterPatch{FullName: &name})
	assert.ErrorIs(t, err, ErrVoterLocked)

	assert.ErrorIs(t, st.DeleteVoter(1), ErrVoterLocked)

	v, _ := st.Voter(1)
	assert.Equal(t, "Alice Johnson", v.FullName)
}

func TestDeleteVoter(t *testing.T) {
	st, _ := newStore(t)
	_, err := st.RegisterVoter(voterReq("Alice Johnson", "alice@example.com"))
	require.NoError(t, err)

	require.NoError(t, st.DeleteVoter(1))
	assert.ErrorIs(t, st.DeleteVoter(1), ErrVoterNotFound)
	assert.Empty(t, st.Voters())

	// The email is free again but the id is not reused
	v, err := st.RegisterVoter(voterReq("Alice Johnson", "alice@example.com"))
	require.NoError(t, err)
	assert.Equal(t, 2, v.VoterID)
}

func TestVoterAges(t *testing.T) {
	st, _ := newStore(t)
	for i, age := range []int{22, 47, 65} {
		req := voterReq(fmt.Sprintf("Voter %d", i), fmt.Sprintf("v%d@example.com", i))
		req.Age = age
		_, err := st.RegisterVoter(req)
		require.NoError(t, err)
	}

	assert.Equal(t, []int{22, 47, 65}, st.VoterAges())
}

func TestRegisterCandidate(t *testing.T) {
	st, _ := newStore(t)

	c, err := st.RegisterCandidate(candidateReq("Jane Doe", "Green"))
	require.NoError(t, err)
	assert.Equal(t, 1, c.CandidateID)
	assert.Zero(t, c.VoteCount)

	_, err = st.RegisterCandidate(candidateReq(" jane doe", "green "))
	assert.ErrorIs(t, err, ErrDuplicateCandidate)

	_, err = st.RegisterCandidate(candidateReq("Jane Doe", "Blue"))
	assert.NoError(t, err)

	assert.Len(t, st.CandidatesByParty("Green"), 1)
	assert.Empty(t, st.CandidatesByParty("green"), "party filter is an exact match")
	assert.Equal(t, []string{"Blue", "Green"}, st.Parties())
}

func TestDeleteCandidate(t *testing.T) {
	st, _ := newStore(t)
	_, err := st.RegisterCandidate(candidateReq("Jane Doe", "Green"))
	require.NoError(t, err)
	_, err = st.RegisterCandidate(candidateReq("John Roe", "Blue"))
	require.NoError(t, err)
	_, err = st.RegisterVoter(voterReq("Alice Johnson", "alice@example.com"))
	require.NoError(t, err)
	_, err = st.CastVote(1, 2, models.ModeSimple)
	require.NoError(t, err)

	assert.ErrorIs(t, st.DeleteCandidate(2), ErrCandidateLocked)
	require.NoError(t, st.DeleteCandidate(1))
	assert.ErrorIs(t, st.DeleteCandidate(1), ErrCandidateNotFound)

	assert.Equal(t, []string{"Blue"}, st.Parties())
	assert.Empty(t, st.CandidatesByParty("Green"))
}

func TestCastVote(t *testing.T) {
	st, clock := newStore(t)
	_, err := st.RegisterVoter(voterReq("Alice Johnson", "alice@example.com"))
	require.NoError(t, err)
	_, err = st.RegisterVoter(voterReq("Bob Smith", "bob@example.com"))
	require.NoError(t, err)
	_, err = st.RegisterCandidate(candidateReq("Jane Doe", "Green"))
	require.NoError(t, err)

	clock.Advance(time.Minute)
	vote, err := st.CastVote(1, 1, models.ModeSimple)
	require.NoError(t, err)
	assert.Equal(t, models.Vote{
		VoteID:      1,
		VoterID:     1,
		CandidateID: 1,
		Timestamp:   start.Add(time.Minute),
		Weight:      1,
	}, vote)

	_, err = st.CastVote(1, 1, models.ModeSimple)
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	_, err = st.CastVote(9, 1, models.ModeSimple)
	assert.ErrorIs(t, err, ErrVoterNotFound)

	_, err = st.CastVote(2, 9, models.ModeSimple)
	assert.ErrorIs(t, err, ErrCandidateNotFound)

	// Failed attempts leave no trace
	bob, _ := st.Voter(2)
	assert.False(t, bob.HasVoted)

	votes, ballots, err := st.CandidateVotes(1)
	require.NoError(t, err)
	assert.Equal(t, 1, votes)
	assert.Equal(t, 1, ballots)
	assert.Len(t, st.Ballots(), 1)
}

func TestCastVoteWeighted(t *testing.T) {
	st, clock := newStore(t)
	_, err := st.RegisterVoter(voterReq("Alice Johnson", "alice@example.com"))
	require.NoError(t, err)
	_, err = st.RegisterVoter(voterReq("Bob Smith", "bob@example.com"))
	require.NoError(t, err)
	_, err = st.RegisterCandidate(candidateReq("Jane Doe", "Green"))
	require.NoError(t, err)

	clock.Advance(time.Second)
	addr := "456 Oak Avenue"
	_, err = st.UpdateVoter(2, models.VoterPatch{Address: &addr})
	require.NoError(t, err)

	a, err := st.CastVote(1, 1, models.ModeWeighted)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Weight)

	b, err := st.CastVote(2, 1, models.ModeWeighted)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Weight)

	votes, ballots, _ := st.CandidateVotes(1)
	assert.Equal(t, 3, votes)
	assert.Equal(t, 2, ballots)

	results := st.Results()
	assert.Equal(t, 3, results.TotalVotes)
	assert.Equal(t, 2, results.TotalBallots)
}

func TestTimelineAndRange(t *testing.T) {
	st, clock := newStore(t)
	_, err := st.RegisterCandidate(candidateReq("Jane Doe", "Green"))
	require.NoError(t, err)
	_, err = st.RegisterCandidate(candidateReq("John Roe", "Blue"))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := st.RegisterVoter(voterReq(fmt.Sprintf("Voter %d", i), fmt.Sprintf("v%d@example.com", i)))
		require.NoError(t, err)
	}

	// Jane at 10:00, 10:20, 10:30; John at 10:10
	targets := []int{1, 2, 1, 1}
	offsets := []time.Duration{0, 10 * time.Minute, 10 * time.Minute, 10 * time.Minute}
	for i, c := range targets {
		clock.Advance(offsets[i])
		_, err := st.CastVote(i+1, c, models.ModeSimple)
		require.NoError(t, err)
	}

	timeline, err := st.Timeline(1)
	require.NoError(t, err)
	require.Len(t, timeline, 3)
	assert.Equal(t, []int{1, 3, 4}, []int{timeline[0].VoteID, timeline[1].VoteID, timeline[2].VoteID})

	_, err = st.Timeline(9)
	assert.ErrorIs(t, err, ErrCandidateNotFound)

	n, err := st.VotesInRange(1, start, start.Add(20*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, n, "both bounds are inclusive")

	n, err = st.VotesInRange(2, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = st.VotesInRange(1, start, start)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = st.VotesInRange(1, start.Add(time.Hour), start)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = st.VotesInRange(9, start, start.Add(time.Hour))
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestLedgerLookups(t *testing.T) {
	l := NewLedger()
	l.Create(1, 7, 1, start)
	l.Create(2, 8, 0, start.Add(time.Minute))
	l.Create(3, 7, 2, start.Add(2*time.Minute))

	v, ok := l.find(2)
	require.True(t, ok)
	assert.Equal(t, 1, v.Weight, "weights below 1 are raised to 1")

	_, ok = l.find(9)
	assert.False(t, ok)

	byVoter, ok := l.ByVoter(3)
	require.True(t, ok)
	assert.Equal(t, 3, byVoter.VoteID)

	_, ok = l.ByVoter(4)
	assert.False(t, ok)

	byCandidate := l.ByCandidate(7)
	require.Len(t, byCandidate, 2)
	assert.Equal(t, 1, byCandidate[0].VoteID)
	assert.Equal(t, 3, byCandidate[1].VoteID)

	assert.Equal(t, 2, l.CountForCandidate(7))
	assert.Equal(t, 3, l.Count())
}

func TestResultsAndWinner(t *testing.T) {
	st, _ := newStore(t)

	results := st.Results()
	assert.Zero(t, results.TotalVotes)
	assert.Nil(t, results.Leader)
	assert.NotNil(t, results.Leaderboard)

	_, err := st.Winner()
	assert.ErrorIs(t, err, tally.ErrNoCandidates)

	_, err = st.RegisterCandidate(candidateReq("Jane Doe", "Green"))
	require.NoError(t, err)
	_, err = st.RegisterCandidate(candidateReq("John Roe", "Blue"))
	require.NoError(t, err)
	_, err = st.RegisterVoter(voterReq("Alice Johnson", "alice@example.com"))
	require.NoError(t, err)
	_, err = st.CastVote(1, 2, models.ModeSimple)
	require.NoError(t, err)

	results = st.Results()
	require.NotNil(t, results.Leader)
	assert.Equal(t, "John Roe", results.Leader.CandidateName)
	assert.Equal(t, "100.00", results.Leaderboard[0].Percentage)
	assert.Equal(t, 2, results.Leaderboard[1].Rank)

	winner, err := st.Winner()
	require.NoError(t, err)
	assert.False(t, winner.IsTie)
	assert.Equal(t, 1, winner.VoteCount)

	nv, nc, nb := st.Counts()
	assert.Equal(t, []int{1, 2, 1}, []int{nv, nc, nb})
}

func TestConcurrentDoubleVote(t *testing.T) {
	st, _ := newStore(t)
	_, err := st.RegisterVoter(voterReq("Alice Johnson", "alice@example.com"))
	require.NoError(t, err)
	_, err = st.RegisterCandidate(candidateReq("Jane Doe", "Green"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.CastVote(1, 1, models.ModeSimple)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	accepted := 0
	for err := range errs {
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyVoted)
	}
	assert.Equal(t, 1, accepted)

	votes, ballots, _ := st.CandidateVotes(1)
	assert.Equal(t, 1, votes)
	assert.Equal(t, 1, ballots)
}
