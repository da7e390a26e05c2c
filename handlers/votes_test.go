// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/testutil"
	"github.com/danielhkuo/ballotbox/timeparse"
	"github.com/danielhkuo/ballotbox/validate"
)

func TestCastVote(t *testing.T) {
	st, _ := testutil.NewTestStore(t)
	handler := NewVoteHandler(st, validate.New())
	voter := testutil.CreateTestVoter(t, st, "Alice Johnson")
	c := testutil.CreateTestCandidate(t, st, "Jane Doe", "Green")

	body := map[string]any{"voter_id": voter.VoterID, "candidate_id": c.CandidateID}

	w := httptest.NewRecorder()
	handler.Cast(w, testutil.MakeRequest("POST", "/api/votes", body, nil))
	testutil.AssertStatus(t, w, models.StatusVoteCast)

	var resp models.CastVoteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.VoteID != 1 || resp.Weight != 1 {
		t.Errorf("Expected vote 1 with weight 1, got vote %d weight %d", resp.VoteID, resp.Weight)
	}
	if !resp.Timestamp.Equal(testutil.ClockStart) {
		t.Errorf("Expected timestamp %v, got %v", testutil.ClockStart, resp.Timestamp)
	}

	got, _ := st.Voter(voter.VoterID)
	if !got.HasVoted {
		t.Error("Voter should be marked as voted")
	}

	// Second ballot from the same voter
	w = httptest.NewRecorder()
	handler.Cast(w, testutil.MakeRequest("POST", "/api/votes", body, nil))
	testutil.AssertError(t, w, http.StatusConflict, "voter has already cast a vote")

	votes, ballots, _ := st.CandidateVotes(c.CandidateID)
	if votes != 1 || ballots != 1 {
		t.Errorf("Rejected vote must not be counted, got votes=%d ballots=%d", votes, ballots)
	}
}

func TestCastVote_Errors(t *testing.T) {
	st, _ := testutil.NewTestStore(t)
	handler := NewVoteHandler(st, validate.New())
	voter := testutil.CreateTestVoter(t, st, "Alice Johnson")
	c := testutil.CreateTestCandidate(t, st, "Jane Doe", "Green")

	testCases := []struct {
		name           string
		body           any
		expectedStatus int
		expectedMsg    string
	}{
		{"unknown voter", map[string]any{"voter_id": 99, "candidate_id": c.CandidateID}, http.StatusNotFound, "voter not found"},
		{"unknown candidate", map[string]any{"voter_id": voter.VoterID, "candidate_id": 99}, http.StatusNotFound, "candidate not found"},
		{"missing candidate", map[string]any{"voter_id": voter.VoterID}, http.StatusUnprocessableEntity, "candidate_id is a required field"},
		{"string voter id", map[string]any{"voter_id": "1", "candidate_id": 1}, http.StatusUnprocessableEntity, "voter_id must be a number"},
		{"malformed body", `{"voter_id":1,}`, http.StatusBadRequest, "Invalid JSON"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Cast(w, testutil.MakeRequest("POST", "/api/votes", tc.body, nil))
			testutil.AssertError(t, w, tc.expectedStatus, tc.expectedMsg)
		})
	}

	if voter, _ := st.Voter(voter.VoterID); voter.HasVoted {
		t.Error("Failed votes must not mark the voter")
	}
}

func TestCastWeightedVote(t *testing.T) {
	st, clock := testutil.NewTestStore(t)
	handler := NewVoteHandler(st, validate.New())
	c := testutil.CreateTestCandidate(t, st, "Jane Doe", "Green")

	fresh := testutil.CreateTestVoter(t, st, "Alice Johnson")
	edited := testutil.CreateTestVoter(t, st, "Bob Smith")

	clock.Advance(time.Hour)
	addr := "456 Oak Avenue"
	if _, err := st.UpdateVoter(edited.VoterID, models.VoterPatch{Address: &addr}); err != nil {
		t.Fatalf("Failed to update voter: %v", err)
	}

	testCases := []struct {
		name           string
		voterID        int
		expectedWeight int
	}{
		{"never updated", fresh.VoterID, 1},
		{"updated profile", edited.VoterID, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.CastWeighted(w, testutil.MakeRequest("POST", "/api/votes/weighted",
				map[string]any{"voter_id": tc.voterID, "candidate_id": c.CandidateID}, nil))

			testutil.AssertStatus(t, w, models.StatusWeightedVote)

			var resp models.CastVoteResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Weight != tc.expectedWeight {
				t.Errorf("Expected weight %d, got %d", tc.expectedWeight, resp.Weight)
			}
		})
	}

	votes, ballots, _ := st.CandidateVotes(c.CandidateID)
	if votes != 3 || ballots != 2 {
		t.Errorf("Expected votes=3 ballots=2, got votes=%d ballots=%d", votes, ballots)
	}
}

func TestTimeline(t *testing.T) {
	st, clock := testutil.NewTestStore(t)
	handler := NewVoteHandler(st, validate.New())
	c := testutil.CreateTestCandidate(t, st, "Jane Doe", "Green")
	other := testutil.CreateTestCandidate(t, st, "John Roe", "Blue")

	for i, name := range []string{"Alice Johnson", "Bob Smith", "Carol White"} {
		v := testutil.CreateTestVoter(t, st, name)
		target := c.CandidateID
		if i == 1 {
			target = other.CandidateID
		}
		testutil.CastTestVote(t, st, v.VoterID, target)
		clock.Advance(time.Minute)
	}

	w := httptest.NewRecorder()
	handler.Timeline(w, testutil.MakeRequest("GET", "/api/votes/timeline?candidate_id=1", nil, nil))
	testutil.AssertStatus(t, w, models.StatusTimeline)

	var resp models.TimelineResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Timeline) != 2 {
		t.Fatalf("Expected 2 timeline entries, got %d", len(resp.Timeline))
	}
	if resp.Timeline[0].VoteID != 1 || resp.Timeline[1].VoteID != 3 {
		t.Errorf("Unexpected vote ids %d, %d", resp.Timeline[0].VoteID, resp.Timeline[1].VoteID)
	}
	if !resp.Timeline[0].Timestamp.Before(resp.Timeline[1].Timestamp) {
		t.Error("Timeline should be chronological")
	}
}

func TestTimeline_Errors(t *testing.T) {
	st, _ := testutil.NewTestStore(t)
	handler := NewVoteHandler(st, validate.New())
	testutil.CreateTestCandidate(t, st, "Jane Doe", "Green")

	testCases := []struct {
		name           string
		query          string
		expectedStatus int
		expectedMsg    string
	}{
		{"missing candidate_id", "", http.StatusBadRequest, "candidate_id is required"},
		{"non-integer candidate_id", "?candidate_id=abc", http.StatusBadRequest, "candidate_id must be an integer"},
		{"unknown candidate", "?candidate_id=9", http.StatusNotFound, "candidate not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Timeline(w, testutil.MakeRequest("GET", "/api/votes/timeline"+tc.query, nil, nil))
			testutil.AssertError(t, w, tc.expectedStatus, tc.expectedMsg)
		})
	}

	// A candidate with no votes has an empty, non-null timeline
	w := httptest.NewRecorder()
	handler.Timeline(w, testutil.MakeRequest("GET", "/api/votes/timeline?candidate_id=1", nil, nil))
	testutil.AssertStatus(t, w, models.StatusTimeline)
	var resp models.TimelineResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Timeline) != 0 {
		t.Errorf("Expected empty timeline, got %d entries", len(resp.Timeline))
	}
}

func rangeQuery(candidateID, from, to string) string {
	q := url.Values{}
	if candidateID != "" {
		q.Set("candidate_id", candidateID)
	}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	return "/api/votes/range?" + q.Encode()
}

func TestVotesInRange(t *testing.T) {
	st, clock := testutil.NewTestStore(t)
	handler := NewVoteHandler(st, validate.New())
	c := testutil.CreateTestCandidate(t, st, "Jane Doe", "Green")

	// Votes at 10:00, 10:30 and 11:00 UTC
	for _, name := range []string{"Alice Johnson", "Bob Smith", "Carol White"} {
		v := testutil.CreateTestVoter(t, st, name)
		testutil.CastTestVote(t, st, v.VoterID, c.CandidateID)
		clock.Advance(30 * time.Minute)
	}

	testCases := []struct {
		name     string
		from     string
		to       string
		expected int
	}{
		{"iso covering all", "2025-09-15T09:00:00Z", "2025-09-15T12:00:00Z", 3},
		{"inclusive bounds", "2025-09-15T10:00:00Z", "2025-09-15T10:30:00Z", 2},
		{"unix seconds", "1757930400", "1757932200", 2},
		{"date only", "2025-09-14", "2025-09-15", 0},
		{"offset zone", "2025-09-15T12:15:00+02:00", "2025-09-15T13:00:00+02:00", 2},
		{"slash format", "09/15/2025 10:45:00", "09/15/2025 11:00:00", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Range(w, testutil.MakeRequest("GET", rangeQuery("1", tc.from, tc.to), nil, nil))

			testutil.AssertStatus(t, w, models.StatusRange)

			var resp models.RangeResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.VotesGained != tc.expected {
				t.Errorf("Expected %d votes gained, got %d", tc.expected, resp.VotesGained)
			}
			if resp.From != tc.from || resp.To != tc.to {
				t.Errorf("Response should echo the raw bounds, got %s .. %s", resp.From, resp.To)
			}
		})
	}
}

func TestVotesInRange_Errors(t *testing.T) {
	st, _ := testutil.NewTestStore(t)
	handler := NewVoteHandler(st, validate.New())
	testutil.CreateTestCandidate(t, st, "Jane Doe", "Green")

	const from, to = "2025-09-15T09:00:00Z", "2025-09-15T12:00:00Z"

	testCases := []struct {
		name           string
		path           string
		expectedStatus int
		expectedMsg    string
	}{
		{"missing to", rangeQuery("1", from, ""), http.StatusBadRequest, "candidate_id, from, and to are required"},
		{"missing candidate", rangeQuery("", from, to), http.StatusBadRequest, "candidate_id, from, and to are required"},
		{"non-integer candidate", rangeQuery("one", from, to), http.StatusBadRequest, "candidate_id must be an integer"},
		{"unknown candidate", rangeQuery("7", from, to), http.StatusNotFound, "candidate not found"},
		{"unparseable from", rangeQuery("1", "yesterday", to), http.StatusBadRequest,
			"Invalid date format. Supported formats: " + timeparse.SupportedFormats},
		{"inverted interval", rangeQuery("1", to, from), http.StatusBadRequest, "invalid interval: from > to"},
		{"equal bounds", rangeQuery("1", from, from), http.StatusFailedDependency, "invalid interval: from must be before to"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Range(w, testutil.MakeRequest("GET", tc.path, nil, nil))
			testutil.AssertError(t, w, tc.expectedStatus, tc.expectedMsg)
		})
	}
}
