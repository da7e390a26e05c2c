// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package seed fills an empty store with a small sample election for
// local development.
package seed

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/store"
)

var voters = []models.CreateVoterRequest{
	{FullName: "Alice Johnson", Email: "alice.johnson@email.com", Age: 28, Address: "123 Main Street, Springfield, IL", Phone: "+15551234567"},
	{FullName: "Bob Smith", Email: "bob.smith@email.com", Age: 35, Address: "456 Oak Avenue, Springfield, IL", Phone: "+15559876543"},
	{FullName: "Carol Williams", Email: "carol.williams@email.com", Age: 42, Address: "789 Pine Road, Springfield, IL", Phone: "+15555551212"},
	{FullName: "David Brown", Email: "david.brown@email.com", Age: 31, Address: "321 Elm Street, Springfield, IL", Phone: "+15554567890"},
	{FullName: "Emma Davis", Email: "emma.davis@email.com", Age: 26, Address: "654 Maple Lane, Springfield, IL", Phone: "+15557890123"},
}

var candidates = []models.CreateCandidateRequest{
	{FullName: "John Martinez", PartyName: "Democratic Party", Age: 45, Bio: "Experienced legislator focused on healthcare reform and education funding"},
	{FullName: "Sarah Thompson", PartyName: "Republican Party", Age: 38, Bio: "Business owner advocating for economic growth and small business support"},
	{FullName: "Michael Green", PartyName: "Green Party", Age: 52, Bio: "Environmental scientist committed to sustainable energy and climate action"},
	{FullName: "Lisa Chen", PartyName: "Independent", Age: 41, Bio: "Former prosecutor focusing on criminal justice reform and community safety"},
}

// ballots pairs voter and candidate positions in the slices above
var ballots = [][2]int{{0, 0}, {1, 1}, {2, 0}, {3, 2}, {4, 0}}

type Summary struct {
	Voters     int
	Candidates int
	Votes      int
}

// Load registers the sample voters and candidates and casts the sample
// votes. It goes through the store's public operations, so it fails on a
// store that already holds any of the same people.
func Load(st *store.Store) (Summary, error) {
	voterIDs := make([]int, len(voters))
	for i, req := range voters {
		v, err := st.RegisterVoter(req)
		if err != nil {
			return Summary{}, fmt.Errorf("seed voter %s: %w", req.Email, err)
		}
		voterIDs[i] = v.VoterID
		slog.Debug("seeded voter", "voter_id", v.VoterID, "name", v.FullName)
	}

	candidateIDs := make([]int, len(candidates))
	for i, req := range candidates {
		c, err := st.RegisterCandidate(req)
		if err != nil {
			return Summary{}, fmt.Errorf("seed candidate %s: %w", req.FullName, err)
		}
		candidateIDs[i] = c.CandidateID
		slog.Debug("seeded candidate", "candidate_id", c.CandidateID, "name", c.FullName, "party", c.PartyName)
	}

	for _, b := range ballots {
		vote, err := st.CastVote(voterIDs[b[0]], candidateIDs[b[1]], models.ModeSimple)
		if err != nil {
			return Summary{}, fmt.Errorf("seed vote: %w", err)
		}
		slog.Debug("seeded vote", "vote_id", vote.VoteID, "voter_id", vote.VoterID, "candidate_id", vote.CandidateID)
	}

	for _, entry := range st.Results().Leaderboard {
		slog.Info("seeded standing",
			"place", humanize.Ordinal(entry.Rank),
			"candidate", entry.CandidateName,
			"party", entry.PartyName,
			"votes", entry.Votes,
		)
	}

	nv, nc, nb := st.Counts()
	summary := Summary{Voters: nv, Candidates: nc, Votes: nb}
	slog.Info("sample data loaded", "voters", nv, "candidates", nc, "votes", nb)

	return summary, nil
}
