// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballot box API.

# Handler Types

Each handler is a struct built by a constructor with its dependencies:

  - VoterHandler: voter registration, lookup, update, removal
  - CandidateHandler: candidate registration, listing, party filter, vote counts
  - VoteHandler: simple and weighted votes, timeline, range queries
  - ResultsHandler: leaderboard, winner, archived result snapshots
  - SimulationHandler: encrypted/ranked ballots, homomorphic tally,
    differential privacy queries, audit plans
  - HealthHandler: liveness and uptime

Handlers share a single *store.Store and a *validate.Validator:

	voters := handlers.NewVoterHandler(st, v)
	votes := handlers.NewVoteHandler(st, v)

# Status Codes

Successful responses use the custom codes in package models (218-240).
Errors are mapped in one place, writeError:

	422  validation failure (first failing field)
	400  malformed JSON, bad query parameters, unparseable dates
	404  unknown voter, candidate, or snapshot
	409  duplicate registration, second vote, reused nullifier
	423  voter or candidate locked by a recorded vote
	424  empty vote-range interval
	425  rejected zk proof
	503  result archive not configured

# Voting

	POST /api/votes           → Cast (weight 1)
	POST /api/votes/weighted  → CastWeighted (weight 2 after a profile update)

A voter votes at most once. The check and the write happen under the
store's lock, so concurrent requests cannot both succeed.

# Result Archive

ResultsHandler takes an optional ResultArchive. Passing nil disables the
snapshot endpoints; *db.SnapshotStore is the sqlite/postgres implementation.
*/
package handlers
