// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Voter: registered voter with has_voted flag
  - Candidate: candidate with running vote_count
  - Vote: immutable ballot event (voter, candidate, timestamp, weight)
  - TimelineEntry: vote_id and timestamp pair
  - VoterPatch: partial voter update

# Request Types

Request types carry `validate` struct tags consumed by package validate:

  - CreateVoterRequest: full_name, email, age, address, phone
  - UpdateVoterRequest: optional full_name, age, address, phone
  - CreateCandidateRequest: full_name, party_name, age, bio
  - CastVoteRequest: voter_id, candidate_id
  - EncryptedBallotRequest, RankedBallotRequest, DPQueryRequest,
    AuditPlanRequest, HomomorphicTallyRequest: simulated endpoints

# Response Types

Every success body includes the identifying fields of the entity it
concerns. Errors use ErrorResponse: error, message (and stack in
development mode).

# Status Codes

The API answers with custom 2xx codes (218-240), declared in status.go:

	StatusVoterCreated = 218
	StatusVoteCast     = 228
	StatusResults      = 231
	StatusAudited      = 240
*/
package models
