// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import "errors"

var (
	ErrVoterNotFound      = errors.New("voter not found")
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrDuplicateEmail     = errors.New("voter already exists")
	ErrDuplicateCandidate = errors.New("candidate already exists")
	ErrAlreadyVoted       = errors.New("voter has already cast a vote")
	ErrVoterLocked        = errors.New("voter has already cast a vote")
	ErrCandidateLocked    = errors.New("candidate has already received votes")
	ErrInvalidInterval    = errors.New("invalid interval: from must be before to")
)
