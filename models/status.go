// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "net/http"

// Success status codes. Clients depend on these exact values.
const (
	StatusVoterCreated        = 218
	StatusVoterFound          = 222
	StatusVotersListed        = 223
	StatusVoterUpdated        = 224
	StatusDeleted             = 225
	StatusCandidateRegistered = 226
	StatusCandidatesListed    = 227
	StatusVoteCast            = 228
	StatusVotesRetrieved      = 229
	StatusCandidatesFiltered  = 230
	StatusResults             = 231
	StatusWinner              = 232
	StatusTimeline            = 233
	StatusWeightedVote        = 234
	StatusRange               = 235
	StatusEncrypted           = 236
	StatusTallied             = 237
	StatusPrivate             = 238
	StatusRanked              = 239
	StatusAudited             = 240
)

var statusText = map[int]string{
	StatusVoterCreated:        "Created",
	StatusVoterFound:          "Found",
	StatusVotersListed:        "Listed",
	StatusVoterUpdated:        "Updated",
	StatusDeleted:             "Deleted",
	StatusCandidateRegistered: "Registered",
	StatusCandidatesListed:    "Listed",
	StatusVoteCast:            "Vote Cast",
	StatusVotesRetrieved:      "Votes Retrieved",
	StatusCandidatesFiltered:  "Filtered",
	StatusResults:             "Results",
	StatusWinner:              "Winner",
	StatusTimeline:            "Timeline",
	StatusWeightedVote:        "Weighted",
	StatusRange:               "Range",
	StatusEncrypted:           "Encrypted",
	StatusTallied:             "Tallied",
	StatusPrivate:             "Private",
	StatusRanked:              "Ranked",
	StatusAudited:             "Audited",
}

// StatusText returns the reason phrase for code, covering the custom codes
// as well as the standard ones
func StatusText(code int) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return http.StatusText(code)
}
