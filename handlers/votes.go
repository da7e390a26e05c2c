// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/store"
	"github.com/danielhkuo/ballotbox/timeparse"
	"github.com/danielhkuo/ballotbox/validate"
)

type VoteHandler struct {
	store     *store.Store
	validator *validate.Validator
}

func NewVoteHandler(st *store.Store, v *validate.Validator) *VoteHandler {
	return &VoteHandler{store: st, validator: v}
}

// Cast handles POST /api/votes
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	vote, ok := h.cast(w, r, models.ModeSimple)
	if !ok {
		return
	}

	middleware.JSONResponse(w, models.StatusVoteCast, models.CastVoteResponse{
		VoteID:      vote.VoteID,
		VoterID:     vote.VoterID,
		CandidateID: vote.CandidateID,
		Timestamp:   vote.Timestamp,
		Weight:      vote.Weight,
	})
}

// CastWeighted handles POST /api/votes/weighted. The ballot weighs 2 when
// the voter has updated their profile since registering.
func (h *VoteHandler) CastWeighted(w http.ResponseWriter, r *http.Request) {
	vote, ok := h.cast(w, r, models.ModeWeighted)
	if !ok {
		return
	}

	middleware.JSONResponse(w, models.StatusWeightedVote, models.CastVoteResponse{
		VoteID:      vote.VoteID,
		VoterID:     vote.VoterID,
		CandidateID: vote.CandidateID,
		Timestamp:   vote.Timestamp,
		Weight:      vote.Weight,
	})
}

func (h *VoteHandler) cast(w http.ResponseWriter, r *http.Request, mode string) (models.Vote, bool) {
	var req models.CastVoteRequest
	if !bind(w, r, h.validator, &req) {
		return models.Vote{}, false
	}

	vote, err := h.store.CastVote(req.VoterID, req.CandidateID, mode)
	if err != nil {
		writeError(w, r, err)
		return models.Vote{}, false
	}

	slog.Info("vote cast",
		"vote_id", vote.VoteID,
		"candidate_id", vote.CandidateID,
		"mode", mode,
		"weight", vote.Weight,
	)
	return vote, true
}

// Timeline handles GET /api/votes/timeline?candidate_id=
func (h *VoteHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("candidate_id")
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}
	candidateID, err := strconv.Atoi(raw)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id must be an integer")
		return
	}

	timeline, err := h.store.Timeline(candidateID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, models.StatusTimeline, models.TimelineResponse{
		CandidateID: candidateID,
		Timeline:    timeline,
	})
}

// Range handles GET /api/votes/range?candidate_id=&from=&to=
func (h *VoteHandler) Range(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw, fromRaw, toRaw := q.Get("candidate_id"), q.Get("from"), q.Get("to")

	if raw == "" || fromRaw == "" || toRaw == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id, from, and to are required")
		return
	}
	candidateID, err := strconv.Atoi(raw)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id must be an integer")
		return
	}

	if _, err := h.store.Candidate(candidateID); err != nil {
		writeError(w, r, err)
		return
	}

	from, err := timeparse.Parse(fromRaw)
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := timeparse.Parse(toRaw)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if from.After(to) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid interval: from > to")
		return
	}

	gained, err := h.store.VotesInRange(candidateID, from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, models.StatusRange, models.RangeResponse{
		CandidateID: candidateID,
		From:        fromRaw,
		To:          toRaw,
		VotesGained: gained,
	})
}
