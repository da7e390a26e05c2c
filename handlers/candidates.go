// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/store"
	"github.com/danielhkuo/ballotbox/validate"
)

type CandidateHandler struct {
	store     *store.Store
	validator *validate.Validator
}

func NewCandidateHandler(st *store.Store, v *validate.Validator) *CandidateHandler {
	return &CandidateHandler{store: st, validator: v}
}

// Register handles POST /api/candidates
func (h *CandidateHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCandidateRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	c, err := h.store.RegisterCandidate(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("candidate registered", "candidate_id", c.CandidateID, "party", c.PartyName)

	middleware.JSONResponse(w, models.StatusCandidateRegistered, models.CreateCandidateResponse{
		CandidateID: c.CandidateID,
		FullName:    c.FullName,
		PartyName:   c.PartyName,
		VoteCount:   c.VoteCount,
		Message:     "candidate registered successfully",
	})
}

// List handles GET /api/candidates, filtering by ?party= when present
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	if party := r.URL.Query().Get("party"); party != "" {
		candidates := h.store.CandidatesByParty(party)
		middleware.JSONResponse(w, models.StatusCandidatesFiltered, models.FilterCandidatesResponse{
			Party:      party,
			Total:      len(candidates),
			Candidates: candidates,
		})
		return
	}

	candidates := h.store.Candidates()
	middleware.JSONResponse(w, models.StatusCandidatesListed, models.ListCandidatesResponse{
		Total:      len(candidates),
		Candidates: candidates,
	})
}

// Get handles GET /api/candidates/{id}
func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, store.ErrCandidateNotFound)
		return
	}

	c, err := h.store.Candidate(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, c)
}

// Delete handles DELETE /api/candidates/{id}
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, store.ErrCandidateNotFound)
		return
	}

	if err := h.store.DeleteCandidate(id); err != nil {
		if errors.Is(err, store.ErrCandidateLocked) {
			err = fmt.Errorf("cannot delete: %w", err)
		}
		writeError(w, r, err)
		return
	}

	slog.Info("candidate deleted", "candidate_id", id)

	middleware.JSONResponse(w, models.StatusDeleted, models.DeleteResponse{
		Message: "candidate removed successfully",
		ID:      id,
	})
}

// Votes handles GET /api/candidates/{id}/votes
func (h *CandidateHandler) Votes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, store.ErrCandidateNotFound)
		return
	}

	votes, ballots, err := h.store.CandidateVotes(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, models.StatusVotesRetrieved, models.CandidateVotesResponse{
		CandidateID: id,
		Votes:       votes,
		Ballots:     ballots,
	})
}

// Parties handles GET /api/parties
func (h *CandidateHandler) Parties(w http.ResponseWriter, r *http.Request) {
	parties := h.store.Parties()

	middleware.JSONResponse(w, http.StatusOK, models.PartiesResponse{
		Total:   len(parties),
		Parties: parties,
	})
}
