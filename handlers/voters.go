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

type VoterHandler struct {
	store     *store.Store
	validator *validate.Validator
}

func NewVoterHandler(st *store.Store, v *validate.Validator) *VoterHandler {
	return &VoterHandler{store: st, validator: v}
}

// Register handles POST /api/voters
func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVoterRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	voter, err := h.store.RegisterVoter(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("voter registered", "voter_id", voter.VoterID)

	middleware.JSONResponse(w, models.StatusVoterCreated, models.CreateVoterResponse{
		VoterID: voter.VoterID,
		Message: "voter registered successfully",
	})
}

// Get handles GET /api/voters/{id}
func (h *VoterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, store.ErrVoterNotFound)
		return
	}

	voter, err := h.store.Voter(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, models.StatusVoterFound, voter)
}

// List handles GET /api/voters
func (h *VoterHandler) List(w http.ResponseWriter, r *http.Request) {
	voters := h.store.Voters()

	middleware.JSONResponse(w, models.StatusVotersListed, models.ListVotersResponse{
		Total:  len(voters),
		Voters: voters,
	})
}

// Update handles PUT /api/voters/{id}
func (h *VoterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, store.ErrVoterNotFound)
		return
	}

	var req models.UpdateVoterRequest
	if !bind(w, r, h.validator, &req) {
		return
	}
	if req.Empty() {
		writeError(w, r, validate.NewError("body",
			"at least one of full_name, age, address, phone is required"))
		return
	}

	voter, err := h.store.UpdateVoter(id, req.Patch())
	if err != nil {
		if errors.Is(err, store.ErrVoterLocked) {
			err = fmt.Errorf("cannot update: %w", err)
		}
		writeError(w, r, err)
		return
	}

	slog.Info("voter updated", "voter_id", id)

	middleware.JSONResponse(w, models.StatusVoterUpdated, models.UpdateVoterResponse{
		Message: "voter information updated",
		Voter:   voter,
	})
}

// Delete handles DELETE /api/voters/{id}
func (h *VoterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, store.ErrVoterNotFound)
		return
	}

	if err := h.store.DeleteVoter(id); err != nil {
		if errors.Is(err, store.ErrVoterLocked) {
			err = fmt.Errorf("cannot delete: %w", err)
		}
		writeError(w, r, err)
		return
	}

	slog.Info("voter deleted", "voter_id", id)

	middleware.JSONResponse(w, models.StatusDeleted, models.DeleteResponse{
		Message: "voter removed successfully",
		ID:      id,
	})
}
