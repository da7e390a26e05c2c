// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/simulation"
	"github.com/danielhkuo/ballotbox/validate"
)

// SimulationHandler serves the simulated cryptographic and analytics
// endpoints. Every response is labelled "simulated": true.
type SimulationHandler struct {
	engine    *simulation.Engine
	validator *validate.Validator
}

func NewSimulationHandler(engine *simulation.Engine, v *validate.Validator) *SimulationHandler {
	return &SimulationHandler{engine: engine, validator: v}
}

// EncryptedBallot handles POST /api/ballots/encrypted
func (h *SimulationHandler) EncryptedBallot(w http.ResponseWriter, r *http.Request) {
	var req models.EncryptedBallotRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	resp, err := h.engine.SubmitEncrypted(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("encrypted ballot accepted", "election_id", req.ElectionID, "ballot_id", resp.BallotID)

	middleware.JSONResponse(w, models.StatusEncrypted, resp)
}

// RankedBallot handles POST /api/ballots/ranked
func (h *SimulationHandler) RankedBallot(w http.ResponseWriter, r *http.Request) {
	var req models.RankedBallotRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	resp, err := h.engine.SubmitRanked(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, models.StatusRanked, resp)
}

// HomomorphicTally handles POST /api/results/homomorphic
func (h *SimulationHandler) HomomorphicTally(w http.ResponseWriter, r *http.Request) {
	var req models.HomomorphicTallyRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	resp, err := h.engine.Tally(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, models.StatusTallied, resp)
}

// PrivateQuery handles POST /api/analytics/dp
func (h *SimulationHandler) PrivateQuery(w http.ResponseWriter, r *http.Request) {
	var req models.DPQueryRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	resp, err := h.engine.Query(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, models.StatusPrivate, resp)
}

// AuditPlan handles POST /api/audits/plan
func (h *SimulationHandler) AuditPlan(w http.ResponseWriter, r *http.Request) {
	var req models.AuditPlanRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	resp, err := h.engine.PlanAudit(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("audit planned", "election_id", req.ElectionID, "audit_id", resp.AuditID)

	middleware.JSONResponse(w, models.StatusAudited, resp)
}
