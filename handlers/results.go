// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/store"
)

// ResultArchive keeps point-in-time copies of the results view.
// *db.SnapshotStore implements it.
type ResultArchive interface {
	Save(ctx context.Context, results models.Results, computedAt time.Time) (models.ResultSnapshot, error)
	List(ctx context.Context) ([]models.ResultSnapshot, error)
	Get(ctx context.Context, id string) (models.ResultSnapshot, error)
}

type ResultsHandler struct {
	store   *store.Store
	archive ResultArchive // nil when no database is configured
}

func NewResultsHandler(st *store.Store, archive ResultArchive) *ResultsHandler {
	return &ResultsHandler{store: st, archive: archive}
}

// Results handles GET /api/results
func (h *ResultsHandler) Results(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, models.StatusResults, h.store.Results())
}

// Winner handles GET /api/results/winner
func (h *ResultsHandler) Winner(w http.ResponseWriter, r *http.Request) {
	winner, err := h.store.Winner()
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, models.StatusWinner, winner)
}

// CreateSnapshot handles POST /api/results/snapshots
func (h *ResultsHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		writeError(w, r, errArchiveDisabled)
		return
	}

	snap, err := h.archive.Save(r.Context(), h.store.Results(), time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("results archived", "snapshot_id", snap.ID, "total_votes", snap.TotalVotes)

	middleware.JSONResponse(w, http.StatusCreated, snap)
}

// ListSnapshots handles GET /api/results/snapshots
func (h *ResultsHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		writeError(w, r, errArchiveDisabled)
		return
	}

	snaps, err := h.archive.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListSnapshotsResponse{
		Total:     len(snaps),
		Snapshots: snaps,
	})
}

// GetSnapshot handles GET /api/results/snapshots/{id}
func (h *ResultsHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		writeError(w, r, errArchiveDisabled)
		return
	}

	snap, err := h.archive.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, snap)
}
