// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"time"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/simulation"
	"github.com/danielhkuo/ballotbox/store"
	"github.com/danielhkuo/ballotbox/validate"
)

// NewRouter wires every endpoint to st. archive may be nil, which turns the
// snapshot endpoints into 503s.
func NewRouter(st *store.Store, archive handlers.ResultArchive, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()
	v := validate.New()

	// Initialize handlers
	voterHandler := handlers.NewVoterHandler(st, v)
	candidateHandler := handlers.NewCandidateHandler(st, v)
	voteHandler := handlers.NewVoteHandler(st, v)
	resultsHandler := handlers.NewResultsHandler(st, archive)
	simulationHandler := handlers.NewSimulationHandler(simulation.New(st), v)
	healthHandler := handlers.NewHealthHandler(time.Now())

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Voters
	mux.HandleFunc("POST /api/voters", middleware.WithLogging(voterHandler.Register))
	mux.HandleFunc("GET /api/voters", middleware.WithLogging(voterHandler.List))
	mux.HandleFunc("GET /api/voters/{id}", middleware.WithLogging(voterHandler.Get))
	mux.HandleFunc("PUT /api/voters/{id}", middleware.WithLogging(voterHandler.Update))
	mux.HandleFunc("DELETE /api/voters/{id}", middleware.WithLogging(voterHandler.Delete))

	// Candidates
	mux.HandleFunc("POST /api/candidates", middleware.WithLogging(candidateHandler.Register))
	mux.HandleFunc("GET /api/candidates", middleware.WithLogging(candidateHandler.List))
	mux.HandleFunc("GET /api/candidates/{id}", middleware.WithLogging(candidateHandler.Get))
	mux.HandleFunc("DELETE /api/candidates/{id}", middleware.WithLogging(candidateHandler.Delete))
	mux.HandleFunc("GET /api/candidates/{id}/votes", middleware.WithLogging(candidateHandler.Votes))
	mux.HandleFunc("GET /api/parties", middleware.WithLogging(candidateHandler.Parties))

	// Votes
	mux.HandleFunc("POST /api/votes", middleware.WithLogging(voteHandler.Cast))
	mux.HandleFunc("POST /api/votes/weighted", middleware.WithLogging(voteHandler.CastWeighted))
	mux.HandleFunc("GET /api/votes/timeline", middleware.WithLogging(voteHandler.Timeline))
	mux.HandleFunc("GET /api/votes/range", middleware.WithLogging(voteHandler.Range))

	// Results
	mux.HandleFunc("GET /api/results", middleware.WithLogging(resultsHandler.Results))
	mux.HandleFunc("GET /api/results/winner", middleware.WithLogging(resultsHandler.Winner))
	mux.HandleFunc("POST /api/results/snapshots", middleware.WithLogging(resultsHandler.CreateSnapshot))
	mux.HandleFunc("GET /api/results/snapshots", middleware.WithLogging(resultsHandler.ListSnapshots))
	mux.HandleFunc("GET /api/results/snapshots/{id}", middleware.WithLogging(resultsHandler.GetSnapshot))

	// Simulated endpoints
	mux.HandleFunc("POST /api/ballots/encrypted", middleware.WithLogging(simulationHandler.EncryptedBallot))
	mux.HandleFunc("POST /api/ballots/ranked", middleware.WithLogging(simulationHandler.RankedBallot))
	mux.HandleFunc("POST /api/results/homomorphic", middleware.WithLogging(simulationHandler.HomomorphicTally))
	mux.HandleFunc("POST /api/analytics/dp", middleware.WithLogging(simulationHandler.PrivateQuery))
	mux.HandleFunc("POST /api/audits/plan", middleware.WithLogging(simulationHandler.AuditPlan))

	// Everything else
	mux.HandleFunc("/", middleware.WithLogging(handlers.NotFound))

	return middleware.CORS(middleware.WithRecovery(cfg.IsDevelopment())(mux))
}
