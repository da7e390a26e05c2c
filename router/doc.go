// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballot box API.

# Route Registration

NewRouter builds the handler tree over one store:

	h := router.NewRouter(st, archive, cfg)

archive is optional; pass a nil interface when no database is configured.

# Endpoints

Voters:

	POST   /api/voters      - Register voter (218)
	GET    /api/voters      - List voters (223)
	GET    /api/voters/{id} - Get voter (222)
	PUT    /api/voters/{id} - Update voter (224)
	DELETE /api/voters/{id} - Remove voter (225)

Candidates:

	POST   /api/candidates            - Register candidate (226)
	GET    /api/candidates[?party=]   - List (227) or filter (230)
	GET    /api/candidates/{id}       - Get candidate
	DELETE /api/candidates/{id}       - Remove candidate (225)
	GET    /api/candidates/{id}/votes - Vote count (229)
	GET    /api/parties               - Party names

Votes:

	POST /api/votes          - Cast vote (228)
	POST /api/votes/weighted - Cast weighted vote (234)
	GET  /api/votes/timeline - Candidate timeline (233)
	GET  /api/votes/range    - Votes gained in an interval (235)

Results:

	GET  /api/results                - Leaderboard (231)
	GET  /api/results/winner         - Winner or tie (232)
	POST /api/results/snapshots      - Archive current results
	GET  /api/results/snapshots[/id] - Archived results

Simulated (every response carries "simulated": true):

	POST /api/ballots/encrypted   (236)
	POST /api/results/homomorphic (237)
	POST /api/analytics/dp        (238)
	POST /api/ballots/ranked      (239)
	POST /api/audits/plan         (240)

Unmatched routes answer with a JSON 404.

# Middleware

Every API route is wrapped in middleware.WithLogging. The mux as a whole
sits behind WithRecovery (stack traces in development only) and CORS.
*/
package router
