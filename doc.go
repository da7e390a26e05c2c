// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballot box API server.

Ballot box is an in-memory election service: voter and candidate
registries, a one-vote-per-voter ledger, live results, and a set of
clearly labelled simulated endpoints (encrypted ballots, homomorphic
tally, differential privacy, risk-limiting audit plans).

# Starting the Server

With no configuration the server listens on 8001 in development mode:

	go run .

Or with flags:

	go run . -p 9000 -e production
	go run . -seed -d ./archive.db

# Configuration

Settings come from flags, then environment variables, then a .env file:

  - PORT (-p): Server port (default: 8001)
  - APP_ENV (-e): development or production (default: development)
  - SEED_DATA (-seed): load sample data at startup (development only)
  - DATABASE_URL (-d): result archive location; empty disables the archive
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)

# Architecture

  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, recovery, JSON helpers
  - store: Registries and ledger behind one lock
  - tally: Leaderboard and winner computation
  - timeparse: Timestamp normalization for range queries
  - validate: Request decoding and field validation
  - simulation: Simulated cryptographic and analytics endpoints
  - token: Random identifiers and Keccak digests
  - db: Optional sqlite/postgres result archive
  - seed: Sample data
  - cliparse: Configuration parsing

All state lives in memory and is lost on restart. SIGINT and SIGTERM
drain in-flight requests for up to five seconds before exiting.
*/
package main
