// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db archives computed election results in SQL.

Voters, candidates and votes live in memory only (package store). The
archive is optional and keeps point-in-time copies of the results view so
they survive a restart.

# Connecting

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

DatabaseType "sqlite" uses modernc.org/sqlite (pure Go, no cgo);
"postgres" uses github.com/lib/pq. Queries use $N placeholders, which
both drivers accept.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - result_snapshot: id, computed_at, total_votes, total_ballots, and the
    full results view as JSON text in payload

# Snapshots

	archive := db.NewSnapshotStore(conn)
	snap, err := archive.Save(ctx, st.Results(), time.Now())
	all, err := archive.List(ctx) // newest first
	one, err := archive.Get(ctx, snap.ID)

Get returns ErrSnapshotNotFound for unknown ids.
*/
package db
