// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/token"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Fixed width so computed_at sorts correctly as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SnapshotStore archives computed results. Snapshots are immutable.
type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save stores results as a new snapshot computed at computedAt
func (s *SnapshotStore) Save(ctx context.Context, results models.Results, computedAt time.Time) (models.ResultSnapshot, error) {
	id, err := token.PrefixedID("snap", 8)
	if err != nil {
		return models.ResultSnapshot{}, err
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to encode results: %w", err)
	}

	computedAt = computedAt.UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO result_snapshot (id, computed_at, total_votes, total_ballots, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, id, computedAt.Format(timeLayout), results.TotalVotes, results.TotalBallots, string(payload))
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to save snapshot: %w", err)
	}

	return models.ResultSnapshot{
		ID:           id,
		ComputedAt:   computedAt,
		TotalVotes:   results.TotalVotes,
		TotalBallots: results.TotalBallots,
		Results:      results,
	}, nil
}

func (s *SnapshotStore) Get(ctx context.Context, id string) (models.ResultSnapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, computed_at, total_votes, total_ballots, payload
		FROM result_snapshot
		WHERE id = $1
	`, id)

	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ResultSnapshot{}, ErrSnapshotNotFound
	}
	return snap, err
}

// List returns every snapshot, newest first
func (s *SnapshotStore) List(ctx context.Context) ([]models.ResultSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, computed_at, total_votes, total_ballots, payload
		FROM result_snapshot
		ORDER BY computed_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []models.ResultSnapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (models.ResultSnapshot, error) {
	var (
		snap       models.ResultSnapshot
		computedAt string
		payload    string
	)

	if err := row.Scan(&snap.ID, &computedAt, &snap.TotalVotes, &snap.TotalBallots, &payload); err != nil {
		return models.ResultSnapshot{}, err
	}

	t, err := time.Parse(timeLayout, computedAt)
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("snapshot %s: bad computed_at: %w", snap.ID, err)
	}
	snap.ComputedAt = t

	if err := json.Unmarshal([]byte(payload), &snap.Results); err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("snapshot %s: bad payload: %w", snap.ID, err)
	}

	return snap, nil
}
