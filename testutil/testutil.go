// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/store"
)

// Clock is a manually advanced time source for deterministic timestamps
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ClockStart is where NewTestStore's clock begins
var ClockStart = time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC)

// NewTestStore returns an empty store driven by a manual clock
func NewTestStore(t *testing.T) (*store.Store, *Clock) {
	t.Helper()

	clock := NewClock(ClockStart)
	return store.New(store.WithClock(clock.Now)), clock
}

// OpenTestArchive creates a result archive in a temporary sqlite file
func OpenTestArchive(t *testing.T) *db.SnapshotStore {
	t.Helper()

	conn, err := db.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db.NewSnapshotStore(conn)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         cliparse.DefaultPort,
		Env:          cliparse.EnvDevelopment,
		DatabaseType: "sqlite",
	}
}

// CreateTestVoter registers a valid voter whose email is derived from name
func CreateTestVoter(t *testing.T, st *store.Store, name string) models.Voter {
	t.Helper()

	v, err := st.RegisterVoter(models.CreateVoterRequest{
		FullName: name,
		Email:    fmt.Sprintf("%s@example.com", slug(name)),
		Age:      30,
		Address:  "123 Main Street",
		Phone:    "+15551234567",
	})
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return v
}

// CreateTestCandidate registers a valid candidate
func CreateTestCandidate(t *testing.T, st *store.Store, name, party string) models.Candidate {
	t.Helper()

	c, err := st.RegisterCandidate(models.CreateCandidateRequest{
		FullName:  name,
		PartyName: party,
		Age:       45,
	})
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return c
}

// CastTestVote records a simple vote
func CastTestVote(t *testing.T, st *store.Store, voterID, candidateID int) models.Vote {
	t.Helper()

	v, err := st.CastVote(voterID, candidateID, models.ModeSimple)
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}

	return v
}

func slug(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '.')
		}
	}
	return string(out)
}

// MakeRequest creates an HTTP test request. A string body is sent verbatim;
// anything else is JSON encoded.
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(b)))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks the status code and the error body's message
func AssertError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	AssertStatus(t, w, status)

	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Message != message {
		t.Errorf("Expected message '%s', got '%s'", message, resp.Message)
	}
}
