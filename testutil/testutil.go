// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/live-tally/cliparse"
	"github.com/danielhkuo/live-tally/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each call gets its own database, so tests are isolated and
// need no external services. The pool is pinned to one connection to
// keep SQLite's write serialization out of the way; application-level
// races are still exercised.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:                3320,
		DatabaseURL:         ":memory:",
		DatabaseType:        "sqlite",
		AdminKeySalt:        "test-admin-salt",
		CommitQueueSize:     cliparse.DefaultCommitQueueSize,
		SubscriberQueueSize: cliparse.DefaultSubscriberQueueSize,
	}
}

// CreateTestElection inserts an election row and returns its ID.
// status should be "draft", "active", "closed", or "cancelled".
func CreateTestElection(t *testing.T, conn *sql.DB, status string, eligibleVoters int) string {
	t.Helper()

	electionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO election (id, title, status, eligible_voter_count, total_votes_cast, created_at)
		VALUES ($1, 'Test Election', $2, $3, 0, $4)
	`, electionID, status, eligibleVoters, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return electionID
}

// AddTestPosition adds a position to an election and returns its ID
func AddTestPosition(t *testing.T, conn *sql.DB, electionID, name string, order int) string {
	t.Helper()

	positionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO position (id, election_id, name, total_votes, position_order)
		VALUES ($1, $2, $3, 0, $4)
	`, positionID, electionID, name, order)
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}

	return positionID
}

// AddTestCandidate adds a candidate to a position and returns its ID.
// order is the registration order used for rank tiebreaking.
func AddTestCandidate(t *testing.T, conn *sql.DB, positionID, name string, order int) string {
	t.Helper()

	candidateID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, position_id, name, votes_count, registered_order)
		VALUES ($1, $2, $3, 0, $4)
	`, candidateID, positionID, name, order)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
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
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
