// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally_test

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/live-tally/models"
	"github.com/danielhkuo/live-tally/tally"
	"github.com/danielhkuo/live-tally/testutil"
)

func TestCreateElection(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := tally.NewStore(conn)

	req := models.CreateElectionRequest{
		Title:              "Student Council 2026",
		EligibleVoterCount: 500,
		Positions: []models.CreatePositionRequest{
			{Name: "Chairperson", Candidates: []string{"A", "B"}},
			{Name: "Secretary", Candidates: []string{"C"}},
		},
	}

	election, positions, err := store.CreateElection(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateElection failed: %v", err)
	}

	if election.Status != models.StatusDraft {
		t.Errorf("New election should be draft, got %s", election.Status)
	}
	if election.TotalVotesCast != 0 {
		t.Errorf("New election should have 0 votes, got %d", election.TotalVotesCast)
	}
	if len(positions) != 2 {
		t.Fatalf("Expected 2 positions, got %d", len(positions))
	}
	if len(positions[0].Candidates) != 2 || len(positions[1].Candidates) != 1 {
		t.Errorf("Candidate counts wrong: %d, %d", len(positions[0].Candidates), len(positions[1].Candidates))
	}

	// Fixture must be readable through the snapshot path
	results, err := store.Results(context.Background(), election.ID)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if len(results.Positions) != 2 {
		t.Errorf("Snapshot has %d positions, want 2", len(results.Positions))
	}
	if results.Positions[0].Position.Name != "Chairperson" {
		t.Errorf("Position order not preserved: first is %s", results.Positions[0].Position.Name)
	}
}

func TestSetStatusTransitions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := tally.NewStore(conn)

	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"draft to active", models.StatusDraft, models.StatusActive, true},
		{"draft to cancelled", models.StatusDraft, models.StatusCancelled, true},
		{"active to closed", models.StatusActive, models.StatusClosed, true},
		{"active to cancelled", models.StatusActive, models.StatusCancelled, true},
		{"draft to closed", models.StatusDraft, models.StatusClosed, false},
		{"closed to active", models.StatusClosed, models.StatusActive, false},
		{"cancelled to active", models.StatusCancelled, models.StatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			electionID := testutil.CreateTestElection(t, conn, tt.from, 10)
			election, err := store.SetStatus(context.Background(), electionID, tt.to)

			if tt.allowed {
				if err != nil {
					t.Fatalf("Expected transition to succeed, got %v", err)
				}
				if election.Status != tt.to {
					t.Errorf("Expected status %s, got %s", tt.to, election.Status)
				}
				return
			}

			var stateErr *tally.ElectionStateError
			if !errors.As(err, &stateErr) {
				t.Fatalf("Expected ElectionStateError, got %v", err)
			}
		})
	}
}

func TestSetStatusUnknownElection(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := tally.NewStore(conn)

	_, err := store.SetStatus(context.Background(), "no-such-election", models.StatusActive)
	if !errors.Is(err, tally.ErrElectionNotFound) {
		t.Fatalf("Expected ErrElectionNotFound, got %v", err)
	}
}
