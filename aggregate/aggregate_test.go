// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/danielhkuo/live-tally/aggregate"
	"github.com/danielhkuo/live-tally/models"
	"github.com/danielhkuo/live-tally/rooms"
	"github.com/danielhkuo/live-tally/tally"
	"github.com/danielhkuo/live-tally/testutil"
)

func recvUpdate(t *testing.T, sub *rooms.Subscriber) models.VoteUpdateMessage {
	t.Helper()
	select {
	case msg, ok := <-sub.C():
		if !ok {
			t.Fatal("Subscriber channel closed unexpectedly")
		}
		update, ok := msg.(models.VoteUpdateMessage)
		if !ok {
			t.Fatalf("Expected VoteUpdateMessage, got %T", msg)
		}
		return update
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for vote update")
		return models.VoteUpdateMessage{}
	}
}

// TestCommitBroadcastsRefreshedPosition wires the full pipeline:
// commit -> aggregator -> room, and checks the broadcast carries the
// complete recomputed candidate list.
func TestCommitBroadcastsRefreshedPosition(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := tally.NewStore(conn)
	hub := rooms.NewHub(32)
	agg := aggregate.New(store, hub, 32)
	defer agg.Close()
	store.OnCommit(agg.Enqueue)

	electionID := testutil.CreateTestElection(t, conn, models.StatusActive, 10)
	positionID := testutil.AddTestPosition(t, conn, electionID, "Chairperson", 0)
	candA := testutil.AddTestCandidate(t, conn, positionID, "A", 0)
	candB := testutil.AddTestCandidate(t, conn, positionID, "B", 1)

	sub := hub.Register("observer")
	hub.Subscribe(sub, electionID)

	if _, err := store.CastVote(context.Background(), "V1", electionID, map[string]string{positionID: candA}); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	update := recvUpdate(t, sub)
	if update.Type != models.MsgVoteUpdate {
		t.Errorf("Expected type vote-update, got %s", update.Type)
	}
	if update.ElectionID != electionID || update.PositionID != positionID {
		t.Errorf("Update routed wrong: election=%s position=%s", update.ElectionID, update.PositionID)
	}
	if update.CandidateID != candA || update.CandidateVotes != 1 || update.CandidatePercentage != 100.00 {
		t.Errorf("Touched candidate fields wrong: %+v", update)
	}
	if update.TotalVotesPosition != 1 {
		t.Errorf("Expected totalVotesPosition=1, got %d", update.TotalVotesPosition)
	}
	if len(update.Candidates) != 2 {
		t.Fatalf("Expected full candidate list, got %d entries", len(update.Candidates))
	}
	if update.Candidates[0].ID != candA || update.Candidates[1].ID != candB {
		t.Errorf("Candidate list not ranked: %+v", update.Candidates)
	}
}

// TestUpdatesAreMonotonic drives a sequence of ballots and checks the
// observed per-position totals never decrease, the forward-consistency
// guarantee a reconnecting client relies on.
func TestUpdatesAreMonotonic(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := tally.NewStore(conn)
	hub := rooms.NewHub(64)
	agg := aggregate.New(store, hub, 64)
	defer agg.Close()
	store.OnCommit(agg.Enqueue)

	electionID := testutil.CreateTestElection(t, conn, models.StatusActive, 50)
	positionID := testutil.AddTestPosition(t, conn, electionID, "Chairperson", 0)
	candA := testutil.AddTestCandidate(t, conn, positionID, "A", 0)
	candB := testutil.AddTestCandidate(t, conn, positionID, "B", 1)

	sub := hub.Register("observer")
	hub.Subscribe(sub, electionID)

	const numBallots = 10
	for i := 0; i < numBallots; i++ {
		candidate := candA
		if i%2 == 1 {
			candidate = candB
		}
		voterID := fmt.Sprintf("voter-%d", i)
		if _, err := store.CastVote(context.Background(), voterID, electionID, map[string]string{positionID: candidate}); err != nil {
			t.Fatalf("CastVote failed: %v", err)
		}
	}

	lastTotal := 0
	lastCounts := map[string]int{}
	for i := 0; i < numBallots; i++ {
		update := recvUpdate(t, sub)
		if update.TotalVotesPosition < lastTotal {
			t.Errorf("Position total decreased: %d after %d", update.TotalVotesPosition, lastTotal)
		}
		lastTotal = update.TotalVotesPosition
		for _, c := range update.Candidates {
			if c.VotesCount < lastCounts[c.ID] {
				t.Errorf("Candidate %s count decreased: %d after %d", c.Name, c.VotesCount, lastCounts[c.ID])
			}
			lastCounts[c.ID] = c.VotesCount
		}
	}

	if lastTotal != numBallots {
		t.Errorf("Final observed total %d, want %d", lastTotal, numBallots)
	}
}

// TestPositionsRecomputeIndependently: updates for one position keep
// flowing while another position also churns.
func TestPositionsRecomputeIndependently(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := tally.NewStore(conn)
	hub := rooms.NewHub(64)
	agg := aggregate.New(store, hub, 64)
	defer agg.Close()
	store.OnCommit(agg.Enqueue)

	electionID := testutil.CreateTestElection(t, conn, models.StatusActive, 50)
	pos1 := testutil.AddTestPosition(t, conn, electionID, "Chairperson", 0)
	pos2 := testutil.AddTestPosition(t, conn, electionID, "Secretary", 1)
	cand1 := testutil.AddTestCandidate(t, conn, pos1, "A", 0)
	cand2 := testutil.AddTestCandidate(t, conn, pos2, "B", 0)

	sub := hub.Register("observer")
	hub.Subscribe(sub, electionID)

	const numBallots = 5
	for i := 0; i < numBallots; i++ {
		voterID := fmt.Sprintf("voter-%d", i)
		selections := map[string]string{pos1: cand1, pos2: cand2}
		if _, err := store.CastVote(context.Background(), voterID, electionID, selections); err != nil {
			t.Fatalf("CastVote failed: %v", err)
		}
	}

	seen := map[string]int{}
	for i := 0; i < numBallots*2; i++ {
		update := recvUpdate(t, sub)
		seen[update.PositionID]++
	}
	if seen[pos1] != numBallots || seen[pos2] != numBallots {
		t.Errorf("Expected %d updates per position, got %v", numBallots, seen)
	}
}

func TestCloseStopsAcceptingWork(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := tally.NewStore(conn)
	hub := rooms.NewHub(8)
	agg := aggregate.New(store, hub, 8)

	agg.Close()

	// Enqueue after Close must be a silent no-op
	agg.Enqueue(tally.Increment{ElectionID: "e", PositionID: "p", CandidateID: "c", VotesCount: 1})
}
