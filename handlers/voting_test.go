// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/live-tally/models"
	"github.com/danielhkuo/live-tally/tally"
	"github.com/danielhkuo/live-tally/testutil"
)

func setupVotingTest(t *testing.T) (*VotingHandler, string, string, string) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	store := tally.NewStore(conn)
	electionID := testutil.CreateTestElection(t, conn, models.StatusActive, 10)
	positionID := testutil.AddTestPosition(t, conn, electionID, "Chairperson", 0)
	candA := testutil.AddTestCandidate(t, conn, positionID, "A", 0)
	testutil.AddTestCandidate(t, conn, positionID, "B", 1)
	return NewVotingHandler(store), electionID, positionID, candA
}

func castVoteRequest(electionID, voterID string, body interface{}) *http.Request {
	headers := map[string]string{}
	if voterID != "" {
		headers["X-Voter-ID"] = voterID
	}
	req := testutil.MakeRequest("POST", "/vote/elections/"+electionID+"/ballots", body, headers)
	req.SetPathValue("electionId", electionID)
	return req
}

func TestCastVoteHandler(t *testing.T) {
	handler, electionID, positionID, candA := setupVotingTest(t)

	body := models.CastVoteRequest{Selections: map[string]string{positionID: candA}}
	w := httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(electionID, "V1", body))

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CastVoteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.BallotID == "" {
		t.Error("Expected a ballot_id in response")
	}
}

func TestCastVoteRequiresVoterHeader(t *testing.T) {
	handler, electionID, positionID, candA := setupVotingTest(t)

	body := models.CastVoteRequest{Selections: map[string]string{positionID: candA}}
	w := httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(electionID, "", body))

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestCastVoteEmptySelections(t *testing.T) {
	handler, electionID, _, _ := setupVotingTest(t)

	body := models.CastVoteRequest{Selections: map[string]string{}}
	w := httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(electionID, "V1", body))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestCastVoteInvalidSelection(t *testing.T) {
	handler, electionID, positionID, _ := setupVotingTest(t)

	body := models.CastVoteRequest{Selections: map[string]string{positionID: "not-a-candidate"}}
	w := httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(electionID, "V1", body))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestCastVoteDuplicate(t *testing.T) {
	handler, electionID, positionID, candA := setupVotingTest(t)

	body := models.CastVoteRequest{Selections: map[string]string{positionID: candA}}
	w := httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(electionID, "V1", body))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(electionID, "V1", body))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestCastVoteUnknownElectionHandler(t *testing.T) {
	handler, _, positionID, candA := setupVotingTest(t)

	body := models.CastVoteRequest{Selections: map[string]string{positionID: candA}}
	w := httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest("no-such-election", "V1", body))

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestCastVoteInactiveElection(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := tally.NewStore(conn)
	handler := NewVotingHandler(store)

	electionID := testutil.CreateTestElection(t, conn, models.StatusClosed, 10)
	positionID := testutil.AddTestPosition(t, conn, electionID, "Chairperson", 0)
	candA := testutil.AddTestCandidate(t, conn, positionID, "A", 0)

	body := models.CastVoteRequest{Selections: map[string]string{positionID: candA}}
	w := httptest.NewRecorder()
	handler.CastVote(w, castVoteRequest(electionID, "V1", body))

	testutil.AssertStatus(t, w, http.StatusConflict)
}
