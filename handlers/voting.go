// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/live-tally/middleware"
	"github.com/danielhkuo/live-tally/models"
	"github.com/danielhkuo/live-tally/tally"
)

type VotingHandler struct {
	store *tally.Store
}

func NewVotingHandler(store *tally.Store) *VotingHandler {
	return &VotingHandler{store: store}
}

// CastVote handles POST /vote/elections/:electionId/ballots
// The voter identity arrives in X-Voter-ID, already validated by the
// upstream eligibility service. The whole ballot commits or none of
// it does; every error here is synchronous and maps onto the vote
// error taxonomy.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionId")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "electionId is required")
		return
	}

	voterID := r.Header.Get("X-Voter-ID")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-ID header required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Selections) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "selections cannot be empty")
		return
	}

	ballot, err := h.store.CastVote(r.Context(), voterID, electionID, req.Selections)
	if err != nil {
		writeCastVoteError(w, electionID, err)
		return
	}

	slog.Info("ballot committed", "election_id", electionID, "ballot_id", ballot.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{BallotID: ballot.ID})
}

func writeCastVoteError(w http.ResponseWriter, electionID string, err error) {
	var stateErr *tally.ElectionStateError
	var selectionErr *tally.InvalidSelectionError
	var duplicateErr *tally.DuplicateVoteError
	var commitErr *tally.TallyCommitError

	switch {
	case errors.Is(err, tally.ErrElectionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
	case errors.As(err, &stateErr):
		middleware.ErrorResponse(w, http.StatusConflict, stateErr.Error())
	case errors.As(err, &selectionErr):
		middleware.ErrorResponse(w, http.StatusBadRequest, selectionErr.Error())
	case errors.As(err, &duplicateErr):
		middleware.ErrorResponse(w, http.StatusConflict, duplicateErr.Error())
	case errors.As(err, &commitErr):
		slog.Error("ballot commit failed", "election_id", electionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to commit ballot, retry the whole ballot")
	default:
		slog.Error("unexpected cast vote failure", "election_id", electionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
