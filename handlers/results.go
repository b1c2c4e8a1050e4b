// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/live-tally/middleware"
	"github.com/danielhkuo/live-tally/tally"
)

type ResultsHandler struct {
	store *tally.Store
}

func NewResultsHandler(store *tally.Store) *ResultsHandler {
	return &ResultsHandler{store: store}
}

// GetResults handles GET /vote/results/:electionId
// Returns the authoritative reconciliation snapshot, computed from
// the tally counters on every call. Readable for any election status,
// including closed ones.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionId")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "electionId is required")
		return
	}

	results, err := h.store.Results(r.Context(), electionID)
	if errors.Is(err, tally.ErrElectionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to compute results", "election_id", electionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
