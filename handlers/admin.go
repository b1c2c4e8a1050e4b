// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/live-tally/auth"
	"github.com/danielhkuo/live-tally/cliparse"
	"github.com/danielhkuo/live-tally/middleware"
	"github.com/danielhkuo/live-tally/models"
	"github.com/danielhkuo/live-tally/rooms"
	"github.com/danielhkuo/live-tally/tally"
)

// AdminHandler exposes the hooks the external election CRUD service
// calls: fixture registration and status transitions. Status changes
// fan out to the election's observers as election-status messages.
type AdminHandler struct {
	store *tally.Store
	hub   *rooms.Hub
	cfg   cliparse.Config
}

func NewAdminHandler(store *tally.Store, hub *rooms.Hub, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: store, hub: hub, cfg: cfg}
}

// CreateElection handles POST /admin/elections
func (h *AdminHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Positions) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one position is required")
		return
	}
	for _, pos := range req.Positions {
		if pos.Name == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "position name is required")
			return
		}
		if len(pos.Candidates) == 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "position "+pos.Name+" needs at least one candidate")
			return
		}
	}

	election, positions, err := h.store.CreateElection(r.Context(), req)
	if err != nil {
		slog.Error("failed to create election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	slog.Info("election created", "election_id", election.ID, "positions", len(positions))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		Election:  election,
		AdminKey:  auth.GenerateAdminKey(election.ID, h.cfg.AdminKeySalt),
		Positions: positions,
	})
}

// SetStatus handles POST /admin/elections/:electionId/status
// Requires the X-Admin-Key header. A successful transition is
// broadcast to the election's room with refreshed totals.
func (h *AdminHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionId")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "electionId is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if adminKey == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Admin-Key header required")
		return
	}
	if err := auth.ValidateAdminKey(electionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, "Invalid admin key")
		return
	}

	var req models.SetStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	switch req.Status {
	case models.StatusActive, models.StatusClosed, models.StatusCancelled:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid status: "+req.Status)
		return
	}

	election, err := h.store.SetStatus(r.Context(), electionID, req.Status)
	if err != nil {
		var stateErr *tally.ElectionStateError
		switch {
		case errors.Is(err, tally.ErrElectionNotFound):
			middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		case errors.As(err, &stateErr):
			middleware.ErrorResponse(w, http.StatusConflict, "transition not allowed from status "+stateErr.Status)
		default:
			slog.Error("failed to set status", "election_id", electionID, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update status")
		}
		return
	}

	h.hub.Broadcast(election.ID, models.ElectionStatusMessage{
		Type:              models.MsgElectionStatus,
		ElectionID:        election.ID,
		Status:            election.Status,
		TotalVotesCast:    election.TotalVotesCast,
		TurnoutPercentage: election.TurnoutPercentage,
	})

	slog.Info("election status changed", "election_id", election.ID, "status", election.Status)

	middleware.JSONResponse(w, http.StatusOK, models.SetStatusResponse{Election: election})
}
