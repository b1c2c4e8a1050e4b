// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/live-tally/cliparse"
	"github.com/danielhkuo/live-tally/handlers"
	"github.com/danielhkuo/live-tally/middleware"
	"github.com/danielhkuo/live-tally/rooms"
	"github.com/danielhkuo/live-tally/tally"
)

func NewRouter(store *tally.Store, hub *rooms.Hub, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	resultsHandler := handlers.NewResultsHandler(store)
	votingHandler := handlers.NewVotingHandler(store)
	adminHandler := handlers.NewAdminHandler(store, hub, cfg)
	liveHandler := handlers.NewLiveHandler(store, hub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voting operations (public, voter identity via X-Voter-ID)
	mux.HandleFunc("POST /vote/elections/{electionId}/ballots", middleware.WithLogging(votingHandler.CastVote))

	// Reconciliation snapshot (public)
	mux.HandleFunc("GET /vote/results/{electionId}", middleware.WithLogging(resultsHandler.GetResults))

	// Realtime results channel (websocket handshake is a GET)
	mux.Handle("GET /vote/live", liveHandler.Handler())

	// Collaborator hooks for the external election CRUD service
	mux.HandleFunc("POST /admin/elections", middleware.WithLogging(adminHandler.CreateElection))
	mux.HandleFunc("POST /admin/elections/{electionId}/status", middleware.WithLogging(adminHandler.SetStatus))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("live-tally API v1"))
	})

	return mux
}
