// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Live Tally API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, hub, cfg)

# Endpoints

Health:

	GET /health

Voting (public, voter identity via X-Voter-ID):

	POST /vote/elections/{electionId}/ballots - Cast a ballot

Results (public):

	GET /vote/results/{electionId} - Reconciliation snapshot

Realtime:

	GET /vote/live - Websocket channel (subscribe/unsubscribe)

Admin hooks (external CRUD collaborator, requires X-Admin-Key for
mutations on existing elections):

	POST /admin/elections                     - Register fixture
	POST /admin/elections/{electionId}/status - Transition status
*/
package router
