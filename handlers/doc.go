// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP and websocket request handlers for the
Live Tally API.

# Handler Types

Each handler is a struct with its dependencies injected via a
constructor:

  - VotingHandler: ballot submission (castVote)
  - ResultsHandler: reconciliation snapshots
  - AdminHandler: collaborator hooks (election fixtures, status)
  - LiveHandler: the realtime websocket channel

# Voting Flow

The upstream eligibility service authenticates voters and forwards
their identity in the X-Voter-ID header:

	POST /vote/elections/{electionId}/ballots -> CastVote

The whole ballot commits atomically; errors map onto the tally
package's taxonomy (400 invalid selection, 409 duplicate or wrong
state, 404 unknown election, 500 commit failure).

# Results

	GET /vote/results/{electionId} -> GetResults

Snapshots are computed from the counters on every call and stay
readable after an election closes.

# Realtime Channel

/vote/live speaks JSON over websocket. Clients send subscribe and
unsubscribe messages; the server answers a subscribe with one
initial-results snapshot and thereafter pushes vote-update and
election-status messages for the subscribed election. Push failures
are isolated to the failing connection.

# Admin Hooks

The external election CRUD service registers fixtures and drives
status transitions:

	POST /admin/elections                     -> CreateElection
	POST /admin/elections/{electionId}/status -> SetStatus

Status changes require the X-Admin-Key header (HMAC over the election
id).
*/
package handlers
