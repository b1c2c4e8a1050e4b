// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain, and wire types for
the API.

# Request Types

Types for parsing incoming JSON:

  - CastVoteRequest: selections (map position_id -> candidate_id)
  - CreateElectionRequest: title, eligible_voter_count, positions
  - SetStatusRequest: status

# Response Types

  - CastVoteResponse: ballot_id
  - CreateElectionResponse: election, admin_key, positions
  - SetStatusResponse: election
  - ErrorResponse: error, message

# Domain Types

  - Election: metadata, lifecycle status, ballot counter, turnout
  - Position: contested position with its vote total
  - Candidate: candidate with vote count and derived percentage
  - Ballot: voter submission metadata (voter id never serialized)
  - ElectionResults / PositionResults: ranked snapshots

# Realtime Wire Types

Client to server: ClientMessage (subscribe, unsubscribe).

Server to client: InitialResultsMessage, VoteUpdateMessage,
ElectionStatusMessage, ErrorMessage. Message type strings are the
Msg* constants.

# Constants

Status values:

	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusClosed    = "closed"
	StatusCancelled = "cancelled"
*/
package models
