// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Live Tally API server.

Live Tally is a real-time election results service: it ingests cast
ballots, maintains authoritative per-candidate and per-election
counters, and pushes incremental result updates to every observer
watching an election.

# Starting the Server

The server requires environment variables or CLI flags for
configuration:

	DATABASE_URL=file:live-tally.db go run main.go

Or with flags:

	go run main.go -p 3320 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3320)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - COMMIT_QUEUE_SIZE, SUBSCRIBER_QUEUE_SIZE: pipeline queue bounds

# Architecture

Ballots flow through an explicit pipeline:

	castVote -> tally.Store (atomic commit) -> aggregate.Aggregator
	  (per-position recompute) -> rooms.Hub (fan-out to observers)

Packages:

  - tally: authoritative counters, ballot ingestion, snapshots
  - aggregate: per-position recomputation workers
  - rooms: subscription registry and broadcast dispatcher
  - handlers: HTTP and websocket request handlers
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response and wire types
  - auth: admin key generation and validation
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
