// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. The DDL is portable between PostgreSQL (production) and
SQLite (dev and tests), so avoid Postgres-only column types.

# Tables

The schema includes:

  - election: Election metadata, lifecycle state, and ballot counter
  - position: Contested positions with their vote totals
  - candidate: Candidates with monotonic vote counters
  - ballot: One ballot per voter per election
  - ballot_selection: One candidate selection per (ballot, position)

# Relationships

	election 1──* position
	position 1──* candidate
	election 1──* ballot
	ballot   1──* ballot_selection

All foreign keys use ON DELETE CASCADE.

# Invariant-bearing Constraints

  - ballot UNIQUE (election_id, voter_id): the duplicate-vote guard;
    ingestion relies on this index rather than a check-then-insert
  - candidate.registered_order: stable rank tiebreaker
*/
package db
