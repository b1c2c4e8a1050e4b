// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally is the authoritative vote tallying engine.

# Store

Store owns the monotonic counters (candidate votes, position totals,
election ballot count) and is the only writer of ballots. Counters
only ever increase; there is no decrement and a committed ballot can
never be retracted.

# Ballot Ingestion

CastVote commits one voter's complete ballot in a single transaction:

	ballot, err := store.CastVote(ctx, voterID, electionID, selections)

Validation happens before any mutation, and the UNIQUE
(election_id, voter_id) index rejects double submissions before a
single counter is touched. Either every selection lands or none does.

# Error Taxonomy

  - ErrElectionNotFound: unknown election id
  - ElectionStateError: election not active (or transition rejected)
  - InvalidSelectionError: bad position/candidate reference, rejected
    pre-mutation
  - DuplicateVoteError: voter already voted; terminal, retries are
    pointless
  - TallyCommitError: storage failure, the whole ballot may be retried

# Increments

After a successful commit the store emits one Increment per position
selection through the OnCommit sink. Downstream consumers derive the
broadcastable view from these; the store itself never caches derived
results.

# Snapshots

Results and PositionResults compute derived percentages and rank
directly from the committed counters on every call. Ranking is votes
descending with ties broken by candidate registration order, so
repeated reads with no new votes always produce identical orderings.
*/
package tally
