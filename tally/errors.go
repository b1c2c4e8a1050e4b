// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"errors"
	"fmt"
)

// ErrElectionNotFound is returned when the election id is unknown.
var ErrElectionNotFound = errors.New("election not found")

// ElectionStateError is returned when a ballot targets an election
// that is not active. Recoverable: the caller submitted to the wrong
// election or at the wrong time, no state was mutated.
type ElectionStateError struct {
	ElectionID string
	Status     string
}

func (e *ElectionStateError) Error() string {
	return fmt.Sprintf("election %s is not active (status: %s)", e.ElectionID, e.Status)
}

// InvalidSelectionError is returned when a ballot references an
// unknown position or candidate, pairs a candidate with the wrong
// position, or omits a position. Rejected before any mutation.
type InvalidSelectionError struct {
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return "invalid selection: " + e.Reason
}

// DuplicateVoteError is returned when the voter already has a
// committed ballot for the election. Terminal for that voter: no
// retry changes the outcome.
type DuplicateVoteError struct {
	ElectionID string
}

func (e *DuplicateVoteError) Error() string {
	return fmt.Sprintf("voter already has a committed ballot for election %s", e.ElectionID)
}

// TallyCommitError wraps a storage failure during ballot commit. The
// transaction was rolled back; the whole ballot may be retried.
type TallyCommitError struct {
	Err error
}

func (e *TallyCommitError) Error() string {
	return "ballot commit failed: " + e.Err.Error()
}

func (e *TallyCommitError) Unwrap() error {
	return e.Err
}
