// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Election status constants
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusClosed    = "closed"
	StatusCancelled = "cancelled"
)

// Realtime message type constants
const (
	MsgSubscribe      = "subscribe"
	MsgUnsubscribe    = "unsubscribe"
	MsgInitialResults = "initial-results"
	MsgVoteUpdate     = "vote-update"
	MsgElectionStatus = "election-status"
	MsgError          = "error"
)

// Request types

// position_id -> candidate_id, one selection per position
type CastVoteRequest struct {
	Selections map[string]string `json:"selections"`
}

type CreateElectionRequest struct {
	Title              string                  `json:"title"`
	EligibleVoterCount int                     `json:"eligible_voter_count"`
	Positions          []CreatePositionRequest `json:"positions"`
}

type CreatePositionRequest struct {
	Name       string   `json:"name"`
	Candidates []string `json:"candidates"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

// Response types

type CastVoteResponse struct {
	BallotID string `json:"ballot_id"`
}

type CreateElectionResponse struct {
	Election  Election                 `json:"election"`
	AdminKey  string                   `json:"admin_key"`
	Positions []PositionWithCandidates `json:"positions"`
}

type SetStatusResponse struct {
	Election Election `json:"election"`
}

// Domain types

type Election struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Status             string    `json:"status"`
	EligibleVoterCount int       `json:"eligible_voter_count"`
	TotalVotesCast     int       `json:"total_votes_cast"`
	TurnoutPercentage  float64   `json:"turnout_percentage"`
	CreatedAt          time.Time `json:"created_at"`
}

type Position struct {
	ID         string `json:"id"`
	ElectionID string `json:"election_id"`
	Name       string `json:"name"`
	TotalVotes int    `json:"total_votes"`
}

type Candidate struct {
	ID             string  `json:"id"`
	PositionID     string  `json:"position_id"`
	Name           string  `json:"name"`
	VotesCount     int     `json:"votes_count"`
	VotePercentage float64 `json:"vote_percentage"`
}

type PositionWithCandidates struct {
	Position   Position    `json:"position"`
	Candidates []Candidate `json:"candidates"`
}

type Ballot struct {
	ID          string    `json:"id"`
	ElectionID  string    `json:"election_id"`
	VoterID     string    `json:"-"` // Never expose in JSON
	SubmittedAt time.Time `json:"submitted_at"`
}

// Snapshot types

// ElectionResults is the authoritative point-in-time snapshot for an
// election: every position with its candidates sorted by rank.
type ElectionResults struct {
	Election  Election          `json:"election"`
	Positions []PositionResults `json:"positions"`
}

type PositionResults struct {
	Position   Position    `json:"position"`
	Candidates []Candidate `json:"candidates"` // sorted by rank
}

// Realtime wire types

// ClientMessage is what a realtime client sends: subscribe/unsubscribe.
type ClientMessage struct {
	Type       string `json:"type"`
	ElectionID string `json:"election_id"`
}

type InitialResultsMessage struct {
	Type       string          `json:"type"` // "initial-results"
	ElectionID string          `json:"election_id"`
	Results    ElectionResults `json:"results"`
}

// VoteUpdateMessage carries the complete refreshed candidate list for
// the affected position so clients never merge partial deltas, plus
// the fields of the candidate whose count changed.
type VoteUpdateMessage struct {
	Type                string      `json:"type"` // "vote-update"
	ElectionID          string      `json:"election_id"`
	PositionID          string      `json:"position_id"`
	CandidateID         string      `json:"candidate_id"`
	CandidateVotes      int         `json:"candidate_votes"`
	CandidatePercentage float64     `json:"candidate_percentage"`
	TotalVotesPosition  int         `json:"total_votes_position"`
	Candidates          []Candidate `json:"candidates"` // sorted by rank
}

type ElectionStatusMessage struct {
	Type              string  `json:"type"` // "election-status"
	ElectionID        string  `json:"election_id"`
	Status            string  `json:"status"`
	TotalVotesCast    int     `json:"total_votes_cast"`
	TurnoutPercentage float64 `json:"turnout_percentage"`
}

type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
