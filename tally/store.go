// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/live-tally/db"
	"github.com/danielhkuo/live-tally/models"
)

// Increment is one raw counter change emitted after a ballot commits.
// VotesCount is the candidate's committed count after the increment.
type Increment struct {
	ElectionID  string
	PositionID  string
	CandidateID string
	VotesCount  int
}

// Store is the authoritative tally engine: it owns the monotonic
// per-candidate, per-position and per-election counters and is the
// only writer of ballots. All mutation happens through atomic SQL
// increments inside a single transaction per ballot, so counters can
// never drift from committed ballots.
type Store struct {
	db   *sql.DB
	emit func(Increment)
}

func NewStore(database *sql.DB) *Store {
	return &Store{db: database}
}

// OnCommit registers the sink for raw increments. Increments are
// delivered after the ballot transaction commits, never before.
// Must be called before the first CastVote.
func (s *Store) OnCommit(fn func(Increment)) {
	s.emit = fn
}

// Percent returns count/total as a percentage rounded to 2 decimals.
// A zero total yields 0.00 rather than NaN.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*10000) / 100
}

// CastVote validates and commits one complete ballot atomically.
// Either every position selection and every counter increment lands,
// or nothing does. Returns the committed ballot on success.
func (s *Store) CastVote(ctx context.Context, voterID, electionID string, selections map[string]string) (models.Ballot, error) {
	if voterID == "" {
		return models.Ballot{}, &InvalidSelectionError{Reason: "voter id is required"}
	}
	if len(selections) == 0 {
		return models.Ballot{}, &InvalidSelectionError{Reason: "selections cannot be empty"}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Ballot{}, &TallyCommitError{Err: err}
	}
	defer tx.Rollback()

	// Election must exist and be active
	var status string
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM election WHERE id = $1
	`, electionID).Scan(&status)
	if err == sql.ErrNoRows {
		return models.Ballot{}, ErrElectionNotFound
	}
	if err != nil {
		return models.Ballot{}, &TallyCommitError{Err: err}
	}
	if status != models.StatusActive {
		return models.Ballot{}, &ElectionStateError{ElectionID: electionID, Status: status}
	}

	// Load the election's positions and candidate membership
	rows, err := tx.QueryContext(ctx, `
		SELECT c.id, c.position_id
		FROM candidate c
		JOIN position p ON p.id = c.position_id
		WHERE p.election_id = $1
	`, electionID)
	if err != nil {
		return models.Ballot{}, &TallyCommitError{Err: err}
	}
	defer rows.Close()

	candidatePosition := make(map[string]string)
	positions := make(map[string]bool)
	for rows.Next() {
		var candidateID, positionID string
		if err := rows.Scan(&candidateID, &positionID); err != nil {
			return models.Ballot{}, &TallyCommitError{Err: err}
		}
		candidatePosition[candidateID] = positionID
		positions[positionID] = true
	}
	if err := rows.Err(); err != nil {
		return models.Ballot{}, &TallyCommitError{Err: err}
	}

	// Every selection must name a known position and a candidate that
	// belongs to it
	for positionID, candidateID := range selections {
		if !positions[positionID] {
			return models.Ballot{}, &InvalidSelectionError{Reason: "unknown position " + positionID}
		}
		if candidatePosition[candidateID] != positionID {
			return models.Ballot{}, &InvalidSelectionError{Reason: "candidate " + candidateID + " does not belong to position " + positionID}
		}
	}

	// Every position must be selected: a partial ballot would
	// desynchronize position totals from turnout
	for positionID := range positions {
		if _, ok := selections[positionID]; !ok {
			return models.Ballot{}, &InvalidSelectionError{Reason: "missing selection for position " + positionID}
		}
	}

	// Insert the ballot first. The UNIQUE (election_id, voter_id)
	// index is the double-submit guard, enforced before any counter
	// is touched.
	ballot := models.Ballot{
		ID:          uuid.NewString(),
		ElectionID:  electionID,
		VoterID:     voterID,
		SubmittedAt: time.Now(),
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO ballot (id, election_id, voter_id, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, ballot.ID, ballot.ElectionID, ballot.VoterID, ballot.SubmittedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.Ballot{}, &DuplicateVoteError{ElectionID: electionID}
		}
		return models.Ballot{}, &TallyCommitError{Err: err}
	}

	increments := make([]Increment, 0, len(selections))
	for positionID, candidateID := range selections {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ballot_selection (ballot_id, position_id, candidate_id)
			VALUES ($1, $2, $3)
		`, ballot.ID, positionID, candidateID)
		if err != nil {
			return models.Ballot{}, &TallyCommitError{Err: err}
		}

		var newCount int
		err = tx.QueryRowContext(ctx, `
			UPDATE candidate SET votes_count = votes_count + 1
			WHERE id = $1
			RETURNING votes_count
		`, candidateID).Scan(&newCount)
		if err != nil {
			return models.Ballot{}, &TallyCommitError{Err: err}
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE position SET total_votes = total_votes + 1
			WHERE id = $1
		`, positionID)
		if err != nil {
			return models.Ballot{}, &TallyCommitError{Err: err}
		}

		increments = append(increments, Increment{
			ElectionID:  electionID,
			PositionID:  positionID,
			CandidateID: candidateID,
			VotesCount:  newCount,
		})
	}

	// One ballot counts once toward turnout, regardless of how many
	// positions it filled
	_, err = tx.ExecContext(ctx, `
		UPDATE election SET total_votes_cast = total_votes_cast + 1
		WHERE id = $1
	`, electionID)
	if err != nil {
		return models.Ballot{}, &TallyCommitError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Ballot{}, &TallyCommitError{Err: err}
	}

	if s.emit != nil {
		for _, inc := range increments {
			s.emit(inc)
		}
	}

	return ballot, nil
}

// Election reads one election row with derived turnout.
func (s *Store) Election(ctx context.Context, electionID string) (models.Election, error) {
	var e models.Election
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, status, eligible_voter_count, total_votes_cast, created_at
		FROM election
		WHERE id = $1
	`, electionID).Scan(&e.ID, &e.Title, &e.Status, &e.EligibleVoterCount, &e.TotalVotesCast, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Election{}, ErrElectionNotFound
	}
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query election: %w", err)
	}
	e.TurnoutPercentage = Percent(e.TotalVotesCast, e.EligibleVoterCount)
	return e, nil
}

// Results computes the full reconciliation snapshot for an election
// straight from the committed counters. Candidates come back sorted
// by rank: votes descending, earliest registration first on ties.
func (s *Store) Results(ctx context.Context, electionID string) (models.ElectionResults, error) {
	election, err := s.Election(ctx, electionID)
	if err != nil {
		return models.ElectionResults{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, election_id, name, total_votes
		FROM position
		WHERE election_id = $1
		ORDER BY position_order, id
	`, electionID)
	if err != nil {
		return models.ElectionResults{}, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	results := models.ElectionResults{Election: election, Positions: []models.PositionResults{}}
	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.ID, &p.ElectionID, &p.Name, &p.TotalVotes); err != nil {
			return models.ElectionResults{}, fmt.Errorf("failed to scan position: %w", err)
		}
		results.Positions = append(results.Positions, models.PositionResults{Position: p})
	}
	if err := rows.Err(); err != nil {
		return models.ElectionResults{}, fmt.Errorf("failed to iterate positions: %w", err)
	}

	for i := range results.Positions {
		candidates, err := s.rankedCandidates(ctx, results.Positions[i].Position)
		if err != nil {
			return models.ElectionResults{}, err
		}
		results.Positions[i].Candidates = candidates
	}

	return results, nil
}

// PositionResults reads the refreshed view of a single position, used
// by the aggregator after each increment. Cost is bounded by the
// candidates in that position.
func (s *Store) PositionResults(ctx context.Context, positionID string) (models.PositionResults, error) {
	var p models.Position
	err := s.db.QueryRowContext(ctx, `
		SELECT id, election_id, name, total_votes
		FROM position
		WHERE id = $1
	`, positionID).Scan(&p.ID, &p.ElectionID, &p.Name, &p.TotalVotes)
	if err == sql.ErrNoRows {
		return models.PositionResults{}, fmt.Errorf("position %s not found", positionID)
	}
	if err != nil {
		return models.PositionResults{}, fmt.Errorf("failed to query position: %w", err)
	}

	candidates, err := s.rankedCandidates(ctx, p)
	if err != nil {
		return models.PositionResults{}, err
	}

	return models.PositionResults{Position: p, Candidates: candidates}, nil
}

func (s *Store) rankedCandidates(ctx context.Context, position models.Position) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, position_id, name, votes_count
		FROM candidate
		WHERE position_id = $1
		ORDER BY votes_count DESC, registered_order ASC
	`, position.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.PositionID, &c.Name, &c.VotesCount); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.VotePercentage = Percent(c.VotesCount, position.TotalVotes)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}

	return candidates, nil
}
