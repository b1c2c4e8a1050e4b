// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/live-tally/models"
)

// Collaborator-facing operations: the external admin CRUD service
// registers election fixtures and drives status transitions through
// these methods. Counters always start at zero; only CastVote moves
// them.

var allowedTransitions = map[string][]string{
	models.StatusDraft:  {models.StatusActive, models.StatusCancelled},
	models.StatusActive: {models.StatusClosed, models.StatusCancelled},
}

// CreateElection registers an election with its positions and
// candidates in one transaction. Candidate registration order within
// a position is recorded for rank tiebreaking.
func (s *Store) CreateElection(ctx context.Context, req models.CreateElectionRequest) (models.Election, []models.PositionWithCandidates, error) {
	if req.Title == "" {
		return models.Election{}, nil, fmt.Errorf("election title is required")
	}
	if req.EligibleVoterCount < 0 {
		return models.Election{}, nil, fmt.Errorf("eligible voter count cannot be negative")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Election{}, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	election := models.Election{
		ID:                 uuid.NewString(),
		Title:              req.Title,
		Status:             models.StatusDraft,
		EligibleVoterCount: req.EligibleVoterCount,
		CreatedAt:          time.Now(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO election (id, title, status, eligible_voter_count, total_votes_cast, created_at)
		VALUES ($1, $2, $3, $4, 0, $5)
	`, election.ID, election.Title, election.Status, election.EligibleVoterCount, election.CreatedAt)
	if err != nil {
		return models.Election{}, nil, fmt.Errorf("failed to insert election: %w", err)
	}

	positions := make([]models.PositionWithCandidates, 0, len(req.Positions))
	for order, pos := range req.Positions {
		p := models.Position{
			ID:         uuid.NewString(),
			ElectionID: election.ID,
			Name:       pos.Name,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO position (id, election_id, name, total_votes, position_order)
			VALUES ($1, $2, $3, 0, $4)
		`, p.ID, p.ElectionID, p.Name, order)
		if err != nil {
			return models.Election{}, nil, fmt.Errorf("failed to insert position: %w", err)
		}

		candidates := make([]models.Candidate, 0, len(pos.Candidates))
		for regOrder, name := range pos.Candidates {
			c := models.Candidate{
				ID:         uuid.NewString(),
				PositionID: p.ID,
				Name:       name,
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO candidate (id, position_id, name, votes_count, registered_order)
				VALUES ($1, $2, $3, 0, $4)
			`, c.ID, c.PositionID, c.Name, regOrder)
			if err != nil {
				return models.Election{}, nil, fmt.Errorf("failed to insert candidate: %w", err)
			}
			candidates = append(candidates, c)
		}

		positions = append(positions, models.PositionWithCandidates{Position: p, Candidates: candidates})
	}

	if err := tx.Commit(); err != nil {
		return models.Election{}, nil, fmt.Errorf("failed to commit election fixture: %w", err)
	}

	return election, positions, nil
}

// SetStatus transitions an election's lifecycle status. Returns the
// refreshed election so the caller can broadcast the change.
func (s *Store) SetStatus(ctx context.Context, electionID, status string) (models.Election, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM election WHERE id = $1
	`, electionID).Scan(&current)
	if err == sql.ErrNoRows {
		return models.Election{}, ErrElectionNotFound
	}
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query election: %w", err)
	}

	if !transitionAllowed(current, status) {
		return models.Election{}, &ElectionStateError{ElectionID: electionID, Status: current}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE election SET status = $1 WHERE id = $2
	`, status, electionID)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to update status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Election{}, fmt.Errorf("failed to commit status change: %w", err)
	}

	return s.Election(ctx, electionID)
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
