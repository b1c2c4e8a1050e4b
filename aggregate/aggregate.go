// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"context"
	"log/slog"
	"sync"

	"github.com/danielhkuo/live-tally/models"
	"github.com/danielhkuo/live-tally/rooms"
	"github.com/danielhkuo/live-tally/tally"
)

// Aggregator turns raw counter increments into broadcastable
// VoteUpdateMessages. Each position gets its own worker goroutine
// with a bounded mailbox, so recomputation is serialized per position
// and fully parallel across positions.
type Aggregator struct {
	store     *tally.Store
	hub       *rooms.Hub
	queueSize int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	workers map[string]chan tally.Increment
	closed  bool
}

func New(store *tally.Store, hub *rooms.Hub, queueSize int) *Aggregator {
	if queueSize < 1 {
		queueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Aggregator{
		store:     store,
		hub:       hub,
		queueSize: queueSize,
		ctx:       ctx,
		cancel:    cancel,
		workers:   make(map[string]chan tally.Increment),
	}
}

// Enqueue hands a committed increment to the position's worker,
// starting one lazily on first sight of a position. Never blocks the
// committing caller: on a full mailbox the oldest pending increment
// is evicted, which is safe because every recomputation reads the
// current counters from the store, not the increment's payload.
func (a *Aggregator) Enqueue(inc tally.Increment) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	ch, ok := a.workers[inc.PositionID]
	if !ok {
		ch = make(chan tally.Increment, a.queueSize)
		a.workers[inc.PositionID] = ch
		a.wg.Add(1)
		go a.run(inc.PositionID, ch)
	}
	a.mu.Unlock()

	for {
		select {
		case ch <- inc:
			return
		case <-a.ctx.Done():
			return
		default:
		}
		select {
		case <-ch:
			slog.Warn("aggregator mailbox overflow, evicting oldest increment", "position_id", inc.PositionID)
		default:
		}
	}
}

// Close stops all workers and waits for in-flight recomputations.
func (a *Aggregator) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	a.cancel()
	a.wg.Wait()
}

func (a *Aggregator) run(positionID string, ch chan tally.Increment) {
	defer a.wg.Done()
	for {
		select {
		case <-a.ctx.Done():
			return
		case inc := <-ch:
			a.recompute(inc)
		}
	}
}

// recompute refreshes the affected position's derived view from the
// store and broadcasts it. The snapshot is read after the increment's
// commit, so counts in the message are always current-or-newer than
// the increment itself and never decrease on the wire.
func (a *Aggregator) recompute(inc tally.Increment) {
	snapshot, err := a.store.PositionResults(a.ctx, inc.PositionID)
	if err != nil {
		if a.ctx.Err() != nil {
			return
		}
		slog.Error("failed to recompute position", "position_id", inc.PositionID, "error", err)
		return
	}

	msg := models.VoteUpdateMessage{
		Type:               models.MsgVoteUpdate,
		ElectionID:         inc.ElectionID,
		PositionID:         inc.PositionID,
		CandidateID:        inc.CandidateID,
		TotalVotesPosition: snapshot.Position.TotalVotes,
		Candidates:         snapshot.Candidates,
	}
	for _, c := range snapshot.Candidates {
		if c.ID == inc.CandidateID {
			msg.CandidateVotes = c.VotesCount
			msg.CandidatePercentage = c.VotePercentage
			break
		}
	}

	a.hub.Broadcast(inc.ElectionID, msg)
}
