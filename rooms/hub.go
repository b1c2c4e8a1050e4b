// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rooms

import (
	"log/slog"
	"sync"
)

// Subscriber is one realtime connection's membership handle. Outbound
// messages flow through a bounded queue; a subscriber that stops
// draining loses its oldest queued messages, never its peers' delivery.
type Subscriber struct {
	ID string

	mu     sync.Mutex
	out    chan interface{}
	closed bool
}

// C is the subscriber's outbound message stream. Closed when the
// subscriber is dropped from the hub.
func (s *Subscriber) C() <-chan interface{} {
	return s.out
}

// Send enqueues a message for the subscriber. On a full queue the
// oldest queued message is dropped to make room: a stale queue entry
// is worth less than the newer snapshot, and the client self-heals
// via reconciliation anyway. Returns false if the subscriber is closed.
func (s *Subscriber) Send(msg interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}

	for {
		select {
		case s.out <- msg:
			return true
		default:
		}
		// Queue full: evict the oldest entry and retry
		select {
		case dropped := <-s.out:
			slog.Warn("subscriber queue overflow, dropping oldest message", "subscriber", s.ID, "dropped", dropped)
		default:
		}
	}
}

func (s *Subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.out)
}

// Hub is the subscription registry and broadcast dispatcher: rooms
// keyed by election ID, each holding the subscribers currently
// observing that election.
type Hub struct {
	queueSize int

	mu          sync.RWMutex
	rooms       map[string]map[*Subscriber]struct{}
	memberships map[*Subscriber]map[string]struct{}
}

func NewHub(queueSize int) *Hub {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Hub{
		queueSize:   queueSize,
		rooms:       make(map[string]map[*Subscriber]struct{}),
		memberships: make(map[*Subscriber]map[string]struct{}),
	}
}

// Register creates a subscriber handle for a new connection. The
// subscriber belongs to no room until Subscribe is called.
func (h *Hub) Register(connID string) *Subscriber {
	sub := &Subscriber{
		ID:  connID,
		out: make(chan interface{}, h.queueSize),
	}

	h.mu.Lock()
	h.memberships[sub] = make(map[string]struct{})
	h.mu.Unlock()

	return sub
}

// Subscribe adds the subscriber to an election's room. Idempotent:
// subscribing twice leaves a single membership.
func (h *Hub) Subscribe(sub *Subscriber, electionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.memberships[sub]; !ok {
		// Dropped connection racing a subscribe; nothing to join
		return
	}

	room, ok := h.rooms[electionID]
	if !ok {
		room = make(map[*Subscriber]struct{})
		h.rooms[electionID] = room
	}
	room[sub] = struct{}{}
	h.memberships[sub][electionID] = struct{}{}
}

// Unsubscribe removes the subscriber from an election's room.
// Unsubscribing a non-member is a no-op.
func (h *Hub) Unsubscribe(sub *Subscriber, electionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(sub, electionID)
}

// Drop removes the subscriber from every room and closes its outbound
// stream. Called on connection close; safe to call more than once.
func (h *Hub) Drop(sub *Subscriber) {
	h.mu.Lock()
	if elections, ok := h.memberships[sub]; ok {
		for electionID := range elections {
			h.leaveLocked(sub, electionID)
		}
		delete(h.memberships, sub)
	}
	h.mu.Unlock()

	sub.close()
}

func (h *Hub) leaveLocked(sub *Subscriber, electionID string) {
	if room, ok := h.rooms[electionID]; ok {
		delete(room, sub)
		if len(room) == 0 {
			delete(h.rooms, electionID)
		}
	}
	if elections, ok := h.memberships[sub]; ok {
		delete(elections, electionID)
	}
}

// Broadcast fans a message out to every subscriber of an election.
// Sends never block: a stalled subscriber only sheds its own oldest
// queued messages.
func (h *Hub) Broadcast(electionID string, msg interface{}) {
	h.mu.RLock()
	room := h.rooms[electionID]
	subs := make([]*Subscriber, 0, len(room))
	for sub := range room {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		sub.Send(msg)
	}
}

// RoomSize reports how many subscribers observe an election.
func (h *Hub) RoomSize(electionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[electionID])
}
