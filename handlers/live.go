// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/danielhkuo/live-tally/models"
	"github.com/danielhkuo/live-tally/rooms"
	"github.com/danielhkuo/live-tally/tally"
)

// LiveHandler serves the realtime results channel over websocket.
// Each connection gets a hub subscriber with a bounded outbound
// queue; one writer goroutine drains the queue onto the wire while
// the handler goroutine reads subscribe/unsubscribe messages.
type LiveHandler struct {
	store *tally.Store
	hub   *rooms.Hub
}

func NewLiveHandler(store *tally.Store, hub *rooms.Hub) *LiveHandler {
	return &LiveHandler{store: store, hub: hub}
}

// Handler returns the websocket endpoint for /vote/live
func (h *LiveHandler) Handler() http.Handler {
	return websocket.Handler(h.serve)
}

func (h *LiveHandler) serve(ws *websocket.Conn) {
	sub := h.hub.Register(uuid.NewString())
	defer h.hub.Drop(sub)

	slog.Info("realtime connection opened", "subscriber", sub.ID, "remote", ws.Request().RemoteAddr)

	// Writer: drains the subscriber queue onto the wire. A send
	// failure belongs to this connection alone; it closes the socket
	// so the read loop below unwinds too.
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range sub.C() {
			if err := websocket.JSON.Send(ws, msg); err != nil {
				slog.Warn("realtime push failed", "subscriber", sub.ID, "error", err)
				ws.Close()
				return
			}
		}
	}()

	ctx := ws.Request().Context()
	for {
		var msg models.ClientMessage
		if err := websocket.JSON.Receive(ws, &msg); err != nil {
			break
		}

		switch msg.Type {
		case models.MsgSubscribe:
			if msg.ElectionID == "" {
				sub.Send(models.ErrorMessage{Type: models.MsgError, Message: "election_id is required"})
				continue
			}
			// Join first, snapshot second: any update committed after
			// the snapshot read is guaranteed to reach the queue. An
			// update committed between the join and the read may be
			// queued ahead of the snapshot, but the snapshot already
			// reflects it, so the client's view starts consistent and
			// only moves forward.
			h.hub.Subscribe(sub, msg.ElectionID)
			results, err := h.store.Results(ctx, msg.ElectionID)
			if err != nil {
				h.hub.Unsubscribe(sub, msg.ElectionID)
				if errors.Is(err, tally.ErrElectionNotFound) {
					sub.Send(models.ErrorMessage{Type: models.MsgError, Message: "unknown election " + msg.ElectionID})
				} else {
					slog.Error("failed to compute initial results", "election_id", msg.ElectionID, "error", err)
					sub.Send(models.ErrorMessage{Type: models.MsgError, Message: "failed to load results"})
				}
				continue
			}
			sub.Send(models.InitialResultsMessage{
				Type:       models.MsgInitialResults,
				ElectionID: msg.ElectionID,
				Results:    results,
			})
		case models.MsgUnsubscribe:
			h.hub.Unsubscribe(sub, msg.ElectionID)
		default:
			sub.Send(models.ErrorMessage{Type: models.MsgError, Message: "unknown message type: " + msg.Type})
		}
	}

	h.hub.Drop(sub)
	<-writerDone

	slog.Info("realtime connection closed", "subscriber", sub.ID)
}
