package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/mcoot/dragonword-go/internal/model"
	"github.com/mcoot/dragonword-go/internal/services/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second
)

// SnapshotSource builds one player's current view of a session
type SnapshotSource interface {
	Snapshot(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*game.Snapshot, error)
}

// ServeWS upgrades the request to a websocket and runs the connection
// until the peer disconnects or the hub drops the client. The initial
// snapshot goes out first, then every broadcast for the session; inbound
// traffic is limited to ping frames, which are answered with a pong.
// A disconnect removes the connection and nothing else.
//
// Registration happens before the initial snapshot is built: a mutation
// landing in between is either already reflected in the snapshot or
// broadcast to the registered channel, so the client never settles on a
// view older than its registration.
func ServeWS(
	w http.ResponseWriter,
	r *http.Request,
	hub *Hub,
	source SnapshotSource,
	playerID model.PlayerID,
	logger *slog.Logger,
) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		logger.Warn("websocket accept failed",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	client := hub.Register(playerID)
	defer hub.Unregister(client)

	// Writer loop. The send channel closing (unregister, replacement or
	// eviction) closes the connection, which in turn ends the read loop.
	writeCtx, writeCancel := context.WithCancel(r.Context())
	defer writeCancel()
	go func() {
		defer conn.Close(websocket.StatusGoingAway, "closed")
		for message := range client.Recv() {
			ctx, cancel := context.WithTimeout(writeCtx, writeWait)
			err := conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				return
			}
		}
	}()

	// Build the initial snapshot only now that the client is registered,
	// and route it through the hub like every broadcast
	initial, err := source.Snapshot(r.Context(), hub.SessionID(), playerID)
	if err != nil {
		logger.Warn("initial snapshot failed",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
		conn.Close(websocket.StatusInternalError, "state unavailable")
		return
	}
	if payload, err := stateMessage(initial); err == nil {
		hub.Send(playerID, payload)
	}

	// Read loop: answer pings, ignore everything else. Game state is
	// never mutated from the socket.
	for {
		_, data, err := conn.Read(r.Context())
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				logger.Debug("websocket read ended",
					slog.String("player_id", string(playerID)),
					slog.String("error", err.Error()),
				)
			}
			return
		}

		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			continue
		}
		if message.Type == MessageTypePing {
			hub.Send(playerID, pongMessage())
		}
	}
}
