package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mcoot/dragonword-go/internal/model"
	"github.com/mcoot/dragonword-go/internal/services/game"
)

// Message is the envelope for everything sent over a realtime connection
type Message struct {
	Type  string         `json:"type"`
	State *game.Snapshot `json:"state,omitempty"`
}

// Message types
const (
	MessageTypeState = "state_update"
	MessageTypePing  = "ping"
	MessageTypePong  = "pong"
)

func stateMessage(snapshot *game.Snapshot) ([]byte, error) {
	return json.Marshal(Message{Type: MessageTypeState, State: snapshot})
}

func pongMessage() []byte {
	data, _ := json.Marshal(Message{Type: MessageTypePong})
	return data
}

// SnapshotProvider builds per-player session views for a broadcast. All
// views for one broadcast come from a single consistent read of the
// session.
type SnapshotProvider interface {
	Snapshots(ctx context.Context, id model.SessionID, playerIDs []model.PlayerID) (map[model.PlayerID]*game.Snapshot, error)
}

// Broadcaster fans session state out to every connected player, each one
// getting their own role-filtered view
type Broadcaster struct {
	hubManager *HubManager
	provider   SnapshotProvider
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, provider SnapshotProvider, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		provider:   provider,
		logger:     logger.With(slog.String("component", "broadcaster")),
	}
}

// BroadcastState sends each connected player their current view of the
// session. Players whose view cannot be built (e.g. they left the
// session) are skipped; a dead connection is evicted by the hub without
// affecting the other recipients.
func (b *Broadcaster) BroadcastState(ctx context.Context, sessionID model.SessionID) {
	hub := b.hubManager.GetHub(sessionID)
	if hub == nil {
		return
	}

	playerIDs := hub.ClientIDs()
	if len(playerIDs) == 0 {
		return
	}

	snapshots, err := b.provider.Snapshots(ctx, sessionID, playerIDs)
	if err != nil {
		b.logger.Error("failed to build broadcast snapshots",
			slog.String("session_id", string(sessionID)),
			slog.String("error", err.Error()),
		)
		return
	}

	sent := 0
	for playerID, snapshot := range snapshots {
		payload, err := stateMessage(snapshot)
		if err != nil {
			b.logger.Error("failed to encode snapshot",
				slog.String("session_id", string(sessionID)),
				slog.String("player_id", string(playerID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		if hub.Send(playerID, payload) {
			sent++
		}
	}

	b.logger.Debug("state broadcast",
		slog.String("session_id", string(sessionID)),
		slog.Int("recipients", sent),
	)
}
