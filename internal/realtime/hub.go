package realtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/dragonword-go/internal/model"
)

const sendBufferSize = 16

// Client is one player's live connection to a session. The send channel
// is owned by the hub: it is closed when the client is unregistered,
// replaced or evicted, which tells the connection's writer to shut down.
type Client struct {
	playerID    model.PlayerID
	send        chan []byte
	connectedAt time.Time

	closeOnce sync.Once
}

// PlayerID returns the player this client belongs to
func (c *Client) PlayerID() model.PlayerID {
	return c.playerID
}

// Recv exposes the outbound channel for the connection writer
func (c *Client) Recv() <-chan []byte {
	return c.send
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// Hub tracks the live connections for a single session, at most one per
// player id. Registering a player who already has a connection replaces
// it: the old channel is closed and the newcomer takes the slot.
type Hub struct {
	sessionID model.SessionID
	logger    *slog.Logger

	mu      sync.Mutex
	clients map[model.PlayerID]*Client
	closed  bool
}

// NewHub creates a hub for one session
func NewHub(sessionID model.SessionID, logger *slog.Logger) *Hub {
	return &Hub{
		sessionID: sessionID,
		logger:    logger.With(slog.String("session_id", string(sessionID))),
		clients:   make(map[model.PlayerID]*Client),
	}
}

// SessionID returns the session this hub belongs to
func (h *Hub) SessionID() model.SessionID {
	return h.sessionID
}

// Register adds a connection for a player, displacing any existing one.
// On a closed hub the returned client's channel is already closed, so the
// caller's writer exits immediately.
func (h *Hub) Register(playerID model.PlayerID) *Client {
	client := &Client{
		playerID:    playerID,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		client.closeSend()
		return client
	}
	prior := h.clients[playerID]
	h.clients[playerID] = client
	clientCount := len(h.clients)
	h.mu.Unlock()

	if prior != nil {
		prior.closeSend()
		h.logger.Info("client replaced",
			slog.String("player_id", string(playerID)),
		)
	}
	h.logger.Info("client registered",
		slog.String("player_id", string(playerID)),
		slog.Int("total_clients", clientCount),
	)
	return client
}

// Unregister removes a client if it still holds its player's slot. A
// client that was already replaced leaves the newcomer untouched.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	current := h.clients[client.playerID] == client
	if current {
		delete(h.clients, client.playerID)
	}
	clientCount := len(h.clients)
	h.mu.Unlock()

	client.closeSend()

	if current {
		h.logger.Info("client unregistered",
			slog.String("player_id", string(client.playerID)),
			slog.Duration("connection_duration", time.Since(client.connectedAt)),
			slog.Int("total_clients", clientCount),
		)
	}
}

// Send delivers a message to one player's connection without blocking.
// A full buffer means the reader is dead or hopelessly behind; the client
// is evicted so one slow connection never stalls a broadcast. Returns
// whether the message was queued.
func (h *Hub) Send(playerID model.PlayerID, message []byte) bool {
	h.mu.Lock()
	client, ok := h.clients[playerID]
	if !ok {
		h.mu.Unlock()
		return false
	}

	select {
	case client.send <- message:
		h.mu.Unlock()
		return true
	default:
		delete(h.clients, playerID)
		h.mu.Unlock()
		client.closeSend()
		h.logger.Warn("client evicted - send buffer full",
			slog.String("player_id", string(playerID)),
		)
		return false
	}
}

// ClientIDs returns the players with a live connection
func (h *Hub) ClientIDs() []model.PlayerID {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]model.PlayerID, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects future registrations
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.clients = make(map[model.PlayerID]*Client)
	h.mu.Unlock()

	for _, client := range clients {
		client.closeSend()
	}
	h.logger.Info("hub closed",
		slog.Int("disconnected_clients", len(clients)),
	)
}

// HubManager manages hubs for all sessions
type HubManager struct {
	mu     sync.RWMutex
	hubs   map[model.SessionID]*Hub
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.SessionID]*Hub),
		logger: logger.With(slog.String("component", "realtime")),
	}
}

// GetOrCreateHub returns the hub for a session, creating one if it
// doesn't exist
func (m *HubManager) GetOrCreateHub(sessionID model.SessionID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[sessionID]; ok {
		return hub
	}

	hub := NewHub(sessionID, m.logger)
	m.hubs[sessionID] = hub
	return hub
}

// GetHub returns the hub for a session, or nil if it doesn't exist
func (m *HubManager) GetHub(sessionID model.SessionID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[sessionID]
}

// RemoveHub removes and closes a hub
func (m *HubManager) RemoveHub(sessionID model.SessionID) {
	m.mu.Lock()
	hub, ok := m.hubs[sessionID]
	if ok {
		delete(m.hubs, sessionID)
	}
	m.mu.Unlock()

	if ok {
		hub.Close()
		m.logger.Info("hub removed",
			slog.String("session_id", string(sessionID)),
		)
	}
}

// CleanupEmptyHubs removes hubs with no clients and returns how many
// were removed
func (m *HubManager) CleanupEmptyHubs() int {
	m.mu.Lock()
	var empty []*Hub
	for id, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			empty = append(empty, hub)
			delete(m.hubs, id)
		}
	}
	m.mu.Unlock()

	for _, hub := range empty {
		hub.Close()
	}
	if len(empty) > 0 {
		m.logger.Info("empty hubs cleaned up",
			slog.Int("removed", len(empty)),
		)
	}
	return len(empty)
}
