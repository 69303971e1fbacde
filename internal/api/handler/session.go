package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/dragonword-go/internal/api/request"
	"github.com/mcoot/dragonword-go/internal/api/response"
	"github.com/mcoot/dragonword-go/internal/model"
	"github.com/mcoot/dragonword-go/internal/realtime"
	"github.com/mcoot/dragonword-go/internal/services/game"
)

// SessionHandler handles session lifecycle endpoints: create, join,
// leave, per-player state, the voting timer and registry stats.
type SessionHandler struct {
	controller  *game.Controller
	hubManager  *realtime.HubManager
	broadcaster *realtime.Broadcaster
}

// NewSessionHandler creates a new session handler. The realtime pieces
// may be nil when no websocket layer is wired.
func NewSessionHandler(controller *game.Controller, hubManager *realtime.HubManager, broadcaster *realtime.Broadcaster) *SessionHandler {
	return &SessionHandler{
		controller:  controller,
		hubManager:  hubManager,
		broadcaster: broadcaster,
	}
}

func (h *SessionHandler) broadcast(r *http.Request, sessionID model.SessionID) {
	if h.broadcaster != nil {
		h.broadcaster.BroadcastState(r.Context(), sessionID)
	}
}

// Create handles POST /api/v1/games
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := h.controller.CreateSession(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateSessionResponse{
		SessionID: string(session.ID),
		State:     string(session.State),
	})
}

// Join handles POST /api/v1/games/{id}/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.controller.Join(r.Context(), sessionID, req.Nickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(r, sessionID)
	response.JSON(w, http.StatusCreated, response.JoinResponse{
		SessionID: string(sessionID),
		PlayerID:  string(player.ID),
		Nickname:  player.Nickname,
		IsHost:    player.IsHost,
	})
}

// Leave handles POST /api/v1/games/{id}/leave
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	if err := h.controller.Leave(r.Context(), sessionID, model.PlayerID(req.PlayerID)); err != nil {
		WriteError(w, err)
		return
	}

	// The last player leaving deletes the session; its hub goes with it
	if _, err := h.controller.GetSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, model.ErrSessionNotFound) && h.hubManager != nil {
			h.hubManager.RemoveHub(sessionID)
		}
	} else {
		h.broadcast(r, sessionID)
	}

	response.NoContent(w)
}

// State handles GET /api/v1/games/{id}/state?player_id=...
func (h *SessionHandler) State(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		WriteError(w, NewInvalidRequestError("player_id query parameter is required"))
		return
	}

	snapshot, err := h.controller.Snapshot(r.Context(), sessionID, model.PlayerID(playerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, snapshot)
}

// GetTimer handles GET /api/v1/games/{id}/timer. Reading the timer is
// what expires it, so clients polling the countdown drive the
// VOTING -> PLAYING transition.
func (h *SessionHandler) GetTimer(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	status, err := h.controller.CheckVotingTimer(r.Context(), sessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if status.Expired {
		h.broadcast(r, sessionID)
	}
	response.JSON(w, http.StatusOK, response.TimerResponseFromStatus(status))
}

// SetTimer handles PUT /api/v1/games/{id}/timer
func (h *SessionHandler) SetTimer(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.SetTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	err := h.controller.SetVotingTimer(r.Context(), sessionID, model.PlayerID(req.PlayerID), req.Seconds)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(r, sessionID)
	response.NoContent(w)
}

// Stats handles GET /api/v1/stats
func (h *SessionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.controller.Stats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, stats)
}
