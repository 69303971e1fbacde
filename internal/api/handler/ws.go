package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/dragonword-go/internal/model"
	"github.com/mcoot/dragonword-go/internal/realtime"
	"github.com/mcoot/dragonword-go/internal/services/game"
)

// WSHandler serves the per-player websocket state feed.
type WSHandler struct {
	controller *game.Controller
	hubManager *realtime.HubManager
	logger     *slog.Logger
}

// NewWSHandler creates a new websocket handler
func NewWSHandler(controller *game.Controller, hubManager *realtime.HubManager, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		controller: controller,
		hubManager: hubManager,
		logger:     logger,
	}
}

// Connect handles GET /api/v1/games/{id}/ws?player_id=
func (h *WSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])
	playerID := model.PlayerID(r.URL.Query().Get("player_id"))

	if playerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	// Membership validation: an unknown session or player fails here
	// before the upgrade. The snapshot the client actually receives is
	// built after registration, inside ServeWS.
	if _, err := h.controller.Snapshot(r.Context(), sessionID, playerID); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(sessionID)
	realtime.ServeWS(w, r, hub, h.controller, playerID, h.logger)
}
