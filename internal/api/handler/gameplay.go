package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/dragonword-go/internal/api/request"
	"github.com/mcoot/dragonword-go/internal/api/response"
	"github.com/mcoot/dragonword-go/internal/model"
	"github.com/mcoot/dragonword-go/internal/realtime"
	"github.com/mcoot/dragonword-go/internal/services/game"
)

// GameplayHandler handles the in-game endpoints: starting the game,
// calling votes, voting and the dragon's guess.
type GameplayHandler struct {
	controller  *game.Controller
	broadcaster *realtime.Broadcaster
}

// NewGameplayHandler creates a new gameplay handler
func NewGameplayHandler(controller *game.Controller, broadcaster *realtime.Broadcaster) *GameplayHandler {
	return &GameplayHandler{
		controller:  controller,
		broadcaster: broadcaster,
	}
}

func (h *GameplayHandler) broadcast(r *http.Request, sessionID model.SessionID) {
	if h.broadcaster != nil {
		h.broadcaster.BroadcastState(r.Context(), sessionID)
	}
}

// Start handles POST /api/v1/games/{id}/start
func (h *GameplayHandler) Start(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.controller.Start(r.Context(), sessionID, model.PlayerID(req.PlayerID)); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(r, sessionID)
	response.NoContent(w)
}

// StartVoting handles POST /api/v1/games/{id}/voting/start
func (h *GameplayHandler) StartVoting(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.StartVotingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.controller.StartVoting(r.Context(), sessionID, model.PlayerID(req.PlayerID)); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(r, sessionID)
	response.NoContent(w)
}

// Vote handles POST /api/v1/games/{id}/vote
func (h *GameplayHandler) Vote(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.TargetID == "" {
		WriteError(w, NewInvalidRequestError("target_id is required"))
		return
	}

	result, err := h.controller.Vote(r.Context(), sessionID, model.PlayerID(req.PlayerID), model.PlayerID(req.TargetID))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(r, sessionID)
	response.JSON(w, http.StatusOK, response.VoteResponseFromResult(result))
}

// Guess handles POST /api/v1/games/{id}/guess
func (h *GameplayHandler) Guess(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.controller.Guess(r.Context(), sessionID, model.PlayerID(req.PlayerID), req.Guess)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(r, sessionID)
	response.JSON(w, http.StatusOK, response.GuessResponse{
		Correct: result.Correct,
		Winner:  string(result.Winner),
	})
}
