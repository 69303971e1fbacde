package response

import (
	"github.com/mcoot/dragonword-go/internal/model"
	"github.com/mcoot/dragonword-go/internal/services/game"
)

// CreateSessionResponse is returned when a session is created
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
}

// JoinResponse is returned when a player joins a session. The player id
// is the caller's identity for every later request.
type JoinResponse struct {
	SessionID string `json:"session_id"`
	PlayerID  string `json:"player_id"`
	Nickname  string `json:"nickname"`
	IsHost    bool   `json:"is_host"`
}

// EliminationResponse describes the outcome of a completed vote round
type EliminationResponse struct {
	PlayerID   string         `json:"player_id"`
	Nickname   string         `json:"nickname"`
	Role       string         `json:"role"`
	VoteCounts map[string]int `json:"vote_counts"`
	WasTie     bool           `json:"was_tie"`
}

// VoteResponse is returned for every accepted vote
type VoteResponse struct {
	RoundComplete bool                 `json:"round_complete"`
	State         string               `json:"state"`
	Elimination   *EliminationResponse `json:"elimination,omitempty"`
	Winner        string               `json:"winner,omitempty"`
}

// VoteResponseFromResult converts a controller vote result
func VoteResponseFromResult(result *game.VoteResult) VoteResponse {
	resp := VoteResponse{
		RoundComplete: result.RoundComplete,
		State:         string(result.NewState),
		Winner:        string(result.Winner),
	}
	if result.Elimination != nil {
		resp.Elimination = eliminationFromModel(result.Elimination)
	}
	return resp
}

func eliminationFromModel(e *model.Elimination) *EliminationResponse {
	counts := make(map[string]int, len(e.VoteCounts))
	for id, n := range e.VoteCounts {
		counts[string(id)] = n
	}
	return &EliminationResponse{
		PlayerID:   string(e.PlayerID),
		Nickname:   e.Nickname,
		Role:       string(e.Role),
		VoteCounts: counts,
		WasTie:     e.WasTie,
	}
}

// GuessResponse is returned for the dragon's word guess
type GuessResponse struct {
	Correct bool   `json:"correct"`
	Winner  string `json:"winner"`
}

// TimerResponse describes the voting timer
type TimerResponse struct {
	Enabled          bool `json:"enabled"`
	Seconds          int  `json:"seconds"`
	RemainingSeconds int  `json:"remaining_seconds"`
	Expired          bool `json:"expired"`
}

// TimerResponseFromStatus converts a controller timer status
func TimerResponseFromStatus(status *game.TimerStatus) TimerResponse {
	return TimerResponse{
		Enabled:          status.Enabled,
		Seconds:          status.Seconds,
		RemainingSeconds: status.RemainingSeconds,
		Expired:          status.Expired,
	}
}
