package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/dragonword-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeSessionNotFound = "SESSION_NOT_FOUND"
	CodeSessionStarted  = "SESSION_STARTED"
	CodeSessionFull     = "SESSION_FULL"
	CodeSessionFinished = "SESSION_FINISHED"
	CodeTooFewPlayers   = "TOO_FEW_PLAYERS"
	CodeInvalidTimer    = "INVALID_TIMER"
	CodePlayerNotFound  = "PLAYER_NOT_FOUND"
	CodeNicknameTaken   = "NICKNAME_TAKEN"
	CodeInvalidNickname = "INVALID_NICKNAME"
	CodeNotHost         = "NOT_HOST"
	CodeNotVotingPhase  = "NOT_VOTING_PHASE"
	CodeNotPlayingPhase = "NOT_PLAYING_PHASE"
	CodeTooFewAlive     = "TOO_FEW_ALIVE"
	CodeDeadVoter       = "DEAD_VOTER"
	CodeDeadTarget      = "DEAD_TARGET"
	CodeAlreadyVoted    = "ALREADY_VOTED"
	CodeNotGuessPhase   = "NOT_GUESS_PHASE"
	CodeNotDragon       = "NOT_DRAGON"
	CodeInternalError   = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSessionStarted):
		return &httpError{http.StatusConflict, APIError{CodeSessionStarted, "Session has already started"}}
	case errors.Is(err, model.ErrSessionFull):
		return &httpError{http.StatusConflict, APIError{CodeSessionFull, "Session is full"}}
	case errors.Is(err, model.ErrSessionFinished):
		return &httpError{http.StatusConflict, APIError{CodeSessionFinished, "Session is finished"}}
	case errors.Is(err, model.ErrTooFewPlayers):
		return &httpError{http.StatusConflict, APIError{CodeTooFewPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrInvalidPlayerCount):
		return &httpError{http.StatusConflict, APIError{CodeTooFewPlayers, "Player count must be between 3 and 12"}}
	case errors.Is(err, model.ErrInvalidTimer):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTimer, "Voting timer must be 0 or between 30 and 180 seconds"}}
	case errors.Is(err, model.ErrNicknameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNicknameTaken, "Nickname is already taken"}}
	case errors.Is(err, model.ErrInvalidNickname):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidNickname, "Nickname must be 1-20 letters, digits or spaces"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrNotVotingPhase):
		return &httpError{http.StatusConflict, APIError{CodeNotVotingPhase, "Not in the voting phase"}}
	case errors.Is(err, model.ErrNotPlayingPhase):
		return &httpError{http.StatusConflict, APIError{CodeNotPlayingPhase, "Voting can only start from the playing phase"}}
	case errors.Is(err, model.ErrTooFewAlive):
		return &httpError{http.StatusConflict, APIError{CodeTooFewAlive, "Not enough alive players to vote"}}
	case errors.Is(err, model.ErrDeadVoter):
		return &httpError{http.StatusForbidden, APIError{CodeDeadVoter, "Dead players cannot vote"}}
	case errors.Is(err, model.ErrDeadTarget):
		return &httpError{http.StatusConflict, APIError{CodeDeadTarget, "Cannot vote for a dead player"}}
	case errors.Is(err, model.ErrAlreadyVoted):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyVoted, "Already voted this round"}}
	case errors.Is(err, model.ErrNotGuessPhase):
		return &httpError{http.StatusConflict, APIError{CodeNotGuessPhase, "Not in the guessing phase"}}
	case errors.Is(err, model.ErrNotDragon):
		return &httpError{http.StatusForbidden, APIError{CodeNotDragon, "Only the eliminated dragon can guess"}}
	case errors.Is(err, model.ErrWordsNotLoaded):
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Word list is not loaded"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
