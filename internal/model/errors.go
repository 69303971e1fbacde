package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionStarted     = errors.New("session has already started")
	ErrSessionNotStarted  = errors.New("session has not started")
	ErrSessionFull        = errors.New("session is full")
	ErrSessionFinished    = errors.New("session is finished")
	ErrInvalidPlayerCount = errors.New("player count must be between 3 and 12")
	ErrTooFewPlayers      = errors.New("not enough players to start")
	ErrInvalidTimer       = errors.New("voting timer must be between 30 and 180 seconds")

	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrNicknameTaken   = errors.New("nickname is already taken")
	ErrInvalidNickname = errors.New("invalid nickname")
	ErrNotHost         = errors.New("player is not the host")

	// Voting errors
	ErrNotVotingPhase  = errors.New("not in voting phase")
	ErrNotPlayingPhase = errors.New("can only start voting from playing state")
	ErrTooFewAlive     = errors.New("not enough alive players to vote")
	ErrDeadVoter       = errors.New("dead players cannot vote")
	ErrDeadTarget      = errors.New("cannot vote for a dead player")
	ErrAlreadyVoted    = errors.New("already voted")

	// Guess errors
	ErrNotGuessPhase = errors.New("not in guessing phase")
	ErrNotDragon     = errors.New("only the eliminated dragon can guess")

	// Word errors
	ErrWordsNotLoaded = errors.New("word pairs not loaded")
)
