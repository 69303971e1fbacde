package request

// JoinRequest is the request body for joining a session
type JoinRequest struct {
	Nickname string `json:"nickname"`
}

// LeaveRequest is the request body for leaving a session
type LeaveRequest struct {
	PlayerID string `json:"player_id"`
}

// StartRequest is the request body for starting a game
type StartRequest struct {
	PlayerID string `json:"player_id"`
}

// StartVotingRequest is the request body for calling a vote
type StartVotingRequest struct {
	PlayerID string `json:"player_id"`
}

// VoteRequest is the request body for casting a vote
type VoteRequest struct {
	PlayerID string `json:"player_id"`
	TargetID string `json:"target_id"`
}

// GuessRequest is the request body for the dragon's word guess
type GuessRequest struct {
	PlayerID string `json:"player_id"`
	Guess    string `json:"guess"`
}

// SetTimerRequest is the request body for configuring the voting timer
type SetTimerRequest struct {
	PlayerID string `json:"player_id"`
	Seconds  int    `json:"seconds"`
}
