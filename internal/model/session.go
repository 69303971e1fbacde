package model

import (
	"strings"
	"time"
)

// SessionID uniquely identifies a game session. IDs are random, URL-safe
// and collision-checked at creation.
type SessionID string

// SessionState represents the current phase of a session
type SessionState string

const (
	StateLobby       SessionState = "lobby"        // Accepting players
	StatePlaying     SessionState = "playing"      // Players giving clues
	StateVoting      SessionState = "voting"       // Alive players voting
	StateDragonGuess SessionState = "dragon_guess" // Eliminated dragon guessing the word
	StateFinished    SessionState = "finished"     // Terminal
)

// Player count bounds for a startable session
const (
	MinPlayers = 3
	MaxPlayers = 12
)

// MinAliveVoters is the fewest alive players a voting round needs
const MinAliveVoters = 2

// Voting timer bounds in seconds
const (
	MinVotingTimerSeconds = 30
	MaxVotingTimerSeconds = 180
)

// Winner identifies the winning side of a finished session
type Winner string

const (
	WinnerNone      Winner = ""
	WinnerDragon    Winner = "dragon"
	WinnerVillagers Winner = "villagers"
)

// Elimination records the outcome of a vote tally
type Elimination struct {
	PlayerID   PlayerID
	Nickname   string
	Role       Role
	VoteCounts map[PlayerID]int
	WasTie     bool
}

// Session represents one running instance of the game. The slice of players
// is kept in join order; role assignment depends on that ordering.
//
// Live outbound channels are deliberately not part of the session: they
// belong to the realtime hub, keyed by the same session ID, so the session
// itself stays plain serializable data.
type Session struct {
	ID      SessionID
	State   SessionState
	Players []*Player

	// Votes maps voter id to target id for the active voting round.
	// Empty outside the voting state.
	Votes map[PlayerID]PlayerID

	// The round's word pair. The dragon is told neither.
	VillagerWord string
	KnightWord   string

	Winner          Winner
	DragonGuess     string
	LastElimination *Elimination

	// PlayerOrder is the shuffled clue-giving order, fixed at start
	PlayerOrder []PlayerID

	// VotingTimerSeconds is 0 when the timer is disabled
	VotingTimerSeconds int
	VotingStartedAt    time.Time

	CreatedAt  time.Time
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewSession creates an empty session in the lobby state
func NewSession(id SessionID, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     StateLobby,
		Players:   []*Player{},
		Votes:     make(map[PlayerID]PlayerID),
		CreatedAt: now,
	}
}

// Player returns the player with the given id, or nil if not found
func (s *Session) Player(id PlayerID) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerByNickname returns the player with the given nickname,
// case-insensitively, or nil if not found
func (s *Session) PlayerByNickname(nickname string) *Player {
	for _, p := range s.Players {
		if strings.EqualFold(p.Nickname, nickname) {
			return p
		}
	}
	return nil
}

// Host returns the current host, or nil if the session is empty
func (s *Session) Host() *Player {
	for _, p := range s.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// Dragon returns the player holding the dragon role, or nil before roles
// are assigned
func (s *Session) Dragon() *Player {
	for _, p := range s.Players {
		if p.Role == RoleDragon {
			return p
		}
	}
	return nil
}

// AliveCount returns the number of players still alive
func (s *Session) AliveCount() int {
	count := 0
	for _, p := range s.Players {
		if p.IsAlive {
			count++
		}
	}
	return count
}

// CanStart reports whether the session may transition out of the lobby
func (s *Session) CanStart() bool {
	return s.State == StateLobby &&
		len(s.Players) >= MinPlayers &&
		len(s.Players) <= MaxPlayers
}

// ClearVotes resets the voting round. Called on every transition into or
// out of the voting state.
func (s *Session) ClearVotes() {
	s.Votes = make(map[PlayerID]PlayerID)
}

// Clone returns a deep copy sharing no mutable state with the original
func (s *Session) Clone() *Session {
	clone := *s

	clone.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		player := *p
		clone.Players[i] = &player
	}

	clone.Votes = make(map[PlayerID]PlayerID, len(s.Votes))
	for voter, target := range s.Votes {
		clone.Votes[voter] = target
	}

	if s.PlayerOrder != nil {
		clone.PlayerOrder = make([]PlayerID, len(s.PlayerOrder))
		copy(clone.PlayerOrder, s.PlayerOrder)
	}

	if s.LastElimination != nil {
		elim := *s.LastElimination
		elim.VoteCounts = make(map[PlayerID]int, len(s.LastElimination.VoteCounts))
		for id, n := range s.LastElimination.VoteCounts {
			elim.VoteCounts[id] = n
		}
		clone.LastElimination = &elim
	}

	return &clone
}
