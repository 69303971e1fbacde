package game

import (
	"time"

	"github.com/mcoot/dragonword-go/internal/model"
)

// SnapshotPlayer is the public view of another player. Role is only set
// once the session has finished.
type SnapshotPlayer struct {
	ID       model.PlayerID `json:"id"`
	Nickname string         `json:"nickname"`
	IsAlive  bool           `json:"is_alive"`
	IsHost   bool           `json:"is_host"`
	Role     model.Role     `json:"role,omitempty"`
}

// SnapshotElimination is the public record of the most recent vote result
type SnapshotElimination struct {
	PlayerID   model.PlayerID         `json:"player_id"`
	Nickname   string                 `json:"nickname"`
	Role       model.Role             `json:"role"`
	VoteCounts map[model.PlayerID]int `json:"vote_counts"`
	WasTie     bool                   `json:"was_tie"`
}

// Snapshot is the per-player view of a session. Each player sees only what
// their role entitles them to: their own word while the game runs, and
// roles, both words, the guess and the winner only once finished.
type Snapshot struct {
	SessionID model.SessionID    `json:"session_id"`
	State     model.SessionState `json:"state"`

	YourID   model.PlayerID `json:"your_id"`
	YourWord string         `json:"your_word,omitempty"`
	IsHost   bool           `json:"is_host"`
	IsAlive  bool           `json:"is_alive"`
	HasVoted bool           `json:"has_voted"`

	Players     []SnapshotPlayer `json:"players"`
	PlayerCount int              `json:"player_count"`
	AliveCount  int              `json:"alive_count"`
	CanStart    bool             `json:"can_start"`

	VotesSubmitted int              `json:"votes_submitted"`
	PlayerOrder    []model.PlayerID `json:"player_order,omitempty"`

	VotingTimerSeconds int        `json:"voting_timer_seconds"`
	VotingEndsAt       *time.Time `json:"voting_ends_at,omitempty"`

	LastElimination *SnapshotElimination `json:"last_elimination,omitempty"`

	// Populated only in the finished state
	YourRole     model.Role   `json:"your_role,omitempty"`
	VillagerWord string       `json:"villager_word,omitempty"`
	KnightWord   string       `json:"knight_word,omitempty"`
	Winner       model.Winner `json:"winner,omitempty"`
	DragonGuess  string       `json:"dragon_guess,omitempty"`
}

// BuildSnapshot renders the session from one player's point of view.
// Returns ErrPlayerNotFound if the viewer is not in the session.
func BuildSnapshot(session *model.Session, viewerID model.PlayerID) (*Snapshot, error) {
	viewer := session.Player(viewerID)
	if viewer == nil {
		return nil, model.ErrPlayerNotFound
	}

	finished := session.State == model.StateFinished

	players := make([]SnapshotPlayer, 0, len(session.Players))
	for _, p := range session.Players {
		sp := SnapshotPlayer{
			ID:       p.ID,
			Nickname: p.Nickname,
			IsAlive:  p.IsAlive,
			IsHost:   p.IsHost,
		}
		if finished {
			sp.Role = p.Role
		}
		players = append(players, sp)
	}

	_, hasVoted := session.Votes[viewerID]

	snap := &Snapshot{
		SessionID:          session.ID,
		State:              session.State,
		YourID:             viewer.ID,
		IsHost:             viewer.IsHost,
		IsAlive:            viewer.IsAlive,
		HasVoted:           hasVoted,
		Players:            players,
		PlayerCount:        len(session.Players),
		AliveCount:         session.AliveCount(),
		CanStart:           session.CanStart(),
		VotesSubmitted:     len(session.Votes),
		PlayerOrder:        session.PlayerOrder,
		VotingTimerSeconds: session.VotingTimerSeconds,
	}

	if session.State == model.StateVoting && session.VotingTimerSeconds > 0 {
		endsAt := session.VotingStartedAt.Add(time.Duration(session.VotingTimerSeconds) * time.Second)
		snap.VotingEndsAt = &endsAt
	}

	if session.LastElimination != nil {
		e := session.LastElimination
		snap.LastElimination = &SnapshotElimination{
			PlayerID:   e.PlayerID,
			Nickname:   e.Nickname,
			Role:       e.Role,
			VoteCounts: e.VoteCounts,
			WasTie:     e.WasTie,
		}
	}

	switch {
	case finished:
		snap.YourRole = viewer.Role
		snap.VillagerWord = session.VillagerWord
		snap.KnightWord = session.KnightWord
		snap.Winner = session.Winner
		snap.DragonGuess = session.DragonGuess
		// Finished players also see the word they held
		switch viewer.Role {
		case model.RoleVillager:
			snap.YourWord = session.VillagerWord
		case model.RoleKnight:
			snap.YourWord = session.KnightWord
		}
	case viewer.KnowsWord:
		// Mid-game a player sees their own word but never which of the
		// two words it is
		if viewer.Role == model.RoleKnight {
			snap.YourWord = session.KnightWord
		} else {
			snap.YourWord = session.VillagerWord
		}
	}

	return snap, nil
}
