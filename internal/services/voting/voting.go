package voting

import (
	"github.com/mcoot/dragonword-go/internal/dependencies/random"
	"github.com/mcoot/dragonword-go/internal/model"
)

// CanVote reports whether the given player may cast a vote right now.
// Checks are applied in a fixed priority order so callers always surface
// the same reason for the same situation: phase, existence, liveness,
// double-vote.
func CanVote(session *model.Session, voterID model.PlayerID) error {
	if session.State != model.StateVoting {
		return model.ErrNotVotingPhase
	}

	voter := session.Player(voterID)
	if voter == nil {
		return model.ErrPlayerNotFound
	}

	if !voter.IsAlive {
		return model.ErrDeadVoter
	}

	if _, voted := session.Votes[voterID]; voted {
		return model.ErrAlreadyVoted
	}

	return nil
}

// ValidateTarget checks that a vote target exists and is alive
func ValidateTarget(session *model.Session, targetID model.PlayerID) error {
	target := session.Player(targetID)
	if target == nil {
		return model.ErrPlayerNotFound
	}
	if !target.IsAlive {
		return model.ErrDeadTarget
	}
	return nil
}

// AllVotesSubmitted reports whether every alive player has voted. Dead
// players are excluded from the denominator.
func AllVotesSubmitted(session *model.Session) bool {
	return len(session.Votes) >= session.AliveCount()
}

// Tally counts the recorded votes, eliminates the most-voted player and
// returns the elimination record. Ties are broken uniformly at random
// among the tied targets. Returns nil if no votes were recorded; the
// state machine's guards make that unreachable in normal operation.
//
// Tally only flips the eliminated player's IsAlive flag and records the
// result on the session; state transitions and vote clearing belong to
// the caller.
func Tally(session *model.Session, rnd random.Random) *model.Elimination {
	if len(session.Votes) == 0 {
		return nil
	}

	counts := make(map[model.PlayerID]int)
	for _, targetID := range session.Votes {
		counts[targetID]++
	}

	maxVotes := 0
	for _, n := range counts {
		if n > maxVotes {
			maxVotes = n
		}
	}

	// Collect tied targets in join order so the random pick is the only
	// source of non-determinism
	var tied []model.PlayerID
	for _, p := range session.Players {
		if counts[p.ID] == maxVotes {
			tied = append(tied, p.ID)
		}
	}

	eliminatedID := tied[rnd.Intn(len(tied))]
	eliminated := session.Player(eliminatedID)
	eliminated.IsAlive = false

	result := &model.Elimination{
		PlayerID:   eliminatedID,
		Nickname:   eliminated.Nickname,
		Role:       eliminated.Role,
		VoteCounts: counts,
		WasTie:     len(tied) > 1,
	}
	session.LastElimination = result

	return result
}
