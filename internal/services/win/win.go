package win

import (
	"github.com/mcoot/dragonword-go/internal/model"
)

// DragonEliminated reports whether the dragon has been voted out
func DragonEliminated(session *model.Session) bool {
	dragon := session.Dragon()
	return dragon != nil && !dragon.IsAlive
}

// DragonSurvived reports whether the dragon has reached its survival win:
// still alive with two or fewer players remaining
func DragonSurvived(session *model.Session) bool {
	dragon := session.Dragon()
	return dragon != nil && dragon.IsAlive && session.AliveCount() <= 2
}

// DetermineWinner evaluates the win conditions. The second return is false
// while the game should continue — including when the dragon has just been
// eliminated, because the guess phase takes precedence over the
// vote-elimination outcome.
func DetermineWinner(session *model.Session) (model.Winner, bool) {
	if DragonEliminated(session) {
		// Pending guess decides the round
		return model.WinnerNone, false
	}

	if DragonSurvived(session) {
		return model.WinnerDragon, true
	}

	return model.WinnerNone, false
}
