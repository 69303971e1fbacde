package model

// Role is a player's hidden allegiance for the round
type Role string

const (
	// RoleUnassigned is the zero value; every player carries it until the
	// session leaves the lobby
	RoleUnassigned Role = ""

	RoleVillager Role = "villager" // informed majority, told the villager word
	RoleKnight   Role = "knight"   // informed minority, told the knight word
	RoleDragon   Role = "dragon"   // uninformed, told nothing
)

// KnowsWord reports whether a player with this role is told a word at game
// start. Only the dragon plays blind.
func (r Role) KnowsWord() bool {
	return r == RoleVillager || r == RoleKnight
}
