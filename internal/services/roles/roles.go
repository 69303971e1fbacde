package roles

import (
	"github.com/mcoot/dragonword-go/internal/dependencies/random"
	"github.com/mcoot/dragonword-go/internal/model"
)

// Distribution describes how many players hold each role for a given
// player count. There is always exactly one dragon; knights grow with the
// table size and villagers take the remainder.
type Distribution struct {
	Villagers int
	Knights   int
	Dragons   int
}

// Distribute computes the role distribution for a player count:
//
//	3-4 players:   1 dragon, 0 knights
//	5-6 players:   1 dragon, 1 knight
//	7-8 players:   1 dragon, 2 knights
//	9-10 players:  1 dragon, 3 knights
//	11-12 players: 1 dragon, 4 knights
func Distribute(playerCount int) (Distribution, error) {
	if playerCount < model.MinPlayers || playerCount > model.MaxPlayers {
		return Distribution{}, model.ErrInvalidPlayerCount
	}

	knights := (playerCount - 3) / 2
	return Distribution{
		Dragons:   1,
		Knights:   knights,
		Villagers: playerCount - 1 - knights,
	}, nil
}

// Assign mutates each player's Role and KnowsWord in place. The role pool
// is shuffled uniformly and handed out position-for-position against the
// players slice, which callers keep in join order.
func Assign(players []*model.Player, rnd random.Random) error {
	dist, err := Distribute(len(players))
	if err != nil {
		return err
	}

	pool := make([]model.Role, 0, len(players))
	for i := 0; i < dist.Dragons; i++ {
		pool = append(pool, model.RoleDragon)
	}
	for i := 0; i < dist.Knights; i++ {
		pool = append(pool, model.RoleKnight)
	}
	for i := 0; i < dist.Villagers; i++ {
		pool = append(pool, model.RoleVillager)
	}

	rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	for i, p := range players {
		p.Role = pool[i]
		p.KnowsWord = pool[i].KnowsWord()
	}

	return nil
}
