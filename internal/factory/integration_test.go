package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/dragonword-go/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.SeedTestWords(s.ctx))
}

// setupStartedGame creates a session, joins the given nicknames and
// starts the game. With the identity shuffle the first joiner is the
// dragon and the second is a knight.
func (s *IntegrationSuite) setupStartedGame(nicknames ...string) (*model.Session, []*model.Player) {
	s.app.MockRandom.QueueString("GAMEAAAAAAAA")

	session, err := s.app.Controller.CreateSession(s.ctx)
	s.Require().NoError(err)

	players := make([]*model.Player, 0, len(nicknames))
	for _, nickname := range nicknames {
		player, err := s.app.Controller.Join(s.ctx, session.ID, nickname)
		s.Require().NoError(err)
		players = append(players, player)
	}

	s.Require().NoError(s.app.Controller.Start(s.ctx, session.ID, players[0].ID))

	started, err := s.app.Controller.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	return started, players
}

func (s *IntegrationSuite) voteAllAliveFor(sessionID model.SessionID, target model.PlayerID) *model.Session {
	session, err := s.app.Controller.GetSession(s.ctx, sessionID)
	s.Require().NoError(err)

	for _, p := range session.Players {
		if !p.IsAlive {
			continue
		}
		_, err := s.app.Controller.Vote(s.ctx, sessionID, p.ID, target)
		s.Require().NoError(err)
	}

	after, err := s.app.Controller.GetSession(s.ctx, sessionID)
	s.Require().NoError(err)
	return after
}

// Test: villagers find the dragon, who then fails the word guess
func (s *IntegrationSuite) TestVillagersWinAfterFailedGuess() {
	session, players := s.setupStartedGame("Alice", "Bob", "Carol", "Dave", "Eve")

	s.Equal(model.StatePlaying, session.State)
	s.Equal(model.RoleDragon, session.Players[0].Role)
	s.Equal(model.RoleKnight, session.Players[1].Role)
	s.Equal("cat", session.VillagerWord)
	s.Equal("tiger", session.KnightWord)

	// Mid-game snapshots conceal roles and the dragon gets no word
	dragonView, err := s.app.Controller.Snapshot(s.ctx, session.ID, players[0].ID)
	s.Require().NoError(err)
	s.Empty(dragonView.YourWord)
	s.Empty(dragonView.YourRole)

	villagerView, err := s.app.Controller.Snapshot(s.ctx, session.ID, players[2].ID)
	s.Require().NoError(err)
	s.Equal("cat", villagerView.YourWord)

	// Everyone votes the dragon out
	s.Require().NoError(s.app.Controller.StartVoting(s.ctx, session.ID, players[0].ID))
	session = s.voteAllAliveFor(session.ID, players[0].ID)
	s.Equal(model.StateDragonGuess, session.State)

	// A wrong guess hands the villagers the win
	result, err := s.app.Controller.Guess(s.ctx, session.ID, players[0].ID, "lion")
	s.Require().NoError(err)
	s.False(result.Correct)
	s.Equal(model.WinnerVillagers, result.Winner)

	// The finished snapshot reveals everything
	finalView, err := s.app.Controller.Snapshot(s.ctx, session.ID, players[2].ID)
	s.Require().NoError(err)
	s.Equal(model.StateFinished, finalView.State)
	s.Equal(model.WinnerVillagers, finalView.Winner)
	s.Equal("cat", finalView.VillagerWord)
	s.Equal("tiger", finalView.KnightWord)
	s.Equal("lion", finalView.DragonGuess)
}

// Test: the eliminated dragon steals the win by guessing the word
func (s *IntegrationSuite) TestDragonWinsWithCorrectGuess() {
	session, players := s.setupStartedGame("Alice", "Bob", "Carol", "Dave", "Eve")

	s.Require().NoError(s.app.Controller.StartVoting(s.ctx, session.ID, players[0].ID))
	session = s.voteAllAliveFor(session.ID, players[0].ID)
	s.Equal(model.StateDragonGuess, session.State)

	result, err := s.app.Controller.Guess(s.ctx, session.ID, players[0].ID, "  CAT ")
	s.Require().NoError(err)
	s.True(result.Correct)
	s.Equal(model.WinnerDragon, result.Winner)
}

// Test: the dragon survives down to two players
func (s *IntegrationSuite) TestDragonWinsBySurvival() {
	session, players := s.setupStartedGame("Alice", "Bob", "Carol", "Dave", "Eve")

	// Three rounds of voting out villagers leaves the dragon one of two
	for _, target := range []*model.Player{players[2], players[3], players[4]} {
		s.Require().NoError(s.app.Controller.StartVoting(s.ctx, session.ID, players[0].ID))
		session = s.voteAllAliveFor(session.ID, target.ID)
	}

	s.Equal(model.StateFinished, session.State)
	s.Equal(model.WinnerDragon, session.Winner)
	s.Equal(2, session.AliveCount())
}

// Test: leaving in the lobby reassigns the host and empties cleanly
func (s *IntegrationSuite) TestLobbyLeaveAndHostReassignment() {
	s.app.MockRandom.QueueString("GAMEBBBBBBBB")

	session, err := s.app.Controller.CreateSession(s.ctx)
	s.Require().NoError(err)

	alice, err := s.app.Controller.Join(s.ctx, session.ID, "Alice")
	s.Require().NoError(err)
	bob, err := s.app.Controller.Join(s.ctx, session.ID, "Bob")
	s.Require().NoError(err)

	s.Require().NoError(s.app.Controller.Leave(s.ctx, session.ID, alice.ID))

	updated, err := s.app.Controller.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.True(updated.Players[0].IsHost)
	s.Equal(bob.ID, updated.Players[0].ID)

	// Last player leaving deletes the session
	s.Require().NoError(s.app.Controller.Leave(s.ctx, session.ID, bob.ID))
	_, err = s.app.Controller.GetSession(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func TestNewDefaultsToMemoryStorage(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	assert.NotNil(t, app.Storage)
	assert.NotNil(t, app.Controller)
	assert.NotNil(t, app.Broadcaster)
	assert.NotNil(t, app.Sweeper)
}

func TestNewRejectsRedisWithoutConfig(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeRedis})
	require.Error(t, err)
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	_, err := New(Config{StorageType: "cassandra"})
	require.Error(t, err)
}
