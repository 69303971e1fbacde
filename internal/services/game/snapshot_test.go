package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/dragonword-go/internal/dependencies/mocks"
	"github.com/mcoot/dragonword-go/internal/model"
	"github.com/mcoot/dragonword-go/internal/services/words"
	"github.com/mcoot/dragonword-go/internal/storage/memory"
	"github.com/mcoot/dragonword-go/internal/testutil"
)

type SnapshotSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestSnapshotSuite(t *testing.T) {
	suite.Run(t, new(SnapshotSuite))
}

func (s *SnapshotSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	wordService := words.NewService(s.storage, s.random)
	s.controller = NewController(s.storage, wordService, s.clock, s.random, testutil.NopLogger(), time.Hour)
	s.ctx = context.Background()

	err := s.storage.SaveWordPairs(s.ctx, []model.WordPair{
		{VillagerWord: "cat", KnightWord: "tiger"},
	})
	s.Require().NoError(err)
}

// startedGame creates a 5-player session and starts it. With the identity
// shuffle, players[0] is the dragon and players[1] the knight.
func (s *SnapshotSuite) startedGame() (model.SessionID, []*model.Player) {
	s.random.QueueString("SESSIONAAAAA")
	session, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)

	nicknames := []string{"alice", "bob", "carol", "dave", "eve"}
	players := make([]*model.Player, len(nicknames))
	for i, nickname := range nicknames {
		players[i], err = s.controller.Join(s.ctx, session.ID, nickname)
		s.Require().NoError(err)
	}

	err = s.controller.Start(s.ctx, session.ID, players[0].ID)
	s.Require().NoError(err)
	return session.ID, players
}

func (s *SnapshotSuite) finishGame(sessionID model.SessionID, players []*model.Player) {
	err := s.controller.StartVoting(s.ctx, sessionID, players[0].ID)
	s.Require().NoError(err)
	for _, p := range players {
		_, err = s.controller.Vote(s.ctx, sessionID, p.ID, players[0].ID)
		s.Require().NoError(err)
	}
	_, err = s.controller.Guess(s.ctx, sessionID, players[0].ID, "wrong")
	s.Require().NoError(err)
}

func (s *SnapshotSuite) TestLobbySnapshot() {
	s.random.QueueString("SESSIONAAAAA")
	session, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)

	alice, err := s.controller.Join(s.ctx, session.ID, "alice")
	s.Require().NoError(err)
	_, err = s.controller.Join(s.ctx, session.ID, "bob")
	s.Require().NoError(err)

	snap, err := s.controller.Snapshot(s.ctx, session.ID, alice.ID)
	s.Require().NoError(err)

	s.Equal(session.ID, snap.SessionID)
	s.Equal(model.StateLobby, snap.State)
	s.Equal(alice.ID, snap.YourID)
	s.True(snap.IsHost)
	s.True(snap.IsAlive)
	s.Equal(2, snap.PlayerCount)
	s.False(snap.CanStart, "two players cannot start")
	s.Empty(snap.YourWord)
	s.Empty(snap.PlayerOrder)
	s.Len(snap.Players, 2)
	s.Equal("alice", snap.Players[0].Nickname)
}

func (s *SnapshotSuite) TestPlayingSnapshotShowsOwnWordOnly() {
	sessionID, players := s.startedGame()

	villagerSnap, err := s.controller.Snapshot(s.ctx, sessionID, players[2].ID)
	s.Require().NoError(err)
	s.Equal("cat", villagerSnap.YourWord)

	knightSnap, err := s.controller.Snapshot(s.ctx, sessionID, players[1].ID)
	s.Require().NoError(err)
	s.Equal("tiger", knightSnap.YourWord)

	dragonSnap, err := s.controller.Snapshot(s.ctx, sessionID, players[0].ID)
	s.Require().NoError(err)
	s.Empty(dragonSnap.YourWord, "the dragon is told nothing")
}

func (s *SnapshotSuite) TestPlayingSnapshotConcealsRolesAndWords() {
	sessionID, players := s.startedGame()

	snap, err := s.controller.Snapshot(s.ctx, sessionID, players[2].ID)
	s.Require().NoError(err)

	s.Equal(model.RoleUnassigned, snap.YourRole)
	s.Empty(snap.VillagerWord)
	s.Empty(snap.KnightWord)
	s.Empty(snap.Winner)
	s.Empty(snap.DragonGuess)
	for _, p := range snap.Players {
		s.Equal(model.RoleUnassigned, p.Role, "roles stay hidden until finished")
	}
}

func (s *SnapshotSuite) TestPlayingSnapshotIncludesPlayerOrder() {
	sessionID, players := s.startedGame()

	snap, err := s.controller.Snapshot(s.ctx, sessionID, players[0].ID)
	s.Require().NoError(err)
	s.Len(snap.PlayerOrder, len(players))
}

func (s *SnapshotSuite) TestVotingSnapshotTracksVotes() {
	sessionID, players := s.startedGame()
	err := s.controller.StartVoting(s.ctx, sessionID, players[0].ID)
	s.Require().NoError(err)
	_, err = s.controller.Vote(s.ctx, sessionID, players[1].ID, players[0].ID)
	s.Require().NoError(err)

	voterSnap, err := s.controller.Snapshot(s.ctx, sessionID, players[1].ID)
	s.Require().NoError(err)
	s.True(voterSnap.HasVoted)
	s.Equal(1, voterSnap.VotesSubmitted)

	otherSnap, err := s.controller.Snapshot(s.ctx, sessionID, players[2].ID)
	s.Require().NoError(err)
	s.False(otherSnap.HasVoted)
	s.Equal(1, otherSnap.VotesSubmitted)
}

func (s *SnapshotSuite) TestVotingSnapshotIncludesTimerDeadline() {
	s.random.QueueString("SESSIONAAAAA")
	session, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)
	players := make([]*model.Player, 3)
	for i, nickname := range []string{"alice", "bob", "carol"} {
		players[i], err = s.controller.Join(s.ctx, session.ID, nickname)
		s.Require().NoError(err)
	}
	err = s.controller.SetVotingTimer(s.ctx, session.ID, players[0].ID, 60)
	s.Require().NoError(err)
	err = s.controller.Start(s.ctx, session.ID, players[0].ID)
	s.Require().NoError(err)
	err = s.controller.StartVoting(s.ctx, session.ID, players[0].ID)
	s.Require().NoError(err)

	snap, err := s.controller.Snapshot(s.ctx, session.ID, players[0].ID)
	s.Require().NoError(err)

	s.Equal(60, snap.VotingTimerSeconds)
	s.Require().NotNil(snap.VotingEndsAt)
	s.Equal(s.clock.Now().Add(time.Minute), *snap.VotingEndsAt)
}

func (s *SnapshotSuite) TestSnapshotExpiresOverdueTimer() {
	s.random.QueueString("SESSIONAAAAA")
	session, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)
	players := make([]*model.Player, 3)
	for i, nickname := range []string{"alice", "bob", "carol"} {
		players[i], err = s.controller.Join(s.ctx, session.ID, nickname)
		s.Require().NoError(err)
	}
	err = s.controller.SetVotingTimer(s.ctx, session.ID, players[0].ID, 30)
	s.Require().NoError(err)
	err = s.controller.Start(s.ctx, session.ID, players[0].ID)
	s.Require().NoError(err)
	err = s.controller.StartVoting(s.ctx, session.ID, players[0].ID)
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)
	snap, err := s.controller.Snapshot(s.ctx, session.ID, players[0].ID)
	s.Require().NoError(err)

	s.Equal(model.StatePlaying, snap.State)
	s.Nil(snap.VotingEndsAt)
}

func (s *SnapshotSuite) TestSnapshotAfterEliminationIncludesRecord() {
	sessionID, players := s.startedGame()
	err := s.controller.StartVoting(s.ctx, sessionID, players[0].ID)
	s.Require().NoError(err)
	for _, p := range players {
		_, err = s.controller.Vote(s.ctx, sessionID, p.ID, players[4].ID)
		s.Require().NoError(err)
	}

	snap, err := s.controller.Snapshot(s.ctx, sessionID, players[4].ID)
	s.Require().NoError(err)

	s.Equal(model.StatePlaying, snap.State)
	s.False(snap.IsAlive)
	s.Require().NotNil(snap.LastElimination)
	s.Equal(players[4].ID, snap.LastElimination.PlayerID)
	s.Equal(model.RoleVillager, snap.LastElimination.Role)
	s.Equal(5, snap.LastElimination.VoteCounts[players[4].ID])
	s.Equal(4, snap.AliveCount)
}

func (s *SnapshotSuite) TestFinishedSnapshotRevealsEverything() {
	sessionID, players := s.startedGame()
	s.finishGame(sessionID, players)

	snap, err := s.controller.Snapshot(s.ctx, sessionID, players[2].ID)
	s.Require().NoError(err)

	s.Equal(model.StateFinished, snap.State)
	s.Equal(model.RoleVillager, snap.YourRole)
	s.Equal("cat", snap.VillagerWord)
	s.Equal("tiger", snap.KnightWord)
	s.Equal("cat", snap.YourWord)
	s.Equal(model.WinnerVillagers, snap.Winner)
	s.Equal("wrong", snap.DragonGuess)

	rolesByID := make(map[model.PlayerID]model.Role)
	for _, p := range snap.Players {
		rolesByID[p.ID] = p.Role
	}
	s.Equal(model.RoleDragon, rolesByID[players[0].ID])
	s.Equal(model.RoleKnight, rolesByID[players[1].ID])
}

func (s *SnapshotSuite) TestSnapshotUnknownViewer() {
	sessionID, _ := s.startedGame()

	_, err := s.controller.Snapshot(s.ctx, sessionID, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *SnapshotSuite) TestSnapshotsBuildsPerPlayerViews() {
	sessionID, players := s.startedGame()

	ids := []model.PlayerID{players[0].ID, players[2].ID, "nobody"}
	snaps, err := s.controller.Snapshots(s.ctx, sessionID, ids)
	s.Require().NoError(err)

	s.Len(snaps, 2, "unknown players are skipped")
	s.Empty(snaps[players[0].ID].YourWord)
	s.Equal("cat", snaps[players[2].ID].YourWord)
}
