package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/dragonword-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) makeSession(id model.SessionID) *model.Session {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	session := model.NewSession(id, now)
	p := model.NewPlayer("alice", true, now)
	session.Players = append(session.Players, p)
	session.Votes[p.ID] = p.ID
	return session
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.makeSession("SESSIONAAAAA")
	session.State = model.StateVoting
	session.VillagerWord = "cat"
	session.KnightWord = "tiger"

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	loaded, err := s.storage.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)

	s.Equal(session.ID, loaded.ID)
	s.Equal(model.StateVoting, loaded.State)
	s.Equal("cat", loaded.VillagerWord)
	s.Equal("tiger", loaded.KnightWord)
	s.Require().Len(loaded.Players, 1)
	s.Equal("alice", loaded.Players[0].Nickname)
	s.True(loaded.Players[0].IsHost)
	s.Equal(session.Votes, loaded.Votes)
	s.True(session.CreatedAt.Equal(loaded.CreatedAt))
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "MISSING00000")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionKeyCarriesTTL() {
	session := s.makeSession("SESSIONAAAAA")
	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	ttl := s.mini.TTL(sessionKey(session.ID))
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestSessionExpiresWithKeyTTL() {
	session := s.makeSession("SESSIONAAAAA")
	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	s.mini.FastForward(2 * time.Hour)

	_, err = s.storage.GetSession(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	session := s.makeSession("SESSIONAAAAA")
	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	err = s.storage.DeleteSession(s.ctx, session.ID)
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionExists() {
	session := s.makeSession("SESSIONAAAAA")

	exists, err := s.storage.SessionExists(s.ctx, session.ID)
	s.Require().NoError(err)
	s.False(exists)

	err = s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	exists, err = s.storage.SessionExists(s.ctx, session.ID)
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestListSessions() {
	for _, id := range []model.SessionID{"SESSIONAAAAA", "SESSIONBBBBB", "SESSIONCCCCC"} {
		err := s.storage.SaveSession(s.ctx, s.makeSession(id))
		s.Require().NoError(err)
	}

	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)

	s.Len(sessions, 3)
	ids := make(map[model.SessionID]bool)
	for _, session := range sessions {
		ids[session.ID] = true
	}
	s.True(ids["SESSIONAAAAA"])
	s.True(ids["SESSIONBBBBB"])
	s.True(ids["SESSIONCCCCC"])
}

func (s *StorageSuite) TestListSessionsIgnoresOtherKeys() {
	s.Require().NoError(s.mini.Set("unrelated:key", "value"))
	err := s.storage.SaveSession(s.ctx, s.makeSession("SESSIONAAAAA"))
	s.Require().NoError(err)

	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Len(sessions, 1)
}

func (s *StorageSuite) TestWordPairsNotLoaded() {
	_, err := s.storage.GetWordPairs(s.ctx)
	s.ErrorIs(err, model.ErrWordsNotLoaded)
}

func (s *StorageSuite) TestSaveAndGetWordPairs() {
	pairs := []model.WordPair{
		{VillagerWord: "cat", KnightWord: "tiger"},
		{VillagerWord: "dog", KnightWord: "wolf"},
	}

	err := s.storage.SaveWordPairs(s.ctx, pairs)
	s.Require().NoError(err)

	loaded, err := s.storage.GetWordPairs(s.ctx)
	s.Require().NoError(err)
	s.Equal(pairs, loaded)
}

func (s *StorageSuite) TestWordPairsDoNotExpire() {
	err := s.storage.SaveWordPairs(s.ctx, []model.WordPair{{VillagerWord: "cat", KnightWord: "tiger"}})
	s.Require().NoError(err)

	s.mini.FastForward(24 * time.Hour)

	_, err = s.storage.GetWordPairs(s.ctx)
	s.NoError(err)
}
