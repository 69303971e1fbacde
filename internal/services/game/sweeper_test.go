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

// fakeHubCleanup records the cleanup calls the sweeper makes
type fakeHubCleanup struct {
	removed []model.SessionID
	cleaned int
}

func (f *fakeHubCleanup) RemoveHub(id model.SessionID) {
	f.removed = append(f.removed, id)
}

func (f *fakeHubCleanup) CleanupEmptyHubs() int {
	f.cleaned++
	return 0
}

type SweeperSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	hubs       *fakeHubCleanup
	sweeper    *Sweeper
	ctx        context.Context
}

func TestSweeperSuite(t *testing.T) {
	suite.Run(t, new(SweeperSuite))
}

func (s *SweeperSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	wordService := words.NewService(s.storage, s.random)
	s.controller = NewController(s.storage, wordService, s.clock, s.random, testutil.NopLogger(), time.Hour)
	s.hubs = &fakeHubCleanup{}
	s.sweeper = NewSweeper(s.controller, s.hubs, time.Minute, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *SweeperSuite) TestSweepRemovesExpiredSessionsAndHubs() {
	s.random.QueueString("SESSIONAAAAA", "SESSIONBBBBB")
	old, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)
	s.clock.Advance(45 * time.Minute)
	fresh, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)

	s.clock.Advance(30 * time.Minute)
	s.sweeper.Sweep(s.ctx)

	_, err = s.controller.GetSession(s.ctx, old.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)
	_, err = s.controller.GetSession(s.ctx, fresh.ID)
	s.NoError(err)

	s.Equal([]model.SessionID{old.ID}, s.hubs.removed)
	s.Equal(1, s.hubs.cleaned)
}

func (s *SweeperSuite) TestSweepWithNothingExpiredStillCleansHubs() {
	s.sweeper.Sweep(s.ctx)

	s.Empty(s.hubs.removed)
	s.Equal(1, s.hubs.cleaned)
}

func (s *SweeperSuite) TestSweepWithoutHubCleanup() {
	sweeper := NewSweeper(s.controller, nil, time.Minute, testutil.NopLogger())
	s.NotPanics(func() {
		sweeper.Sweep(s.ctx)
	})
}

func (s *SweeperSuite) TestRunStopsOnContextCancel() {
	ctx, cancel := context.WithCancel(s.ctx)

	done := make(chan struct{})
	go func() {
		s.sweeper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("sweeper did not stop on context cancel")
	}
}
