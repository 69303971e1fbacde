package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/dragonword-go/internal/model"
	"github.com/mcoot/dragonword-go/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	hub *Hub
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.hub = NewHub("SESSIONAAAAA", testutil.NopLogger())
}

// receive reads one message from a client with a timeout
func (s *HubSuite) receive(client *Client) []byte {
	select {
	case message, ok := <-client.Recv():
		s.Require().True(ok, "channel closed")
		return message
	case <-time.After(time.Second):
		s.Require().Fail("no message received")
		return nil
	}
}

// assertClosed verifies a client's channel has been closed
func (s *HubSuite) assertClosed(client *Client) {
	select {
	case _, ok := <-client.Recv():
		s.False(ok, "expected closed channel")
	case <-time.After(time.Second):
		s.Fail("channel not closed")
	}
}

func (s *HubSuite) TestRegisterAndSend() {
	client := s.hub.Register("p1")
	s.Equal(1, s.hub.ClientCount())
	s.Equal(model.PlayerID("p1"), client.PlayerID())

	s.True(s.hub.Send("p1", []byte("hello")))
	s.Equal([]byte("hello"), s.receive(client))
}

func (s *HubSuite) TestSendToUnknownPlayer() {
	s.False(s.hub.Send("p1", []byte("hello")))
}

func (s *HubSuite) TestRegisterReplacesExistingConnection() {
	first := s.hub.Register("p1")
	second := s.hub.Register("p1")

	s.Equal(1, s.hub.ClientCount(), "one connection per player")
	s.assertClosed(first)

	s.True(s.hub.Send("p1", []byte("hello")))
	s.Equal([]byte("hello"), s.receive(second))
}

func (s *HubSuite) TestUnregisterRemovesClient() {
	client := s.hub.Register("p1")
	s.hub.Unregister(client)

	s.Equal(0, s.hub.ClientCount())
	s.assertClosed(client)
	s.False(s.hub.Send("p1", []byte("hello")))
}

func (s *HubSuite) TestUnregisterStaleClientKeepsReplacement() {
	first := s.hub.Register("p1")
	second := s.hub.Register("p1")

	// The replaced connection disconnecting must not tear down the
	// replacement
	s.hub.Unregister(first)
	s.Equal(1, s.hub.ClientCount())

	s.True(s.hub.Send("p1", []byte("hello")))
	s.Equal([]byte("hello"), s.receive(second))
}

func (s *HubSuite) TestSendEvictsClientWithFullBuffer() {
	client := s.hub.Register("p1")
	for i := 0; i < sendBufferSize; i++ {
		s.Require().True(s.hub.Send("p1", []byte("fill")))
	}

	s.False(s.hub.Send("p1", []byte("overflow")))
	s.Equal(0, s.hub.ClientCount())

	// Buffered messages stay readable, then the channel closes
	for i := 0; i < sendBufferSize; i++ {
		s.Equal([]byte("fill"), s.receive(client))
	}
	s.assertClosed(client)
}

func (s *HubSuite) TestEvictionDoesNotAffectOthers() {
	slow := s.hub.Register("p1")
	healthy := s.hub.Register("p2")
	for i := 0; i < sendBufferSize; i++ {
		s.Require().True(s.hub.Send("p1", []byte("fill")))
	}

	s.False(s.hub.Send("p1", []byte("overflow")))
	s.True(s.hub.Send("p2", []byte("hello")))

	s.Equal([]byte("hello"), s.receive(healthy))
	_ = slow
}

func (s *HubSuite) TestClientIDs() {
	s.hub.Register("p1")
	s.hub.Register("p2")

	ids := s.hub.ClientIDs()
	s.ElementsMatch([]model.PlayerID{"p1", "p2"}, ids)
}

func (s *HubSuite) TestCloseDisconnectsEveryone() {
	first := s.hub.Register("p1")
	second := s.hub.Register("p2")

	s.hub.Close()

	s.Equal(0, s.hub.ClientCount())
	s.assertClosed(first)
	s.assertClosed(second)
}

func (s *HubSuite) TestRegisterAfterCloseReturnsClosedClient() {
	s.hub.Close()

	client := s.hub.Register("p1")
	s.assertClosed(client)
	s.Equal(0, s.hub.ClientCount())
}

type HubManagerSuite struct {
	suite.Suite
	manager *HubManager
}

func TestHubManagerSuite(t *testing.T) {
	suite.Run(t, new(HubManagerSuite))
}

func (s *HubManagerSuite) SetupTest() {
	s.manager = NewHubManager(testutil.NopLogger())
}

func (s *HubManagerSuite) TestGetOrCreateHubIsIdempotent() {
	hub := s.manager.GetOrCreateHub("SESSIONAAAAA")
	s.Same(hub, s.manager.GetOrCreateHub("SESSIONAAAAA"))
	s.NotSame(hub, s.manager.GetOrCreateHub("SESSIONBBBBB"))
}

func (s *HubManagerSuite) TestGetHubMissing() {
	s.Nil(s.manager.GetHub("SESSIONAAAAA"))
}

func (s *HubManagerSuite) TestRemoveHubClosesClients() {
	hub := s.manager.GetOrCreateHub("SESSIONAAAAA")
	client := hub.Register("p1")

	s.manager.RemoveHub("SESSIONAAAAA")

	s.Nil(s.manager.GetHub("SESSIONAAAAA"))
	select {
	case _, ok := <-client.Recv():
		s.False(ok)
	case <-time.After(time.Second):
		s.Fail("client not disconnected")
	}
}

func (s *HubManagerSuite) TestRemoveHubMissingIsNoop() {
	s.NotPanics(func() {
		s.manager.RemoveHub("SESSIONAAAAA")
	})
}

func (s *HubManagerSuite) TestCleanupEmptyHubs() {
	s.manager.GetOrCreateHub("EMPTY0000000")
	busy := s.manager.GetOrCreateHub("BUSY00000000")
	busy.Register("p1")

	removed := s.manager.CleanupEmptyHubs()

	s.Equal(1, removed)
	s.Nil(s.manager.GetHub("EMPTY0000000"))
	s.NotNil(s.manager.GetHub("BUSY00000000"))
}
