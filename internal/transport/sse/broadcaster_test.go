package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vkaradzhov/belot-server/internal/model"
	"github.com/vkaradzhov/belot-server/internal/testutil"
)

type BroadcasterSuite struct {
	suite.Suite
	hub         *Hub
	broadcaster *Broadcaster
}

func TestBroadcasterSuite(t *testing.T) {
	suite.Run(t, new(BroadcasterSuite))
}

func (s *BroadcasterSuite) SetupTest() {
	s.hub = NewHub(testutil.NopLogger())
	go s.hub.Run()
	s.broadcaster = NewBroadcaster(s.hub, testutil.NopLogger())
}

func (s *BroadcasterSuite) TearDownTest() {
	s.hub.Close()
}

func (s *BroadcasterSuite) connect(playerID model.PlayerID) *Client {
	before := s.hub.ClientCount()
	client := NewClient(s.hub, playerID)
	s.hub.Register(client)
	s.Eventually(func() bool {
		return s.hub.ClientCount() == before+1
	}, time.Second, 10*time.Millisecond)
	return client
}

func (s *BroadcasterSuite) receive(client *Client) string {
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		s.Require().Fail("timed out waiting for message")
		return ""
	}
}

func (s *BroadcasterSuite) TestBroadcastMarshalsPayload() {
	client := s.connect("p_a")

	s.broadcaster.Broadcast(model.EventDealStart, model.DealStart{HandNumber: 3})

	msg := s.receive(client)
	s.Contains(msg, "event: "+model.EventDealStart)
	s.Contains(msg, `"hand_number":3`)
}

func (s *BroadcasterSuite) TestSendToPlayerIsTargeted() {
	a := s.connect("p_a")
	b := s.connect("p_b")

	s.broadcaster.SendToPlayer("p_a", model.EventHandUpdate, model.HandUpdate{
		Seat:  2,
		Cards: []model.Card{{Suit: model.SuitHearts, Rank: model.RankJ}},
	})
	s.broadcaster.Broadcast("ping", struct{}{})

	msg := s.receive(a)
	s.Contains(msg, "event: "+model.EventHandUpdate)
	s.Contains(msg, `"seat":2`)

	s.Contains(s.receive(b), "event: ping")
}
