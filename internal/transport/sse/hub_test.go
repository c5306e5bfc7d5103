package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vkaradzhov/belot-server/internal/model"
	"github.com/vkaradzhov/belot-server/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	hub *Hub
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.hub = NewHub(testutil.NopLogger())
	go s.hub.Run()
}

func (s *HubSuite) TearDownTest() {
	s.hub.Close()
}

func (s *HubSuite) connect(playerID model.PlayerID) *Client {
	before := s.hub.ClientCount()
	client := NewClient(s.hub, playerID)
	s.hub.Register(client)
	s.Eventually(func() bool {
		return s.hub.ClientCount() == before+1
	}, time.Second, 10*time.Millisecond)
	return client
}

func (s *HubSuite) receive(client *Client) string {
	select {
	case msg, ok := <-client.send:
		s.Require().True(ok, "send channel closed")
		return string(msg)
	case <-time.After(time.Second):
		s.Require().Fail("timed out waiting for message")
		return ""
	}
}

func (s *HubSuite) TestBroadcastReachesAllClients() {
	a := s.connect("p_a")
	b := s.connect("p_b")

	s.hub.BroadcastEvent("roster-update", `{"phase":"bidding"}`)

	want := "event: roster-update\ndata: {\"phase\":\"bidding\"}\n\n"
	s.Equal(want, s.receive(a))
	s.Equal(want, s.receive(b))
}

func (s *HubSuite) TestSendEventTargetsOnePlayer() {
	a := s.connect("p_a")
	b := s.connect("p_b")

	s.hub.SendEvent("p_a", "hand-update", `{"seat":0}`)
	s.hub.BroadcastEvent("ping", "{}")

	s.Contains(s.receive(a), "event: hand-update")

	// The other player only sees the broadcast
	s.Contains(s.receive(b), "event: ping")
}

func (s *HubSuite) TestSendEventReachesEveryConnectionOfPlayer() {
	first := s.connect("p_a")
	second := s.connect("p_a")

	s.hub.SendEvent("p_a", "hand-update", "{}")

	s.Contains(s.receive(first), "event: hand-update")
	s.Contains(s.receive(second), "event: hand-update")
}

func (s *HubSuite) TestUnregisterFiresDisconnectOnLastConnection() {
	disconnected := make(chan model.PlayerID, 1)
	s.hub.SetOnDisconnect(func(playerID model.PlayerID) {
		disconnected <- playerID
	})

	first := s.connect("p_a")
	second := s.connect("p_a")

	s.hub.Unregister(first)
	s.Eventually(func() bool {
		return s.hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	select {
	case <-disconnected:
		s.Fail("disconnect fired while a connection remained")
	case <-time.After(50 * time.Millisecond):
	}

	s.hub.Unregister(second)
	select {
	case playerID := <-disconnected:
		s.Equal(model.PlayerID("p_a"), playerID)
	case <-time.After(time.Second):
		s.Fail("disconnect callback never fired")
	}
}

func (s *HubSuite) TestCloseDisconnectsClients() {
	client := s.connect("p_a")

	s.hub.Close()

	select {
	case _, ok := <-client.send:
		s.False(ok, "send channel should be closed")
	case <-time.After(time.Second):
		s.Fail("send channel never closed")
	}

	// TearDownTest closes again; rebuild so it closes a live hub
	s.hub = NewHub(testutil.NopLogger())
	go s.hub.Run()
}

func TestFormatSSEMessage(t *testing.T) {
	got := formatSSEMessage("card-played", "line1\nline2")
	want := "event: card-played\ndata: line1\ndata: line2\n\n"
	if string(got) != want {
		t.Errorf("formatSSEMessage = %q, want %q", got, want)
	}

	got = formatSSEMessage("ping", "")
	want = "event: ping\ndata: \n\n"
	if string(got) != want {
		t.Errorf("formatSSEMessage = %q, want %q", got, want)
	}
}
