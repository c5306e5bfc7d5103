package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vkaradzhov/belot-server/internal/model"
)

type MemoryStorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestMemoryStorageSuite(t *testing.T) {
	suite.Run(t, new(MemoryStorageSuite))
}

func (s *MemoryStorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *MemoryStorageSuite) TestPlayerRoundTrip() {
	player := &model.Player{
		ID:          "p_test",
		DisplayName: "Ivan",
		IsGuest:     true,
		CreatedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	got, err := s.storage.GetPlayer(s.ctx, "p_test")
	s.Require().NoError(err)
	s.Equal(player, got)
}

func (s *MemoryStorageSuite) TestGetMissingPlayer() {
	_, err := s.storage.GetPlayer(s.ctx, "p_missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *MemoryStorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "p_test"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "p_test"))

	_, err := s.storage.GetPlayer(s.ctx, "p_test")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *MemoryStorageSuite) TestRegisteredPlayerLookups() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "p_test",
		Username:     "ivan",
		PasswordHash: "hash",
	}

	s.Require().NoError(s.storage.SaveRegisteredPlayer(s.ctx, rp))

	got, err := s.storage.GetRegisteredPlayer(s.ctx, "p_test")
	s.Require().NoError(err)
	s.Equal(rp, got)

	got, err = s.storage.GetRegisteredPlayerByUsername(s.ctx, "ivan")
	s.Require().NoError(err)
	s.Equal(rp, got)

	_, err = s.storage.GetRegisteredPlayerByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *MemoryStorageSuite) TestSessionRoundTrip() {
	sess := model.NewSession(model.DefaultSessionID, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	sess.Phase = model.PhaseBidding
	sess.TotalScores = [2]int{100, 60}

	s.Require().NoError(s.storage.SaveSession(s.ctx, sess))

	got, err := s.storage.GetSession(s.ctx, model.DefaultSessionID)
	s.Require().NoError(err)
	s.Equal(sess, got)
}

func (s *MemoryStorageSuite) TestDeleteSession() {
	sess := model.NewSession(model.DefaultSessionID, time.Now())
	s.Require().NoError(s.storage.SaveSession(s.ctx, sess))

	s.Require().NoError(s.storage.DeleteSession(s.ctx, model.DefaultSessionID))

	_, err := s.storage.GetSession(s.ctx, model.DefaultSessionID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}
