package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/vkaradzhov/belot-server/internal/model"
)

type RedisStorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestRedisStorageSuite(t *testing.T) {
	suite.Run(t, new(RedisStorageSuite))
}

func (s *RedisStorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, Config{
		GuestPlayerTTL: time.Hour,
		SessionTTL:     time.Hour,
	})
	s.ctx = context.Background()
}

func (s *RedisStorageSuite) TearDownTest() {
	_ = s.storage.Close()
	s.mini.Close()
}

func (s *RedisStorageSuite) TestPlayerRoundTrip() {
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

func (s *RedisStorageSuite) TestGuestPlayerHasTTL() {
	guest := &model.Player{ID: "p_guest", IsGuest: true}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, guest))
	s.Greater(s.mini.TTL(playerKey("p_guest")), time.Duration(0))

	registered := &model.Player{ID: "p_reg", IsGuest: false}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, registered))
	s.Equal(time.Duration(0), s.mini.TTL(playerKey("p_reg")))
}

func (s *RedisStorageSuite) TestGuestPlayerExpires() {
	guest := &model.Player{ID: "p_guest", IsGuest: true}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, guest))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetPlayer(s.ctx, "p_guest")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RedisStorageSuite) TestGetMissingPlayer() {
	_, err := s.storage.GetPlayer(s.ctx, "p_missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RedisStorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "p_test"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "p_test"))

	_, err := s.storage.GetPlayer(s.ctx, "p_test")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RedisStorageSuite) TestRegisteredPlayerLookups() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "p_test",
		Username:     "ivan",
		PasswordHash: "hash",
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
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

func (s *RedisStorageSuite) TestSessionRoundTrip() {
	sess := model.NewSession(model.DefaultSessionID, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	sess.Phase = model.PhaseBidding
	sess.Bidding = model.NewBiddingState()
	sess.Hands[0] = []model.Card{{Suit: model.SuitHearts, Rank: model.RankA}}
	sess.TotalScores = [2]int{100, 60}

	s.Require().NoError(s.storage.SaveSession(s.ctx, sess))

	got, err := s.storage.GetSession(s.ctx, model.DefaultSessionID)
	s.Require().NoError(err)
	s.Equal(sess.Phase, got.Phase)
	s.Equal(sess.Hands, got.Hands)
	s.Equal(sess.TotalScores, got.TotalScores)
	s.Equal(sess.Bidding, got.Bidding)
}

func (s *RedisStorageSuite) TestGetMissingSession() {
	_, err := s.storage.GetSession(s.ctx, "nope")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *RedisStorageSuite) TestDeleteSession() {
	sess := model.NewSession(model.DefaultSessionID, time.Now())
	s.Require().NoError(s.storage.SaveSession(s.ctx, sess))

	s.Require().NoError(s.storage.DeleteSession(s.ctx, model.DefaultSessionID))

	_, err := s.storage.GetSession(s.ctx, model.DefaultSessionID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}
