package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vkaradzhov/belot-server/internal/dependencies/mocks"
	"github.com/vkaradzhov/belot-server/internal/dependencies/random"
	"github.com/vkaradzhov/belot-server/internal/model"
	"github.com/vkaradzhov/belot-server/internal/services/bidding"
	"github.com/vkaradzhov/belot-server/internal/services/dealer"
	"github.com/vkaradzhov/belot-server/internal/services/doubling"
	"github.com/vkaradzhov/belot-server/internal/services/scoring"
	"github.com/vkaradzhov/belot-server/internal/services/trick"
	"github.com/vkaradzhov/belot-server/internal/storage/memory"
	"github.com/vkaradzhov/belot-server/internal/testutil"
)

type recordedEvent struct {
	event  string
	target model.PlayerID // empty for broadcasts
}

// recordingBroadcaster captures events instead of pushing them to clients
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *recordingBroadcaster) Broadcast(event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{event: event})
}

func (b *recordingBroadcaster) SendToPlayer(playerID model.PlayerID, event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{event: event, target: playerID})
}

func (b *recordingBroadcaster) seen(event string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.events {
		if e.event == event {
			return true
		}
	}
	return false
}

type ControllerSuite struct {
	suite.Suite
	controller  *Controller
	storage     *memory.Storage
	clock       *mocks.MockClock
	broadcaster *recordingBroadcaster
	ctx         context.Context
	players     []model.PlayerID
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.broadcaster = &recordingBroadcaster{}
	s.ctx = context.Background()

	logger := testutil.NopLogger()
	rnd := random.NewSeeded(1)

	s.controller = NewController(
		s.storage,
		dealer.New(rnd, logger),
		bidding.New(logger),
		doubling.New(logger),
		trick.New(logger),
		scoring.New(logger),
		s.clock,
		logger,
	)
	s.controller.SetBroadcaster(s.broadcaster)

	s.players = nil
	names := []string{"Ana", "Boris", "Vera", "Georgi"}
	for i, name := range names {
		id := model.PlayerID("p_" + name)
		err := s.storage.SavePlayer(s.ctx, &model.Player{
			ID:          id,
			DisplayName: name,
			IsGuest:     true,
			CreatedAt:   s.clock.Now(),
		})
		s.Require().NoError(err, "player %d", i)
		s.players = append(s.players, id)
	}
}

func (s *ControllerSuite) joinAll() {
	for i, id := range s.players {
		seat, err := s.controller.Join(s.ctx, id)
		s.Require().NoError(err)
		s.Require().Equal(model.Seat(i), seat)
	}
}

// runAuction has seat 0 declare and everyone else pass
func (s *ControllerSuite) runAuction(bid model.Bid) {
	s.Require().NoError(s.controller.SubmitBid(s.ctx, s.players[0], bid))
	for _, id := range s.players[1:] {
		s.Require().NoError(s.controller.SubmitBid(s.ctx, id, model.BidPass))
	}
}

// declineDoubling has both opponents wave contra through
func (s *ControllerSuite) declineDoubling() {
	s.Require().NoError(s.controller.PassContra(s.ctx, s.players[1]))
	s.Require().NoError(s.controller.PassContra(s.ctx, s.players[3]))
}

// playHand plays legal cards for whoever holds the turn until the hand
// settles. Legality is probed card by card.
func (s *ControllerSuite) playHand() {
	for i := 0; i < model.DeckSize; i++ {
		sess, err := s.controller.State(s.ctx)
		s.Require().NoError(err)
		if sess.Phase != model.PhasePlaying {
			return
		}

		playerID := sess.Seats[sess.Play.TurnSeat].PlayerID
		hand, err := s.controller.HandOf(s.ctx, playerID)
		s.Require().NoError(err)

		played := false
		for _, card := range hand {
			err := s.controller.PlayCard(s.ctx, playerID, card)
			if err == nil {
				played = true
				break
			}
			s.Require().ErrorIs(err, model.ErrIllegalCard)
		}
		s.Require().True(played, "no legal card found")
	}
}

func (s *ControllerSuite) TestJoinSeatsInOrder() {
	seat, err := s.controller.Join(s.ctx, s.players[0])
	s.Require().NoError(err)
	s.Equal(model.Seat(0), seat)

	sess, err := s.controller.State(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.PhaseWaitingForPlayers, sess.Phase)
	s.Len(sess.Seats, 1)
	s.True(s.broadcaster.seen(model.EventRosterUpdate))
}

func (s *ControllerSuite) TestJoinUnknownPlayer() {
	_, err := s.controller.Join(s.ctx, "p_nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ControllerSuite) TestJoinTwice() {
	_, err := s.controller.Join(s.ctx, s.players[0])
	s.Require().NoError(err)

	_, err = s.controller.Join(s.ctx, s.players[0])
	s.ErrorIs(err, model.ErrAlreadySeated)
}

func (s *ControllerSuite) TestFourthJoinStartsHand() {
	s.joinAll()

	sess, err := s.controller.State(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.PhaseBidding, sess.Phase)
	s.Equal(1, sess.HandNumber)
	s.Require().NotNil(sess.Bidding)
	s.Equal(model.Seat(0), sess.Bidding.TurnSeat)

	for seat := 0; seat < model.NumSeats; seat++ {
		s.Len(sess.Hands[seat], 5)
	}

	s.True(s.broadcaster.seen(model.EventDealStart))
	s.True(s.broadcaster.seen(model.EventHandUpdate))
	s.True(s.broadcaster.seen(model.EventBiddingState))
}

func (s *ControllerSuite) TestJoinFullTable() {
	s.joinAll()

	extra := model.PlayerID("p_extra")
	err := s.storage.SavePlayer(s.ctx, &model.Player{ID: extra, DisplayName: "Extra"})
	s.Require().NoError(err)

	_, err = s.controller.Join(s.ctx, extra)
	s.ErrorIs(err, model.ErrRoomFull)
}

func (s *ControllerSuite) TestLeaveAbortsHand() {
	s.joinAll()

	err := s.controller.Leave(s.ctx, s.players[1])
	s.Require().NoError(err)

	sess, err := s.controller.State(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.PhaseWaitingForPlayers, sess.Phase)
	s.Nil(sess.Bidding)
	s.Equal(0, sess.HandNumber)

	// The remaining players keep their order with seats compacted
	s.Require().Len(sess.Seats, 3)
	s.Equal(s.players[0], sess.Seats[0].PlayerID)
	s.Equal(s.players[2], sess.Seats[1].PlayerID)
	s.Equal(s.players[3], sess.Seats[2].PlayerID)
	for i, sa := range sess.Seats {
		s.Equal(model.Seat(i), sa.Seat)
	}
}

func (s *ControllerSuite) TestLeaveNotSeated() {
	err := s.controller.Leave(s.ctx, s.players[0])
	s.ErrorIs(err, model.ErrNotSeated)
}

func (s *ControllerSuite) TestHandleDisconnectUnseats() {
	s.joinAll()

	s.controller.HandleDisconnect(s.ctx, s.players[2])

	sess, err := s.controller.State(s.ctx)
	s.Require().NoError(err)
	s.Len(sess.Seats, 3)

	// A player who was never seated is a no-op
	s.controller.HandleDisconnect(s.ctx, "p_nobody")
}

func (s *ControllerSuite) TestAuctionToDoubling() {
	s.joinAll()
	s.runAuction(model.BidClubs)

	sess, err := s.controller.State(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.PhaseDoubling, sess.Phase)
	s.Nil(sess.Bidding)
	s.Require().NotNil(sess.Contract)
	s.Equal(model.BidClubs, sess.Contract.Bid)
	s.Equal(model.Seat(0), sess.Contract.DeclarerSeat)

	// The second wave brings every hand to eight cards
	for seat := 0; seat < model.NumSeats; seat++ {
		s.Len(sess.Hands[seat], model.HandSize)
	}
	s.Empty(sess.Deck)

	s.True(s.broadcaster.seen(model.EventBiddingEnd))
	s.True(s.broadcaster.seen(model.EventDoublingState))
}

func (s *ControllerSuite) TestAllPassRedeals() {
	s.joinAll()

	before, err := s.controller.HandOf(s.ctx, s.players[0])
	s.Require().NoError(err)
	s.Len(before, 5)

	for _, id := range s.players {
		s.Require().NoError(s.controller.SubmitBid(s.ctx, id, model.BidPass))
	}

	sess, err := s.controller.State(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.PhaseBidding, sess.Phase)
	s.Equal(2, sess.HandNumber)
	s.Nil(sess.Contract)
	s.True(s.broadcaster.seen(model.EventBiddingEnd))
}

func (s *ControllerSuite) TestBidRequiresSeat() {
	err := s.controller.SubmitBid(s.ctx, s.players[0], model.BidHearts)
	s.ErrorIs(err, model.ErrNotSeated)
}

func (s *ControllerSuite) TestDoublingDeclinedStartsPlay() {
	s.joinAll()
	s.runAuction(model.BidHearts)
	s.declineDoubling()

	sess, err := s.controller.State(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.PhasePlaying, sess.Phase)
	s.Equal(model.DoublingNone, sess.Stake)
	s.Nil(sess.Doubling)
	s.Require().NotNil(sess.Play)
	s.Equal(model.Seat(1), sess.Play.TurnSeat)
	s.True(s.broadcaster.seen(model.EventPlayState))
}

func (s *ControllerSuite) TestRekontraQuadruplesStake() {
	s.joinAll()
	s.runAuction(model.BidHearts)

	s.Require().NoError(s.controller.CallContra(s.ctx, s.players[1]))
	s.Require().NoError(s.controller.CallRekontra(s.ctx, s.players[0]))

	sess, err := s.controller.State(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.PhasePlaying, sess.Phase)
	s.Equal(model.DoublingRekontra, sess.Stake)
}

func (s *ControllerSuite) TestFullHandSettles() {
	s.joinAll()
	s.runAuction(model.BidAllTrumps)
	s.declineDoubling()

	s.playHand()

	history, err := s.controller.History(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(history, 1)

	summary := history[0]
	s.Equal(1, summary.HandNumber)
	s.Equal(model.BidAllTrumps, summary.Contract.Bid)
	s.Equal(model.HandSize, summary.TrickCounts[0]+summary.TrickCounts[1])

	sess, err := s.controller.State(s.ctx)
	s.Require().NoError(err)
	if sess.Phase == model.PhaseFinished {
		s.True(s.broadcaster.seen(model.EventGameEnd))
	} else {
		// Next hand deals immediately
		s.Equal(model.PhaseBidding, sess.Phase)
		s.Equal(2, sess.HandNumber)
	}
	s.True(s.broadcaster.seen(model.EventHandResult))
	s.True(s.broadcaster.seen(model.EventCardPlayed))
}

func (s *ControllerSuite) TestGameRunsToCompletion() {
	s.joinAll()

	// Declare every hand at all-trumps until a team crosses the line
	for hand := 0; hand < 40; hand++ {
		sess, err := s.controller.State(s.ctx)
		s.Require().NoError(err)
		if sess.Phase == model.PhaseFinished {
			break
		}
		s.Require().Equal(model.PhaseBidding, sess.Phase)

		declarer := sess.Seats[sess.Bidding.TurnSeat].PlayerID
		s.Require().NoError(s.controller.SubmitBid(s.ctx, declarer, model.BidAllTrumps))
		for seat := model.NextSeat(0); seat != 0; seat = model.NextSeat(seat) {
			s.Require().NoError(s.controller.SubmitBid(s.ctx, sess.Seats[seat].PlayerID, model.BidPass))
		}

		sess, err = s.controller.State(s.ctx)
		s.Require().NoError(err)
		for _, seat := range []model.Seat{1, 3} {
			s.Require().NoError(s.controller.PassContra(s.ctx, sess.Seats[seat].PlayerID))
		}
		s.playHand()
	}

	sess, err := s.controller.State(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(model.PhaseFinished, sess.Phase)
	s.True(sess.TotalScores[0] >= model.WinningScore || sess.TotalScores[1] >= model.WinningScore)
	s.True(s.broadcaster.seen(model.EventGameEnd))

	// A join after the match resets the table
	seat, err := s.controller.Join(s.ctx, s.players[0])
	s.Require().NoError(err)
	s.Equal(model.Seat(0), seat)

	sess, err = s.controller.State(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.PhaseWaitingForPlayers, sess.Phase)
	s.Len(sess.Seats, 1)
}
