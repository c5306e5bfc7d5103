package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/vkaradzhov/belot-server/internal/dependencies/clock"
	"github.com/vkaradzhov/belot-server/internal/model"
	"github.com/vkaradzhov/belot-server/internal/services/bidding"
	"github.com/vkaradzhov/belot-server/internal/services/dealer"
	"github.com/vkaradzhov/belot-server/internal/services/doubling"
	"github.com/vkaradzhov/belot-server/internal/services/scoring"
	"github.com/vkaradzhov/belot-server/internal/services/trick"
	"github.com/vkaradzhov/belot-server/internal/storage"
)

// Broadcaster pushes events to connected clients. The SSE hub implements
// it; the controller never depends on the transport directly.
type Broadcaster interface {
	Broadcast(event string, payload any)
	SendToPlayer(playerID model.PlayerID, event string, payload any)
}

// Controller owns the table state machine. Every mutation of the session
// happens under its lock, so concurrent actions serialize and each is
// validated against the state its predecessors left behind.
type Controller struct {
	mu sync.Mutex

	storage     storage.Storage
	dealer      *dealer.Service
	bidding     *bidding.Engine
	doubling    *doubling.Engine
	trick       *trick.Engine
	scoring     *scoring.Engine
	clock       clock.Clock
	logger      *slog.Logger
	broadcaster Broadcaster
}

// NewController creates a session controller
func NewController(
	storage storage.Storage,
	dealerService *dealer.Service,
	biddingEngine *bidding.Engine,
	doublingEngine *doubling.Engine,
	trickEngine *trick.Engine,
	scoringEngine *scoring.Engine,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		dealer:   dealerService,
		bidding:  biddingEngine,
		doubling: doublingEngine,
		trick:    trickEngine,
		scoring:  scoringEngine,
		clock:    clock,
		logger:   logger,
	}
}

// SetBroadcaster wires the event sink. Called once at startup, before
// the server accepts requests.
func (c *Controller) SetBroadcaster(b Broadcaster) {
	c.broadcaster = b
}

// Join seats a player at the next free seat. Seating the fourth player
// starts the first hand. Joining a finished table resets it first.
func (c *Controller) Join(ctx context.Context, playerID model.PlayerID) (model.Seat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return -1, err
	}

	sess, err := c.loadOrCreate(ctx)
	if err != nil {
		return -1, err
	}

	if sess.Phase == model.PhaseFinished {
		sess = model.NewSession(sess.ID, c.clock.Now())
	}

	if sess.Phase != model.PhaseWaitingForPlayers {
		return -1, model.ErrRoomFull
	}
	if _, seated := sess.SeatOf(playerID); seated {
		return -1, model.ErrAlreadySeated
	}
	if len(sess.Seats) >= model.NumSeats {
		return -1, model.ErrRoomFull
	}

	seat := model.Seat(len(sess.Seats))
	sess.Seats = append(sess.Seats, model.SeatAssignment{
		PlayerID:    playerID,
		DisplayName: player.DisplayName,
		Seat:        seat,
	})

	full := len(sess.Seats) == model.NumSeats
	if full {
		c.startHand(sess)
	}

	if err := c.save(ctx, sess); err != nil {
		return -1, err
	}

	c.logger.Info("player joined",
		slog.String("player_id", string(playerID)),
		slog.Int("seat", int(seat)),
	)

	c.broadcast(model.EventRosterUpdate, model.RosterUpdate{Seats: sess.Seats, Phase: sess.Phase})
	if full {
		c.announceDeal(sess)
	}
	return seat, nil
}

// Leave unseats a player. Leaving mid-hand aborts the hand; the
// remaining players keep their places and the table goes back to
// waiting, with any unfinished hand discarded.
func (c *Controller) Leave(ctx context.Context, playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, err := c.loadOrCreate(ctx)
	if err != nil {
		return err
	}

	if _, seated := sess.SeatOf(playerID); !seated {
		return model.ErrNotSeated
	}

	remaining := make([]model.SeatAssignment, 0, len(sess.Seats))
	for _, sa := range sess.Seats {
		if sa.PlayerID == playerID {
			continue
		}
		sa.Seat = model.Seat(len(remaining))
		remaining = append(remaining, sa)
	}

	fresh := model.NewSession(sess.ID, c.clock.Now())
	fresh.Seats = remaining
	fresh.CreatedAt = sess.CreatedAt

	if err := c.save(ctx, fresh); err != nil {
		return err
	}

	c.logger.Info("player left", slog.String("player_id", string(playerID)))
	c.broadcast(model.EventRosterUpdate, model.RosterUpdate{Seats: fresh.Seats, Phase: fresh.Phase})
	return nil
}

// SubmitBid applies one auction action. A concluded auction either moves
// the table into the doubling phase or triggers a redeal.
func (c *Controller) SubmitBid(ctx context.Context, playerID model.PlayerID, bid model.Bid) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, seat, err := c.loadSeated(ctx, playerID)
	if err != nil {
		return err
	}

	outcome, err := c.bidding.SubmitBid(sess, seat, bid)
	if err != nil {
		return err
	}

	switch outcome {
	case bidding.OutcomeContract:
		sess.Phase = model.PhaseDoubling
		sess.Bidding = nil
		c.dealer.DealSecond(sess)
		c.doubling.Start(sess)

		if err := c.save(ctx, sess); err != nil {
			return err
		}
		declarer := sess.Contract.DeclarerSeat
		c.broadcast(model.EventBiddingEnd, model.BiddingEnd{Contract: sess.Contract, Declarer: &declarer})
		c.sendHands(sess)
		c.broadcastDoubling(sess)

	case bidding.OutcomeNoContract:
		// Fresh deal, fresh auction
		c.startHand(sess)
		if err := c.save(ctx, sess); err != nil {
			return err
		}
		c.broadcast(model.EventBiddingEnd, model.BiddingEnd{Redeal: true})
		c.announceDeal(sess)

	default:
		if err := c.save(ctx, sess); err != nil {
			return err
		}
		c.broadcastBidding(sess)
	}
	return nil
}

// CallContra escalates the stake to contra
func (c *Controller) CallContra(ctx context.Context, playerID model.PlayerID) error {
	return c.doublingAction(ctx, playerID, c.doubling.CallContra)
}

// PassContra declines the contra call
func (c *Controller) PassContra(ctx context.Context, playerID model.PlayerID) error {
	return c.doublingAction(ctx, playerID, c.doubling.PassContra)
}

// CallRekontra escalates the stake to rekontra
func (c *Controller) CallRekontra(ctx context.Context, playerID model.PlayerID) error {
	return c.doublingAction(ctx, playerID, c.doubling.CallRekontra)
}

// PassRekontra declines the rekontra call
func (c *Controller) PassRekontra(ctx context.Context, playerID model.PlayerID) error {
	return c.doublingAction(ctx, playerID, c.doubling.PassRekontra)
}

func (c *Controller) doublingAction(
	ctx context.Context,
	playerID model.PlayerID,
	action func(*model.Session, model.Seat) (doubling.Outcome, error),
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, seat, err := c.loadSeated(ctx, playerID)
	if err != nil {
		return err
	}

	outcome, err := action(sess, seat)
	if err != nil {
		return err
	}

	if outcome == doubling.OutcomeLocked {
		sess.Stake = sess.Doubling.Level
		sess.Doubling = nil
		sess.Phase = model.PhasePlaying
		c.trick.StartPlay(sess)

		if err := c.save(ctx, sess); err != nil {
			return err
		}
		c.broadcast(model.EventDoublingState, model.DoublingSnapshot{Level: sess.Stake})
		c.broadcastPlay(sess)
		return nil
	}

	if err := c.save(ctx, sess); err != nil {
		return err
	}
	c.broadcastDoubling(sess)
	return nil
}

// PlayCard applies one play. A completed 8th trick settles the hand,
// and a settled hand either ends the match or deals the next hand.
func (c *Controller) PlayCard(ctx context.Context, playerID model.PlayerID, card model.Card) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, seat, err := c.loadSeated(ctx, playerID)
	if err != nil {
		return err
	}

	result, err := c.trick.PlayCard(sess, seat, card)
	if err != nil {
		return err
	}

	if result.Resolved {
		team := model.TeamOf(result.WinnerSeat)
		sess.Play.HandPoints[team] += scoring.TrickPoints(result.Trick, *sess.Contract)
	}

	if !result.HandComplete {
		if err := c.save(ctx, sess); err != nil {
			return err
		}
		c.broadcast(model.EventCardPlayed, model.CardPlayed{Card: card, Seat: seat})
		c.broadcastPlay(sess)
		return nil
	}

	settlement := c.scoring.SettleHand(sess, c.clock.Now())

	if settlement.MatchOver {
		sess.Phase = model.PhaseFinished
		sess.Contract = nil
		sess.Play = nil
	} else {
		c.startHand(sess)
	}

	if err := c.save(ctx, sess); err != nil {
		return err
	}

	c.broadcast(model.EventCardPlayed, model.CardPlayed{Card: card, Seat: seat})
	c.broadcast(model.EventHandResult, model.HandResult{
		Summary:     settlement.Summary,
		TotalScores: sess.TotalScores,
	})

	if settlement.MatchOver {
		c.broadcast(model.EventGameEnd, model.GameEnd{
			WinningTeam: settlement.WinnerTeam,
			TotalScores: sess.TotalScores,
		})
		return nil
	}

	c.announceDeal(sess)
	return nil
}

// State returns the current session. Callers must treat it as read-only
// and must not expose the hands of other players.
func (c *Controller) State(ctx context.Context) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadOrCreate(ctx)
}

// HandOf returns the cards held by the given player
func (c *Controller) HandOf(ctx context.Context, playerID model.PlayerID) ([]model.Card, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, seat, err := c.loadSeated(ctx, playerID)
	if err != nil {
		return nil, err
	}
	hand := make([]model.Card, len(sess.Hands[seat]))
	copy(hand, sess.Hands[seat])
	return hand, nil
}

// History returns the settled hand summaries for the current match
func (c *Controller) History(ctx context.Context) ([]model.HandSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, err := c.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	return sess.HandHistory, nil
}

// HandleDisconnect unseats a player whose event stream dropped. Called
// by the SSE hub; a player who was never seated is a no-op.
func (c *Controller) HandleDisconnect(ctx context.Context, playerID model.PlayerID) {
	if err := c.Leave(ctx, playerID); err != nil && !errors.Is(err, model.ErrNotSeated) {
		c.logger.Error("disconnect teardown failed",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
	}
}

// startHand moves the session into a fresh auction: new hand number,
// new shuffle, two dealing waves, bidding opens at seat 0.
func (c *Controller) startHand(sess *model.Session) {
	sess.HandNumber++
	sess.Contract = nil
	sess.Stake = model.DoublingNone
	sess.Doubling = nil
	sess.Play = nil
	sess.Phase = model.PhaseBidding
	sess.Bidding = model.NewBiddingState()
	c.dealer.DealInitial(sess)
}

func (c *Controller) loadOrCreate(ctx context.Context) (*model.Session, error) {
	sess, err := c.storage.GetSession(ctx, model.DefaultSessionID)
	if errors.Is(err, model.ErrSessionNotFound) {
		sess = model.NewSession(model.DefaultSessionID, c.clock.Now())
		if err := c.storage.SaveSession(ctx, sess); err != nil {
			return nil, err
		}
		return sess, nil
	}
	return sess, err
}

func (c *Controller) loadSeated(ctx context.Context, playerID model.PlayerID) (*model.Session, model.Seat, error) {
	sess, err := c.loadOrCreate(ctx)
	if err != nil {
		return nil, -1, err
	}
	seat, seated := sess.SeatOf(playerID)
	if !seated {
		return nil, -1, model.ErrNotSeated
	}
	return sess, seat, nil
}

func (c *Controller) save(ctx context.Context, sess *model.Session) error {
	sess.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, sess); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(sess.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (c *Controller) broadcast(event string, payload any) {
	if c.broadcaster != nil {
		c.broadcaster.Broadcast(event, payload)
	}
}

// announceDeal pushes the deal notice, each seat's private hand and the
// opening auction state
func (c *Controller) announceDeal(sess *model.Session) {
	c.broadcast(model.EventDealStart, model.DealStart{HandNumber: sess.HandNumber})
	c.sendHands(sess)
	c.broadcastBidding(sess)
}

// sendHands pushes each seat's hand to that player only
func (c *Controller) sendHands(sess *model.Session) {
	if c.broadcaster == nil {
		return
	}
	for _, sa := range sess.Seats {
		c.broadcaster.SendToPlayer(sa.PlayerID, model.EventHandUpdate, model.HandUpdate{
			Seat:  sa.Seat,
			Cards: sess.Hands[sa.Seat],
		})
	}
}

func (c *Controller) broadcastBidding(sess *model.Session) {
	b := sess.Bidding
	if b == nil {
		return
	}
	snap := model.BiddingSnapshot{
		CurrentBid: b.CurrentBid,
		TurnSeat:   b.TurnSeat,
		History:    b.History,
		Seats:      sess.Seats,
	}
	if b.DeclarerSeat >= 0 {
		declarer := b.DeclarerSeat
		snap.Declarer = &declarer
	}
	c.broadcast(model.EventBiddingState, snap)
}

func (c *Controller) broadcastDoubling(sess *model.Session) {
	d := sess.Doubling
	if d == nil {
		return
	}
	turn := d.TurnSeat
	c.broadcast(model.EventDoublingState, model.DoublingSnapshot{Level: d.Level, TurnSeat: &turn})
}

func (c *Controller) broadcastPlay(sess *model.Session) {
	p := sess.Play
	if p == nil || sess.Contract == nil {
		return
	}
	c.broadcast(model.EventPlayState, model.PlaySnapshot{
		CurrentTrick:    p.CurrentTrick,
		TurnSeat:        p.TurnSeat,
		TrickLeaderSeat: p.TrickLeaderSeat,
		HandSizes:       sess.HandSizes(),
		Contract:        *sess.Contract,
		Stake:           sess.Stake,
		TrickCounts:     [model.NumTeams]int{len(p.TricksWon[0]), len(p.TricksWon[1])},
		HandPoints:      p.HandPoints,
		TotalScores:     sess.TotalScores,
	})
}
