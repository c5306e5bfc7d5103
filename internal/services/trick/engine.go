package trick

import (
	"log/slog"

	"github.com/vkaradzhov/belot-server/internal/model"
)

// Rank orderings, low to high. Trump-ranked cards promote the 9 and J
// above the ace; plain cards promote only the 10.
var (
	trumpOrder = []model.Rank{model.Rank7, model.Rank8, model.RankQ, model.RankK, model.Rank10, model.RankA, model.Rank9, model.RankJ}
	plainOrder = []model.Rank{model.Rank7, model.Rank8, model.Rank9, model.RankJ, model.RankQ, model.RankK, model.Rank10, model.RankA}
)

func orderIndex(order []model.Rank, r model.Rank) int {
	for i, v := range order {
		if v == r {
			return i
		}
	}
	return -1
}

// PlayResult describes the effect of an accepted play
type PlayResult struct {
	// Resolved is true when this play completed the trick
	Resolved bool
	// WinnerSeat and Trick are set only when Resolved
	WinnerSeat model.Seat
	Trick      []model.PlayedCard
	// HandComplete is true when this was the 8th trick of the hand
	HandComplete bool
}

// Engine enforces per-play legality and resolves completed tricks
type Engine struct {
	logger *slog.Logger
}

// New creates a trick engine
func New(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// StartPlay initialises the play state. The seat right of the declarer
// leads the first trick.
func (e *Engine) StartPlay(sess *model.Session) {
	leader := model.NextSeat(sess.Contract.DeclarerSeat)
	sess.Play = &model.PlayState{
		TurnSeat:        leader,
		TrickLeaderSeat: leader,
		CurrentTrick:    []model.PlayedCard{},
		TricksWon:       [model.NumTeams][][]model.PlayedCard{{}, {}},
		LastTrickTeam:   -1,
	}
}

// RankValue returns the comparison strength of a card under the contract.
// Values are only comparable between cards ranked the same way.
func RankValue(card model.Card, contract model.Contract) int {
	if contract.TrumpRanked(card) {
		return orderIndex(trumpOrder, card.Rank)
	}
	return orderIndex(plainOrder, card.Rank)
}

// PlayCard validates and applies a play for seat. A rejected play leaves
// all state unchanged. When the play completes the trick it is resolved
// atomically: moved to the winning team's pile and the lead passed to
// the winner.
func (e *Engine) PlayCard(sess *model.Session, seat model.Seat, card model.Card) (PlayResult, error) {
	p := sess.Play
	if sess.Phase != model.PhasePlaying || p == nil || sess.Contract == nil {
		return PlayResult{}, model.ErrWrongPhase
	}
	if seat != p.TurnSeat {
		return PlayResult{}, model.ErrOutOfTurn
	}
	if !model.ContainsCard(sess.Hands[seat], card) {
		return PlayResult{}, model.ErrCardNotHeld
	}
	if !e.legal(sess, seat, card) {
		return PlayResult{}, model.ErrIllegalCard
	}

	sess.Hands[seat], _ = model.RemoveCard(sess.Hands[seat], card)
	p.CurrentTrick = append(p.CurrentTrick, model.PlayedCard{Card: card, Seat: seat})

	if len(p.CurrentTrick) < model.NumSeats {
		p.TurnSeat = model.NextSeat(p.TurnSeat)
		return PlayResult{}, nil
	}

	return e.resolveTrick(sess), nil
}

// legal checks the follow-suit and trump-forcing rules. The first card
// of a trick is always legal (turn and possession already checked).
func (e *Engine) legal(sess *model.Session, seat model.Seat, card model.Card) bool {
	p := sess.Play
	if len(p.CurrentTrick) == 0 {
		return true
	}

	hand := sess.Hands[seat]
	contract := *sess.Contract
	leadSuit := p.CurrentTrick[0].Card.Suit

	hasLead := false
	for _, c := range hand {
		if c.Suit == leadSuit {
			hasLead = true
			break
		}
	}

	// Follow-suit applies in every mode
	if hasLead {
		return card.Suit == leadSuit
	}

	// Trump-forcing only exists when a single trump suit does
	if contract.Mode != model.ModeSuitTrump {
		return true
	}

	hasTrump := false
	for _, c := range hand {
		if c.Suit == contract.TrumpSuit {
			hasTrump = true
			break
		}
	}
	if !hasTrump {
		return true
	}

	// Void in the lead suit but holding trump: must play trump
	if card.Suit != contract.TrumpSuit {
		return false
	}

	// Overtrump: when a trump is already in the trick and a higher one
	// is held, a lower trump is illegal
	highest := -1
	for _, pc := range p.CurrentTrick {
		if pc.Card.Suit == contract.TrumpSuit {
			if v := RankValue(pc.Card, contract); v > highest {
				highest = v
			}
		}
	}
	if highest < 0 {
		return true
	}

	holdsHigher := false
	for _, c := range hand {
		if c.Suit == contract.TrumpSuit && RankValue(c, contract) > highest {
			holdsHigher = true
			break
		}
	}
	if holdsHigher {
		return RankValue(card, contract) > highest
	}
	return true
}

// resolveTrick determines the winner, moves the trick to the winning
// team's pile and passes the lead to the winner.
func (e *Engine) resolveTrick(sess *model.Session) PlayResult {
	p := sess.Play
	contract := *sess.Contract

	winner := Winner(p.CurrentTrick, contract)
	team := model.TeamOf(winner)

	done := make([]model.PlayedCard, len(p.CurrentTrick))
	copy(done, p.CurrentTrick)
	p.TricksWon[team] = append(p.TricksWon[team], done)
	p.CurrentTrick = []model.PlayedCard{}
	p.TurnSeat = winner
	p.TrickLeaderSeat = winner

	handComplete := p.TrickCount() == model.HandSize
	if handComplete {
		p.LastTrickTeam = team
	}

	e.logger.Info("trick resolved",
		slog.Int("winner_seat", int(winner)),
		slog.Int("trick_number", p.TrickCount()),
	)

	return PlayResult{
		Resolved:     true,
		WinnerSeat:   winner,
		Trick:        done,
		HandComplete: handComplete,
	}
}

// Winner returns the seat holding the highest-ranked card of the trick.
// Trumps dominate the lead suit; otherwise only cards of the lead suit
// compete, compared under the contract's ordering.
func Winner(trick []model.PlayedCard, contract model.Contract) model.Seat {
	leadSuit := trick[0].Card.Suit

	competes := func(c model.Card) bool {
		if contract.Mode == model.ModeSuitTrump {
			// Any trump beats the lead suit
			for _, pc := range trick {
				if pc.Card.Suit == contract.TrumpSuit {
					return c.Suit == contract.TrumpSuit
				}
			}
		}
		return c.Suit == leadSuit
	}

	best := -1
	winner := trick[0].Seat
	for _, pc := range trick {
		if !competes(pc.Card) {
			continue
		}
		if v := RankValue(pc.Card, contract); v > best {
			best = v
			winner = pc.Seat
		}
	}
	return winner
}
