package bidding

import (
	"log/slog"

	"github.com/vkaradzhov/belot-server/internal/model"
)

// Outcome reports how the auction stands after an accepted action
type Outcome int

const (
	// OutcomeContinue means the auction is still open
	OutcomeContinue Outcome = iota
	// OutcomeContract means three passes followed a standing bid
	OutcomeContract
	// OutcomeNoContract means all four seats passed with no bid made
	OutcomeNoContract
)

// Engine runs the turn-ordered auction over the bid ladder
type Engine struct {
	logger *slog.Logger
}

// New creates a bidding engine
func New(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// SubmitBid validates and applies a single auction action for seat.
// A rejected action leaves the state untouched. On OutcomeContract the
// session's Contract is set from the standing bid.
func (e *Engine) SubmitBid(sess *model.Session, seat model.Seat, bid model.Bid) (Outcome, error) {
	b := sess.Bidding
	if sess.Phase != model.PhaseBidding || b == nil {
		return OutcomeContinue, model.ErrWrongPhase
	}
	if seat != b.TurnSeat {
		return OutcomeContinue, model.ErrOutOfTurn
	}

	if bid == model.BidPass {
		return e.applyPass(sess, seat)
	}
	return e.applyRaise(sess, seat, bid)
}

func (e *Engine) applyPass(sess *model.Session, seat model.Seat) (Outcome, error) {
	b := sess.Bidding
	b.History = append(b.History, model.BidRecord{Seat: seat, Bid: model.BidPass})
	b.PassCount++

	// Three consecutive passes after the last raise: no one can outbid
	if b.PassCount >= 3 && b.CurrentBid != "" {
		contract := model.NewContract(b.CurrentBid, b.DeclarerSeat)
		sess.Contract = &contract
		e.logger.Info("auction concluded",
			slog.String("contract", string(contract.Bid)),
			slog.Int("declarer_seat", int(contract.DeclarerSeat)),
		)
		return OutcomeContract, nil
	}

	// All four seats passed with no bid ever made: redeal
	if b.PassCount >= 4 && b.CurrentBid == "" {
		e.logger.Info("auction concluded without a contract")
		return OutcomeNoContract, nil
	}

	b.TurnSeat = model.NextSeat(b.TurnSeat)
	return OutcomeContinue, nil
}

func (e *Engine) applyRaise(sess *model.Session, seat model.Seat, bid model.Bid) (Outcome, error) {
	b := sess.Bidding
	if !model.ValidBid(bid) {
		return OutcomeContinue, model.ErrInvalidBid
	}
	if b.CurrentBid != "" && !bid.Outranks(b.CurrentBid) {
		return OutcomeContinue, model.ErrInvalidBid
	}

	b.CurrentBid = bid
	b.DeclarerSeat = seat
	b.PassCount = 0
	b.History = append(b.History, model.BidRecord{Seat: seat, Bid: bid})
	b.TurnSeat = model.NextSeat(b.TurnSeat)
	return OutcomeContinue, nil
}
