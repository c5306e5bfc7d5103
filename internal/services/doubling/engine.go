package doubling

import (
	"log/slog"

	"github.com/vkaradzhov/belot-server/internal/model"
)

// Outcome reports how the escalation stands after an accepted action
type Outcome int

const (
	// OutcomeContinue means the other eligible seat still has to act
	OutcomeContinue Outcome = iota
	// OutcomeLocked means the level is final and play begins
	OutcomeLocked
)

// Engine runs the contra/rekontra escalation between the two teams.
// Contra may only be called by the non-declaring team while the level
// is none; rekontra only by the declaring team once the level is contra.
type Engine struct {
	logger *slog.Logger
}

// New creates a doubling engine
func New(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Start initialises the escalation state after an auction with a contract
func (e *Engine) Start(sess *model.Session) {
	declarerTeam := model.TeamOf(sess.Contract.DeclarerSeat)
	sess.Doubling = &model.DoublingState{
		Level:       model.DoublingNone,
		TurnSeat:    firstEligible(declarerTeam.Opponent(), nil),
		PassedSeats: []model.Seat{},
	}
}

// CallContra escalates the stake to contra
func (e *Engine) CallContra(sess *model.Session, seat model.Seat) (Outcome, error) {
	d, err := e.check(sess, seat, model.DoublingNone)
	if err != nil {
		return OutcomeContinue, err
	}

	declarerTeam := model.TeamOf(sess.Contract.DeclarerSeat)
	d.Level = model.DoublingContra
	d.PassedSeats = []model.Seat{}
	d.TurnSeat = firstEligible(declarerTeam, nil)
	e.logger.Info("contra called", slog.Int("seat", int(seat)))
	return OutcomeContinue, nil
}

// PassContra declines to call contra
func (e *Engine) PassContra(sess *model.Session, seat model.Seat) (Outcome, error) {
	d, err := e.check(sess, seat, model.DoublingNone)
	if err != nil {
		return OutcomeContinue, err
	}
	return e.applyPass(sess, d, seat)
}

// CallRekontra escalates the stake to rekontra. There is no further
// escalation, so play begins immediately.
func (e *Engine) CallRekontra(sess *model.Session, seat model.Seat) (Outcome, error) {
	d, err := e.check(sess, seat, model.DoublingContra)
	if err != nil {
		return OutcomeContinue, err
	}

	d.Level = model.DoublingRekontra
	e.logger.Info("rekontra called", slog.Int("seat", int(seat)))
	return OutcomeLocked, nil
}

// PassRekontra declines to call rekontra
func (e *Engine) PassRekontra(sess *model.Session, seat model.Seat) (Outcome, error) {
	d, err := e.check(sess, seat, model.DoublingContra)
	if err != nil {
		return OutcomeContinue, err
	}
	return e.applyPass(sess, d, seat)
}

// check validates phase, level, turn and team eligibility for an action
func (e *Engine) check(sess *model.Session, seat model.Seat, level model.DoublingLevel) (*model.DoublingState, error) {
	d := sess.Doubling
	if sess.Phase != model.PhaseDoubling || d == nil || sess.Contract == nil {
		return nil, model.ErrWrongPhase
	}
	if d.Level != level {
		return nil, model.ErrInvalidEscalation
	}
	if eligibleTeam(d.Level, model.TeamOf(sess.Contract.DeclarerSeat)) != model.TeamOf(seat) {
		return nil, model.ErrInvalidEscalation
	}
	if seat != d.TurnSeat {
		return nil, model.ErrOutOfTurn
	}
	return d, nil
}

func (e *Engine) applyPass(sess *model.Session, d *model.DoublingState, seat model.Seat) (Outcome, error) {
	d.PassedSeats = append(d.PassedSeats, seat)

	team := eligibleTeam(d.Level, model.TeamOf(sess.Contract.DeclarerSeat))
	next := firstEligible(team, d.PassedSeats)
	if next >= 0 {
		d.TurnSeat = next
		return OutcomeContinue, nil
	}

	// Both eligible seats passed: the level is locked
	e.logger.Info("doubling locked", slog.String("level", string(d.Level)))
	return OutcomeLocked, nil
}

// eligibleTeam returns the team allowed to act at the given level:
// the opponents may call contra, the declarers may answer with rekontra.
func eligibleTeam(level model.DoublingLevel, declarerTeam model.Team) model.Team {
	if level == model.DoublingContra {
		return declarerTeam
	}
	return declarerTeam.Opponent()
}

// firstEligible returns the lowest seat of team not in passed, or -1
func firstEligible(team model.Team, passed []model.Seat) model.Seat {
	for s := model.Seat(0); s < model.NumSeats; s++ {
		if model.TeamOf(s) != team {
			continue
		}
		skip := false
		for _, p := range passed {
			if p == s {
				skip = true
				break
			}
		}
		if !skip {
			return s
		}
	}
	return -1
}
