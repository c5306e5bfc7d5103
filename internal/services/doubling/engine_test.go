package doubling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vkaradzhov/belot-server/internal/model"
	"github.com/vkaradzhov/belot-server/internal/testutil"
)

type DoublingSuite struct {
	suite.Suite
	engine *Engine
	sess   *model.Session
}

func TestDoublingSuite(t *testing.T) {
	suite.Run(t, new(DoublingSuite))
}

func (s *DoublingSuite) SetupTest() {
	s.engine = New(testutil.NopLogger())
	s.sess = model.NewSession(model.DefaultSessionID, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.sess.Phase = model.PhaseDoubling

	// Seat 0 declared hearts, so team 1 (seats 1 and 3) may call contra
	contract := model.NewContract(model.BidHearts, 0)
	s.sess.Contract = &contract
	s.engine.Start(s.sess)
}

func (s *DoublingSuite) TestStartGivesTurnToOpponents() {
	s.Equal(model.DoublingNone, s.sess.Doubling.Level)
	s.Equal(model.Seat(1), s.sess.Doubling.TurnSeat)
}

func (s *DoublingSuite) TestDeclarerTeamCannotCallContra() {
	_, err := s.engine.CallContra(s.sess, 0)
	s.ErrorIs(err, model.ErrInvalidEscalation)
	_, err = s.engine.CallContra(s.sess, 2)
	s.ErrorIs(err, model.ErrInvalidEscalation)
}

func (s *DoublingSuite) TestContraOutOfTurn() {
	_, err := s.engine.CallContra(s.sess, 3)
	s.ErrorIs(err, model.ErrOutOfTurn)
}

func (s *DoublingSuite) TestBothOpponentsPassLocksAtNone() {
	outcome, err := s.engine.PassContra(s.sess, 1)
	s.Require().NoError(err)
	s.Equal(OutcomeContinue, outcome)
	s.Equal(model.Seat(3), s.sess.Doubling.TurnSeat)

	outcome, err = s.engine.PassContra(s.sess, 3)
	s.Require().NoError(err)
	s.Equal(OutcomeLocked, outcome)
	s.Equal(model.DoublingNone, s.sess.Doubling.Level)
}

func (s *DoublingSuite) TestContraHandsTurnToDeclarers() {
	outcome, err := s.engine.CallContra(s.sess, 1)
	s.Require().NoError(err)
	s.Equal(OutcomeContinue, outcome)

	s.Equal(model.DoublingContra, s.sess.Doubling.Level)
	s.Equal(model.Seat(0), s.sess.Doubling.TurnSeat)

	// Contra cannot be called twice
	_, err = s.engine.CallContra(s.sess, 3)
	s.ErrorIs(err, model.ErrInvalidEscalation)
}

func (s *DoublingSuite) TestRekontraLocksImmediately() {
	_, err := s.engine.CallContra(s.sess, 1)
	s.Require().NoError(err)

	outcome, err := s.engine.CallRekontra(s.sess, 0)
	s.Require().NoError(err)
	s.Equal(OutcomeLocked, outcome)
	s.Equal(model.DoublingRekontra, s.sess.Doubling.Level)
}

func (s *DoublingSuite) TestRekontraRequiresContra() {
	_, err := s.engine.CallRekontra(s.sess, 0)
	s.ErrorIs(err, model.ErrInvalidEscalation)
}

func (s *DoublingSuite) TestBothDeclarersPassLocksAtContra() {
	_, err := s.engine.CallContra(s.sess, 1)
	s.Require().NoError(err)

	outcome, err := s.engine.PassRekontra(s.sess, 0)
	s.Require().NoError(err)
	s.Equal(OutcomeContinue, outcome)
	s.Equal(model.Seat(2), s.sess.Doubling.TurnSeat)

	outcome, err = s.engine.PassRekontra(s.sess, 2)
	s.Require().NoError(err)
	s.Equal(OutcomeLocked, outcome)
	s.Equal(model.DoublingContra, s.sess.Doubling.Level)
}

func (s *DoublingSuite) TestOpponentsCannotCallRekontra() {
	_, err := s.engine.CallContra(s.sess, 1)
	s.Require().NoError(err)

	_, err = s.engine.CallRekontra(s.sess, 1)
	s.ErrorIs(err, model.ErrInvalidEscalation)
}

func (s *DoublingSuite) TestWrongPhase() {
	s.sess.Phase = model.PhasePlaying
	_, err := s.engine.CallContra(s.sess, 1)
	s.ErrorIs(err, model.ErrWrongPhase)
}
