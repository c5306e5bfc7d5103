package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vkaradzhov/belot-server/internal/model"
)

type FactorySuite struct {
	suite.Suite
	app *TestApp
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

func (s *FactorySuite) SetupTest() {
	s.app = NewTestApp(1)
}

func (s *FactorySuite) TestWiring() {
	s.NotNil(s.app.Storage)
	s.NotNil(s.app.AuthService)
	s.NotNil(s.app.SessionController)
	s.NotNil(s.app.DealerService)
	s.NotNil(s.app.Hub)
	s.NotNil(s.app.Broadcaster)
}

func (s *FactorySuite) TestAuthAndSessionShareStorage() {
	ctx := context.Background()

	token, err := s.app.AuthService.CreateGuest(ctx, "Ana")
	s.Require().NoError(err)

	seat, err := s.app.SessionController.Join(ctx, token.PlayerID)
	s.Require().NoError(err)
	s.Equal(model.Seat(0), seat)

	sess, err := s.app.SessionController.State(ctx)
	s.Require().NoError(err)
	s.Len(sess.Seats, 1)
	s.Equal("Ana", sess.Seats[0].DisplayName)
}
