package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBidLadderOrdering(t *testing.T) {
	for i := 1; i < len(BidLadder); i++ {
		assert.True(t, BidLadder[i].Outranks(BidLadder[i-1]),
			"%s should outrank %s", BidLadder[i], BidLadder[i-1])
		assert.False(t, BidLadder[i-1].Outranks(BidLadder[i]))
	}
	assert.False(t, BidClubs.Outranks(BidClubs))
}

func TestNewContract(t *testing.T) {
	c := NewContract(BidHearts, 2)
	assert.Equal(t, ModeSuitTrump, c.Mode)
	assert.Equal(t, SuitHearts, c.TrumpSuit)
	assert.Equal(t, Seat(2), c.DeclarerSeat)

	c = NewContract(BidNoTrumps, 0)
	assert.Equal(t, ModeNoTrumps, c.Mode)
	assert.Empty(t, c.TrumpSuit)

	c = NewContract(BidAllTrumps, 3)
	assert.Equal(t, ModeAllTrumps, c.Mode)
}

func TestContractTrumpRanked(t *testing.T) {
	heartJack := Card{Suit: SuitHearts, Rank: RankJ}
	spadeJack := Card{Suit: SuitSpades, Rank: RankJ}

	suitContract := NewContract(BidHearts, 0)
	assert.True(t, suitContract.TrumpRanked(heartJack))
	assert.False(t, suitContract.TrumpRanked(spadeJack))

	allTrumps := NewContract(BidAllTrumps, 0)
	assert.True(t, allTrumps.TrumpRanked(spadeJack))

	noTrumps := NewContract(BidNoTrumps, 0)
	assert.False(t, noTrumps.TrumpRanked(heartJack))
}

func TestDoublingMultiplier(t *testing.T) {
	assert.Equal(t, 1, DoublingNone.Multiplier())
	assert.Equal(t, 2, DoublingContra.Multiplier())
	assert.Equal(t, 4, DoublingRekontra.Multiplier())
}

func TestTeamsAndSeats(t *testing.T) {
	assert.Equal(t, Team(0), TeamOf(0))
	assert.Equal(t, Team(1), TeamOf(1))
	assert.Equal(t, Team(0), TeamOf(2))
	assert.Equal(t, Team(1), TeamOf(3))
	assert.Equal(t, Team(1), Team(0).Opponent())
	assert.Equal(t, Team(0), Team(1).Opponent())
	assert.Equal(t, Seat(0), NextSeat(3))
	assert.Equal(t, Seat(2), NextSeat(1))
}

func TestRemoveCard(t *testing.T) {
	cards := []Card{
		{Suit: SuitHearts, Rank: RankA},
		{Suit: SuitSpades, Rank: Rank7},
		{Suit: SuitClubs, Rank: Rank10},
	}

	out, ok := RemoveCard(cards, Card{Suit: SuitSpades, Rank: Rank7})
	require.True(t, ok)
	assert.Len(t, out, 2)
	assert.False(t, ContainsCard(out, Card{Suit: SuitSpades, Rank: Rank7}))

	// Original slice is not mutated
	assert.True(t, ContainsCard(cards, Card{Suit: SuitSpades, Rank: Rank7}))

	_, ok = RemoveCard(cards, Card{Suit: SuitDiamonds, Rank: RankK})
	assert.False(t, ok)
}

func TestSessionSeatOf(t *testing.T) {
	sess := NewSession(DefaultSessionID, time.Now())
	sess.Seats = append(sess.Seats,
		SeatAssignment{PlayerID: "p1", Seat: 0},
		SeatAssignment{PlayerID: "p2", Seat: 1},
	)

	seat, ok := sess.SeatOf("p2")
	require.True(t, ok)
	assert.Equal(t, Seat(1), seat)

	_, ok = sess.SeatOf("p3")
	assert.False(t, ok)
}
