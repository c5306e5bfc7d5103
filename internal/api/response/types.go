package response

import (
	"github.com/vkaradzhov/belot-server/internal/model"
	"github.com/vkaradzhov/belot-server/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// AuthResponseFromToken creates an AuthResponse from an issued token
func AuthResponseFromToken(t *auth.Token) AuthResponse {
	return AuthResponse{
		Player: PlayerFromModel(&t.Player),
		Token:  t.Value,
	}
}

// JoinResponse is the response after taking a seat
type JoinResponse struct {
	Seat  model.Seat  `json:"seat"`
	Phase model.Phase `json:"phase"`
}

// Bidding is the auction state in a table response
type Bidding struct {
	CurrentBid model.Bid         `json:"current_bid,omitempty"`
	Declarer   *model.Seat       `json:"declarer,omitempty"`
	TurnSeat   model.Seat        `json:"turn_seat"`
	History    []model.BidRecord `json:"history"`
}

// Doubling is the escalation state in a table response
type Doubling struct {
	Level    model.DoublingLevel `json:"level"`
	TurnSeat model.Seat          `json:"turn_seat"`
}

// Play is the play-phase state in a table response. Only the viewer's
// own cards appear; everyone else is reduced to a hand size.
type Play struct {
	CurrentTrick    []model.PlayedCard      `json:"current_trick"`
	TurnSeat        model.Seat              `json:"turn_seat"`
	TrickLeaderSeat model.Seat              `json:"trick_leader_seat"`
	HandSizes       [model.NumSeats]int     `json:"hand_sizes"`
	TrickCounts     [model.NumTeams]int     `json:"trick_counts"`
	HandPoints      [model.NumTeams]int     `json:"hand_points"`
}

// TableState is the full table view for one player
type TableState struct {
	Phase         model.Phase             `json:"phase"`
	Seats         []model.SeatAssignment  `json:"seats"`
	HandNumber    int                     `json:"hand_number"`
	Contract      *model.Contract         `json:"contract,omitempty"`
	Stake         model.DoublingLevel     `json:"stake"`
	Bidding       *Bidding                `json:"bidding,omitempty"`
	Doubling      *Doubling               `json:"doubling,omitempty"`
	Play          *Play                   `json:"play,omitempty"`
	TotalScores   [model.NumTeams]int     `json:"total_scores"`
	HangingPoints int                     `json:"hanging_points"`
	MySeat        *model.Seat             `json:"my_seat,omitempty"`
	MyHand        []model.Card            `json:"my_hand,omitempty"`
}

// TableStateFromSession builds the table view for viewerID. Hands other
// than the viewer's never leave the server.
func TableStateFromSession(sess *model.Session, viewerID model.PlayerID) TableState {
	state := TableState{
		Phase:         sess.Phase,
		Seats:         sess.Seats,
		HandNumber:    sess.HandNumber,
		Contract:      sess.Contract,
		Stake:         sess.Stake,
		TotalScores:   sess.TotalScores,
		HangingPoints: sess.HangingPoints,
	}

	if seat, ok := sess.SeatOf(viewerID); ok {
		state.MySeat = &seat
		hand := make([]model.Card, len(sess.Hands[seat]))
		copy(hand, sess.Hands[seat])
		state.MyHand = hand
	}

	if b := sess.Bidding; b != nil {
		bidding := Bidding{
			CurrentBid: b.CurrentBid,
			TurnSeat:   b.TurnSeat,
			History:    b.History,
		}
		if b.DeclarerSeat >= 0 {
			declarer := b.DeclarerSeat
			bidding.Declarer = &declarer
		}
		state.Bidding = &bidding
	}

	if d := sess.Doubling; d != nil {
		state.Doubling = &Doubling{
			Level:    d.Level,
			TurnSeat: d.TurnSeat,
		}
	}

	if p := sess.Play; p != nil {
		state.Play = &Play{
			CurrentTrick:    p.CurrentTrick,
			TurnSeat:        p.TurnSeat,
			TrickLeaderSeat: p.TrickLeaderSeat,
			HandSizes:       sess.HandSizes(),
			TrickCounts:     [model.NumTeams]int{len(p.TricksWon[0]), len(p.TricksWon[1])},
			HandPoints:      p.HandPoints,
		}
	}

	return state
}

// HandResponse is the response for the private hand endpoint
type HandResponse struct {
	Cards []model.Card `json:"cards"`
}

// HistoryResponse lists the settled hands of the current match
type HistoryResponse struct {
	Hands []model.HandSummary `json:"hands"`
}
