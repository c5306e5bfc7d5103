package model

import "time"

// SessionID identifies a game session. The server runs a single table,
// but all state is keyed by session ID so storage stays generic.
type SessionID string

// Phase is the current stage of the session state machine.
// Exactly one phase is active at a time.
type Phase string

const (
	PhaseWaitingForPlayers Phase = "waiting_for_players"
	PhaseBidding           Phase = "bidding"
	PhaseDoubling          Phase = "doubling"
	PhasePlaying           Phase = "playing"
	PhaseFinished          Phase = "finished"
)

// BidRecord is one entry in the auction history
type BidRecord struct {
	Seat Seat `json:"seat"`
	// Bid is a ladder rung, or BidPass for a pass
	Bid Bid `json:"bid"`
}

// BidPass marks a pass in the auction history. It is not a ladder rung.
const BidPass Bid = "pass"

// BiddingState exists only while Phase == PhaseBidding
type BiddingState struct {
	CurrentBid   Bid         `json:"current_bid,omitempty"` // empty until the first raise
	DeclarerSeat Seat        `json:"declarer_seat"`         // -1 until the first raise
	PassCount    int         `json:"pass_count"`
	TurnSeat     Seat        `json:"turn_seat"`
	History      []BidRecord `json:"history"`
}

// NewBiddingState returns the state at the start of an auction
func NewBiddingState() *BiddingState {
	return &BiddingState{
		DeclarerSeat: -1,
		TurnSeat:     0,
		History:      []BidRecord{},
	}
}

// DoublingState exists only while Phase == PhaseDoubling
type DoublingState struct {
	Level       DoublingLevel `json:"level"`
	TurnSeat    Seat          `json:"turn_seat"`
	PassedSeats []Seat        `json:"passed_seats"`
}

// PlayedCard is a card together with the seat that played it
type PlayedCard struct {
	Card Card `json:"card"`
	Seat Seat `json:"seat"`
}

// PlayState exists only while Phase == PhasePlaying
type PlayState struct {
	TurnSeat        Seat         `json:"turn_seat"`
	TrickLeaderSeat Seat         `json:"trick_leader_seat"`
	CurrentTrick    []PlayedCard `json:"current_trick"`

	// TricksWon holds the completed tricks per team
	TricksWon [NumTeams][][]PlayedCard `json:"tricks_won"`

	// HandPoints accumulates raw trick card points per team for this hand
	HandPoints [NumTeams]int `json:"hand_points"`

	// LastTrickTeam is the team that won the 8th trick, -1 before then
	LastTrickTeam Team `json:"last_trick_team"`
}

// TrickCount returns the number of completed tricks
func (p *PlayState) TrickCount() int {
	return len(p.TricksWon[0]) + len(p.TricksWon[1])
}

// HandOutcome classifies a settled hand
type HandOutcome string

const (
	OutcomeDeclarerWon HandOutcome = "declarer_won"
	OutcomeFailed      HandOutcome = "failed"
	OutcomeHanging     HandOutcome = "hanging"
)

// HandSummary is the record of a settled hand
type HandSummary struct {
	HandNumber    int           `json:"hand_number"`
	Contract      Contract      `json:"contract"`
	Stake         DoublingLevel `json:"stake"`
	TrickCounts   [NumTeams]int `json:"trick_counts"`
	RoundedPoints [NumTeams]int `json:"rounded_points"`
	// Credited holds what each team actually added to its running total,
	// after contract settlement, stake multiplication and hanging awards
	Credited      [NumTeams]int `json:"credited"`
	Outcome       HandOutcome   `json:"outcome"`
	HangingPoints int           `json:"hanging_points"` // points left hanging after this hand
	CompletedAt   time.Time     `json:"completed_at"`
}

// WinningScore is the running total at which the match ends
const WinningScore = 151

// Session is the aggregate owning all mutable game state. It is mutated
// only by the session controller, under a single mutation lock.
type Session struct {
	ID    SessionID
	Phase Phase

	// Seats holds the seated players in join order; seat == index
	Seats []SeatAssignment

	HandNumber int

	// Deck is the undealt remainder; Hands are the per-seat cards.
	// Cards only move deck -> hand -> trick -> won pile.
	Deck  []Card
	Hands [NumSeats][]Card

	// Phase-tagged sub-state; non-nil only during the matching phase
	Bidding  *BiddingState
	Doubling *DoublingState
	Play     *PlayState

	// Contract is set from auction end until the hand settles
	Contract *Contract

	// Stake is the doubling level the hand is played at
	Stake DoublingLevel

	// TotalScores are the running match totals per team
	TotalScores [NumTeams]int

	// HangingPoints are tied declarer points held over for the winner
	// of the next settled hand
	HangingPoints int

	HandHistory []HandSummary

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultSessionID is the single table this server runs
const DefaultSessionID SessionID = "table"

// NewSession returns an empty session waiting for players
func NewSession(id SessionID, now time.Time) *Session {
	return &Session{
		ID:          id,
		Phase:       PhaseWaitingForPlayers,
		Seats:       []SeatAssignment{},
		Stake:       DoublingNone,
		HandHistory: []HandSummary{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SeatOf returns the seat of the given player, or false if not seated
func (s *Session) SeatOf(playerID PlayerID) (Seat, bool) {
	for _, sa := range s.Seats {
		if sa.PlayerID == playerID {
			return sa.Seat, true
		}
	}
	return -1, false
}

// HandSizes returns the number of cards held by each seat
func (s *Session) HandSizes() [NumSeats]int {
	var sizes [NumSeats]int
	for i := range s.Hands {
		sizes[i] = len(s.Hands[i])
	}
	return sizes
}

// CardsInFlight counts every card across deck, hands and piles. It must
// always equal DeckSize between deals; tests rely on this invariant.
func (s *Session) CardsInFlight() int {
	n := len(s.Deck)
	for i := range s.Hands {
		n += len(s.Hands[i])
	}
	if s.Play != nil {
		n += len(s.Play.CurrentTrick)
		for t := 0; t < NumTeams; t++ {
			for _, trick := range s.Play.TricksWon[t] {
				n += len(trick)
			}
		}
	}
	return n
}
