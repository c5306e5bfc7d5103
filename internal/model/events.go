package model

// Broadcast event names. These are the SSE event identifiers clients
// subscribe to; every payload below marshals to JSON.
const (
	EventRosterUpdate  = "roster-update"
	EventDealStart     = "deal-start"
	EventHandUpdate    = "hand-update" // targeted, per seat
	EventBiddingState  = "bidding-state"
	EventBiddingEnd    = "bidding-end"
	EventDoublingState = "doubling-state"
	EventCardPlayed    = "card-played"
	EventPlayState     = "play-state"
	EventHandResult    = "hand-result"
	EventGameEnd       = "game-end"
)

// RosterUpdate lists the current occupancy
type RosterUpdate struct {
	Seats []SeatAssignment `json:"seats"`
	Phase Phase            `json:"phase"`
}

// DealStart announces that all seats are filled and dealing begins
type DealStart struct {
	HandNumber int `json:"hand_number"`
}

// HandUpdate carries a single seat's current hand. Sent only to that seat.
type HandUpdate struct {
	Seat  Seat   `json:"seat"`
	Cards []Card `json:"cards"`
}

// BiddingSnapshot is the full auction state after each accepted action
type BiddingSnapshot struct {
	CurrentBid Bid              `json:"current_bid,omitempty"`
	Declarer   *Seat            `json:"declarer,omitempty"`
	TurnSeat   Seat             `json:"turn_seat"`
	History    []BidRecord      `json:"history"`
	Seats      []SeatAssignment `json:"seats"`
}

// BiddingEnd announces the auction result. Contract and Declarer are
// nil when all four seats passed without a bid.
type BiddingEnd struct {
	Contract *Contract `json:"contract"`
	Declarer *Seat     `json:"declarer"`
	Redeal   bool      `json:"redeal"`
}

// DoublingSnapshot is the escalation state after each accepted action
type DoublingSnapshot struct {
	Level    DoublingLevel `json:"level"`
	TurnSeat *Seat         `json:"turn_seat"` // nil once the level is locked
}

// CardPlayed is the incremental notification for a single play.
// Clients must treat the following PlaySnapshot as authoritative.
type CardPlayed struct {
	Card Card `json:"card"`
	Seat Seat `json:"seat"`
}

// PlaySnapshot is the authoritative play-phase state after each play
// or trick resolution
type PlaySnapshot struct {
	CurrentTrick    []PlayedCard  `json:"current_trick"`
	TurnSeat        Seat          `json:"turn_seat"`
	TrickLeaderSeat Seat          `json:"trick_leader_seat"`
	HandSizes       [NumSeats]int `json:"hand_sizes"`
	Contract        Contract      `json:"contract"`
	Stake           DoublingLevel `json:"stake"`
	TrickCounts     [NumTeams]int `json:"trick_counts"`
	HandPoints      [NumTeams]int `json:"hand_points"`
	TotalScores     [NumTeams]int `json:"total_scores"`
}

// HandResult announces a settled hand
type HandResult struct {
	Summary     HandSummary   `json:"summary"`
	TotalScores [NumTeams]int `json:"total_scores"`
}

// GameEnd announces the match result
type GameEnd struct {
	WinningTeam Team          `json:"winning_team"`
	TotalScores [NumTeams]int `json:"total_scores"`
}
