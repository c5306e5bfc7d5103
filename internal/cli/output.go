package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case JoinResult:
		o.printJoinResult(v)
	case TableState:
		o.printTableState(v)
	case HandResult:
		o.printHandResult(v)
	case HistoryResult:
		o.printHistoryResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// JoinResult response type
type JoinResult struct {
	Seat  int    `json:"seat"`
	Phase string `json:"phase"`
}

// Card response type
type Card struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

func (c Card) String() string {
	return c.Rank + "-" + c.Suit
}

// PlayedCard response type
type PlayedCard struct {
	Card Card `json:"card"`
	Seat int  `json:"seat"`
}

// SeatAssignment response type
type SeatAssignment struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Seat        int    `json:"seat"`
}

// Contract response type
type Contract struct {
	Bid          string `json:"bid"`
	DeclarerSeat int    `json:"declarer_seat"`
	Mode         string `json:"mode"`
	TrumpSuit    string `json:"trump_suit,omitempty"`
}

// BidRecord response type
type BidRecord struct {
	Seat int    `json:"seat"`
	Bid  string `json:"bid"`
}

// Bidding response type
type Bidding struct {
	CurrentBid string      `json:"current_bid,omitempty"`
	Declarer   *int        `json:"declarer,omitempty"`
	TurnSeat   int         `json:"turn_seat"`
	History    []BidRecord `json:"history"`
}

// Doubling response type
type Doubling struct {
	Level    string `json:"level"`
	TurnSeat int    `json:"turn_seat"`
}

// Play response type
type Play struct {
	CurrentTrick    []PlayedCard `json:"current_trick"`
	TurnSeat        int          `json:"turn_seat"`
	TrickLeaderSeat int          `json:"trick_leader_seat"`
	HandSizes       [4]int       `json:"hand_sizes"`
	TrickCounts     [2]int       `json:"trick_counts"`
	HandPoints      [2]int       `json:"hand_points"`
}

// TableState response type
type TableState struct {
	Phase         string           `json:"phase"`
	Seats         []SeatAssignment `json:"seats"`
	HandNumber    int              `json:"hand_number"`
	Contract      *Contract        `json:"contract,omitempty"`
	Stake         string           `json:"stake"`
	Bidding       *Bidding         `json:"bidding,omitempty"`
	Doubling      *Doubling        `json:"doubling,omitempty"`
	Play          *Play            `json:"play,omitempty"`
	TotalScores   [2]int           `json:"total_scores"`
	HangingPoints int              `json:"hanging_points"`
	MySeat        *int             `json:"my_seat,omitempty"`
	MyHand        []Card           `json:"my_hand,omitempty"`
}

// HandResult response type
type HandResult struct {
	Cards []Card `json:"cards"`
}

// HandSummary response type
type HandSummary struct {
	HandNumber    int      `json:"hand_number"`
	Contract      Contract `json:"contract"`
	Stake         string   `json:"stake"`
	TrickCounts   [2]int   `json:"trick_counts"`
	RoundedPoints [2]int   `json:"rounded_points"`
	Credited      [2]int   `json:"credited"`
	Outcome       string   `json:"outcome"`
	HangingPoints int      `json:"hanging_points"`
}

// HistoryResult response type
type HistoryResult struct {
	Hands []HandSummary `json:"hands"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printJoinResult(j JoinResult) {
	fmt.Printf("Seated at seat %d (team %d)\n", j.Seat, j.Seat%2)
	fmt.Printf("Phase: %s\n", j.Phase)
}

func (o *Output) printTableState(t TableState) {
	fmt.Printf("Phase: %s\n", t.Phase)
	fmt.Printf("Hand: %d\n", t.HandNumber)
	fmt.Printf("Score: %d - %d\n", t.TotalScores[0], t.TotalScores[1])
	if t.HangingPoints > 0 {
		fmt.Printf("Hanging: %d\n", t.HangingPoints)
	}

	fmt.Printf("Seats (%d/4):\n", len(t.Seats))
	for _, s := range t.Seats {
		fmt.Printf("  %d: %s (%s)\n", s.Seat, s.DisplayName, s.PlayerID)
	}

	if t.Contract != nil {
		fmt.Printf("Contract: %s by seat %d", t.Contract.Bid, t.Contract.DeclarerSeat)
		if t.Stake != "" && t.Stake != "none" {
			fmt.Printf(" (%s)", t.Stake)
		}
		fmt.Println()
	}

	if b := t.Bidding; b != nil {
		if b.CurrentBid != "" {
			fmt.Printf("Current bid: %s\n", b.CurrentBid)
		}
		fmt.Printf("Bidding turn: seat %d\n", b.TurnSeat)
	}

	if d := t.Doubling; d != nil {
		fmt.Printf("Doubling level: %s, turn: seat %d\n", d.Level, d.TurnSeat)
	}

	if p := t.Play; p != nil {
		fmt.Printf("Play turn: seat %d\n", p.TurnSeat)
		if len(p.CurrentTrick) > 0 {
			cards := make([]string, len(p.CurrentTrick))
			for i, pc := range p.CurrentTrick {
				cards[i] = fmt.Sprintf("%s(seat %d)", pc.Card, pc.Seat)
			}
			fmt.Printf("Trick: %s\n", strings.Join(cards, " "))
		}
		fmt.Printf("Tricks: %d - %d, points: %d - %d\n",
			p.TrickCounts[0], p.TrickCounts[1], p.HandPoints[0], p.HandPoints[1])
	}

	if len(t.MyHand) > 0 {
		fmt.Printf("Your hand: %s\n", formatCards(t.MyHand))
	}
}

func (o *Output) printHandResult(h HandResult) {
	fmt.Printf("Hand: %s\n", formatCards(h.Cards))
}

func (o *Output) printHistoryResult(h HistoryResult) {
	if len(h.Hands) == 0 {
		fmt.Println("No settled hands yet")
		return
	}
	for _, s := range h.Hands {
		stake := ""
		if s.Stake != "" && s.Stake != "none" {
			stake = " " + s.Stake
		}
		fmt.Printf("Hand %d: %s by seat %d%s - %s, credited %d - %d\n",
			s.HandNumber, s.Contract.Bid, s.Contract.DeclarerSeat, stake,
			s.Outcome, s.Credited[0], s.Credited[1])
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func formatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
