package model

// Bid is a rung on the auction ladder
type Bid string

const (
	BidDiamonds  Bid = "diamonds"
	BidHearts    Bid = "hearts"
	BidSpades    Bid = "spades"
	BidClubs     Bid = "clubs"
	BidNoTrumps  Bid = "no_trumps"
	BidAllTrumps Bid = "all_trumps"
)

// BidLadder lists the bids in ascending strength. Each rung strictly
// outranks every rung before it.
var BidLadder = []Bid{BidDiamonds, BidHearts, BidSpades, BidClubs, BidNoTrumps, BidAllTrumps}

// ladderIndex returns the rung index of b, or -1 if b is not a bid
func ladderIndex(b Bid) int {
	for i, v := range BidLadder {
		if v == b {
			return i
		}
	}
	return -1
}

// ValidBid reports whether b is a rung on the ladder
func ValidBid(b Bid) bool {
	return ladderIndex(b) >= 0
}

// Outranks reports whether b strictly outranks other
func (b Bid) Outranks(other Bid) bool {
	return ladderIndex(b) > ladderIndex(other)
}

// TrumpMode describes how cards rank and score for a hand
type TrumpMode string

const (
	ModeSuitTrump TrumpMode = "suit"
	ModeNoTrumps  TrumpMode = "no_trumps"
	ModeAllTrumps TrumpMode = "all_trumps"
)

// Contract is the result of a concluded auction
type Contract struct {
	Bid          Bid       `json:"bid"`
	DeclarerSeat Seat      `json:"declarer_seat"`
	Mode         TrumpMode `json:"mode"`
	TrumpSuit    Suit      `json:"trump_suit,omitempty"` // set only for ModeSuitTrump
}

// NewContract derives the trump mode and suit from the winning bid
func NewContract(bid Bid, declarer Seat) Contract {
	c := Contract{Bid: bid, DeclarerSeat: declarer}
	switch bid {
	case BidNoTrumps:
		c.Mode = ModeNoTrumps
	case BidAllTrumps:
		c.Mode = ModeAllTrumps
	default:
		c.Mode = ModeSuitTrump
		c.TrumpSuit = Suit(bid)
	}
	return c
}

// TrumpRanked reports whether a card uses the trump ordering and point
// values under this contract: every card in all-trumps, cards of the
// trump suit in a suit contract, and no card in no-trumps.
func (c Contract) TrumpRanked(card Card) bool {
	switch c.Mode {
	case ModeAllTrumps:
		return true
	case ModeSuitTrump:
		return card.Suit == c.TrumpSuit
	default:
		return false
	}
}

// DoublingLevel is the contra/rekontra escalation level
type DoublingLevel string

const (
	DoublingNone     DoublingLevel = "none"
	DoublingContra   DoublingLevel = "contra"
	DoublingRekontra DoublingLevel = "rekontra"
)

// Multiplier returns the stake multiplier for the level
func (d DoublingLevel) Multiplier() int {
	switch d {
	case DoublingContra:
		return 2
	case DoublingRekontra:
		return 4
	default:
		return 1
	}
}
