package model

// Suit is one of the four card suits
type Suit string

const (
	SuitDiamonds Suit = "diamonds"
	SuitHearts   Suit = "hearts"
	SuitSpades   Suit = "spades"
	SuitClubs    Suit = "clubs"
)

// Suits lists all suits in bid-ladder order
var Suits = []Suit{SuitDiamonds, SuitHearts, SuitSpades, SuitClubs}

// Rank is one of the eight card ranks used in a 32-card deck
type Rank string

const (
	Rank7  Rank = "7"
	Rank8  Rank = "8"
	Rank9  Rank = "9"
	Rank10 Rank = "10"
	RankJ  Rank = "J"
	RankQ  Rank = "Q"
	RankK  Rank = "K"
	RankA  Rank = "A"
)

// Ranks lists all ranks in deck-building order
var Ranks = []Rank{Rank7, Rank8, Rank9, Rank10, RankJ, RankQ, RankK, RankA}

// Card is a single playing card
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// String returns a compact representation like "J-hearts"
func (c Card) String() string {
	return string(c.Rank) + "-" + string(c.Suit)
}

// DeckSize is the number of cards in a Belot deck
const DeckSize = 32

// HandSize is the number of cards each seat holds after the second deal
const HandSize = 8

// ValidSuit reports whether s is one of the four suits
func ValidSuit(s Suit) bool {
	for _, v := range Suits {
		if v == s {
			return true
		}
	}
	return false
}

// ValidRank reports whether r is one of the eight ranks
func ValidRank(r Rank) bool {
	for _, v := range Ranks {
		if v == r {
			return true
		}
	}
	return false
}

// ContainsCard reports whether cards contains c
func ContainsCard(cards []Card, c Card) bool {
	for _, v := range cards {
		if v == c {
			return true
		}
	}
	return false
}

// RemoveCard returns cards with the first occurrence of c removed.
// The second return value reports whether c was present.
func RemoveCard(cards []Card, c Card) ([]Card, bool) {
	for i, v := range cards {
		if v == c {
			return append(cards[:i:i], cards[i+1:]...), true
		}
	}
	return cards, false
}
