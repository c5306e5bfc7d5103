package dealer

import (
	"log/slog"

	"github.com/vkaradzhov/belot-server/internal/dependencies/random"
	"github.com/vkaradzhov/belot-server/internal/model"
)

// Initial deal waves: 3 cards then 2 before bidding, 3 more once a
// contract is reached. Every seat ends the auction with 8 cards and the
// deck is exhausted.
const (
	firstWave  = 3
	secondWave = 2
	thirdWave  = 3
)

// Service builds, shuffles and deals the 32-card deck
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a dealer service
func New(random random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: random,
		logger: logger,
	}
}

// NewDeck returns the full 32-card deck in canonical order
func NewDeck() []model.Card {
	deck := make([]model.Card, 0, model.DeckSize)
	for _, suit := range model.Suits {
		for _, rank := range model.Ranks {
			deck = append(deck, model.Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// Shuffle permutes the deck in place with a Fisher-Yates shuffle
func (s *Service) Shuffle(deck []model.Card) {
	for i := len(deck) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// DealInitial resets the deck and hands, then deals the two pre-auction
// waves so every seat holds 5 cards.
func (s *Service) DealInitial(sess *model.Session) {
	deck := NewDeck()
	s.Shuffle(deck)
	sess.Deck = deck
	for i := range sess.Hands {
		sess.Hands[i] = []model.Card{}
	}
	s.dealWave(sess, firstWave)
	s.dealWave(sess, secondWave)

	s.logger.Info("initial deal complete",
		slog.Int("hand_number", sess.HandNumber),
		slog.Int("deck_remaining", len(sess.Deck)),
	)
}

// DealSecond deals the post-auction wave, bringing every seat to 8 cards
// and exhausting the deck.
func (s *Service) DealSecond(sess *model.Session) {
	s.dealWave(sess, thirdWave)

	s.logger.Info("second deal complete",
		slog.Int("hand_number", sess.HandNumber),
		slog.Int("deck_remaining", len(sess.Deck)),
	)
}

// dealWave gives n cards to each seat in seat order. deal is the only
// way cards leave the deck; it takes from the head and never skips.
func (s *Service) dealWave(sess *model.Session, n int) {
	for seat := 0; seat < model.NumSeats; seat++ {
		sess.Hands[seat] = append(sess.Hands[seat], s.deal(sess, n)...)
	}
}

func (s *Service) deal(sess *model.Session, n int) []model.Card {
	cards := sess.Deck[:n]
	sess.Deck = sess.Deck[n:]
	return cards
}
