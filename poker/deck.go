package poker

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	// ErrNotEnoughCards is returned when a deal asks for more cards than remain.
	ErrNotEnoughCards = errors.New("not enough cards in deck")
	// ErrInvalidDealCount is returned for a deal of zero or fewer cards.
	ErrInvalidDealCount = errors.New("deal count must be positive")
)

// Deck represents a standard 52-card deck
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand // nil for stacked decks, which never reshuffle
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.Shuffle()
	return d
}

// NewDeckFromCards creates a deck that deals the given cards in order. It is
// used to replay hands and to build deterministic scenarios.
func NewDeckFromCards(cards []Card) (*Deck, error) {
	var seen Card
	for _, c := range cards {
		if !c.Valid() {
			return nil, fmt.Errorf("invalid card in stacked deck: %d", uint64(c))
		}
		if seen&c != 0 {
			return nil, fmt.Errorf("duplicate card in stacked deck: %s", c)
		}
		seen |= c
	}
	return &Deck{cards: append([]Card(nil), cards...)}, nil
}

// Shuffle shuffles the full deck using Fisher-Yates and restarts dealing.
// Stacked decks only restart dealing.
func (d *Deck) Shuffle() {
	d.next = 0
	if d.rng == nil {
		return
	}
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes n cards from the top of the deck.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDealCount, n)
	}
	if n > d.Remaining() {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrNotEnoughCards, n, d.Remaining())
	}
	out := make([]Card, n)
	copy(out, d.cards[d.next:d.next+n])
	d.next += n
	return out, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
