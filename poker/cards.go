package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single playing card stored as one bit of a 52-bit set.
// Layout: [13 spades][13 hearts][13 diamonds][13 clubs]
type Card uint64

// Suit constants
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard creates a card from rank and suit.
func NewCard(rank, suit uint8) Card {
	return Card(1) << (suit*13 + rank)
}

func (c Card) index() uint8 {
	if c == 0 || bits.OnesCount64(uint64(c)) != 1 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Valid reports whether c is exactly one of the 52 cards.
func (c Card) Valid() bool {
	return c.index() < 52
}

// Rank returns the rank of the card (0-12), or 255 for an invalid card.
func (c Card) Rank() uint8 {
	idx := c.index()
	if idx >= 52 {
		return 255
	}
	return idx % 13
}

// Suit returns the suit of the card (0-3), or 255 for an invalid card.
func (c Card) Suit() uint8 {
	idx := c.index()
	if idx >= 52 {
		return 255
	}
	return idx / 13
}

// String returns the two character form, e.g. "As" or "Td".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string(suitChars[c.Suit()])
}

// IsRed reports whether the card is a heart or a diamond.
func (c Card) IsRed() bool {
	s := c.Suit()
	return s == Hearts || s == Diamonds
}

// MarshalText encodes the card as its two character form.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid card: %d", uint64(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a string like "As" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string: %q", s)
	}
	rank := strings.IndexByte(rankChars, upper(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank: %c", s[0])
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit: %c", s[1])
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// ParseCards parses a whitespace separated list such as "As Kd 7h".
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on bad input.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with single spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
