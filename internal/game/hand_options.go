package game

import (
	"math/rand/v2"

	"github.com/lox/headsup/poker"
)

// HandOption configures a Hand during creation.
type HandOption func(*handConfig)

type handConfig struct {
	rng    *rand.Rand
	deck   *poker.Deck // overrides rng for dealing
	id     string
	number int
	bus    EventBus
}

// WithRand sets the RNG used to shuffle the hand's deck. Without it the deck
// is shuffled from a time seed.
func WithRand(rng *rand.Rand) HandOption {
	return func(c *handConfig) {
		c.rng = rng
	}
}

// WithDeck deals from the given deck instead of a freshly shuffled one.
func WithDeck(deck *poker.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = deck
	}
}

// WithHandID overrides the generated hand ID.
func WithHandID(id string) HandOption {
	return func(c *handConfig) {
		c.id = id
	}
}

// WithHandNumber records the hand's position in a match.
func WithHandNumber(n int) HandOption {
	return func(c *handConfig) {
		c.number = n
	}
}

// WithEventBus publishes the hand's events to bus.
func WithEventBus(bus EventBus) HandOption {
	return func(c *handConfig) {
		c.bus = bus
	}
}
