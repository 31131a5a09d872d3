package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/poker"
)

// MatchConfig holds the fixed parameters of a match.
type MatchConfig struct {
	SmallBlind int
	BigBlind   int
	MaxHands   int // 0 plays until a player is eliminated
}

// Validate checks the blind structure and hand cap.
func (c MatchConfig) Validate() error {
	if c.SmallBlind <= 0 || c.BigBlind <= c.SmallBlind {
		return fmt.Errorf("%w: blinds %d/%d must satisfy 0 < sb < bb", ErrInvalidSetup, c.SmallBlind, c.BigBlind)
	}
	if c.MaxHands < 0 {
		return fmt.Errorf("%w: max hands must not be negative, got %d", ErrInvalidSetup, c.MaxHands)
	}
	return nil
}

// MatchOption configures a Match.
type MatchOption func(*Match)

// WithMatchRand sets the RNG shared by every hand's shuffle.
func WithMatchRand(rng *rand.Rand) MatchOption {
	return func(m *Match) {
		m.rng = rng
	}
}

// WithMatchEventBus publishes hand and match events to bus.
func WithMatchEventBus(bus EventBus) MatchOption {
	return func(m *Match) {
		m.bus = bus
	}
}

// WithDeckSource supplies the deck for each hand, numbered from zero. A nil
// deck falls back to shuffling.
func WithDeckSource(decks func(hand int) *poker.Deck) MatchOption {
	return func(m *Match) {
		m.decks = decks
	}
}

// MatchResult reports how a match ended.
type MatchResult struct {
	Winner *Player // nil when stacks are level at the hand cap or the match failed
	Hands  int
	Capped bool // stopped by MaxHands rather than elimination
	Stacks map[string]int
}

// Match alternates the small blind between two players until one of them
// has no chips left.
type Match struct {
	cfg     MatchConfig
	players [2]*Player
	rng     *rand.Rand
	bus     EventBus
	decks   func(hand int) *poker.Deck
}

// NewMatch creates a match in which a posts the small blind on the first
// hand.
func NewMatch(cfg MatchConfig, a, b *Player, opts ...MatchOption) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, p := range []*Player{a, b} {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if p.Stack == 0 {
			return nil, fmt.Errorf("%w: player %q has no chips", ErrInvalidSetup, p.Name)
		}
	}
	if a.Name == b.Name {
		return nil, fmt.Errorf("%w: both players are named %q", ErrInvalidSetup, a.Name)
	}

	m := &Match{cfg: cfg, players: [2]*Player{a, b}}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = randutil.New(time.Now().UnixNano())
	}
	if m.bus == nil {
		m.bus = discardBus{}
	}
	return m, nil
}

// Play runs hands until a stack reaches zero or the hand cap is hit. If a
// hand fails the match stops with stacks as they were before that hand.
func (m *Match) Play(ctx context.Context) (MatchResult, error) {
	var res MatchResult
	for n := 0; m.players[0].Stack > 0 && m.players[1].Stack > 0; n++ {
		if m.cfg.MaxHands > 0 && n >= m.cfg.MaxHands {
			res.Capped = true
			break
		}
		sb, bb := m.players[n%2], m.players[(n+1)%2]

		opts := []HandOption{WithRand(m.rng), WithEventBus(m.bus), WithHandNumber(n + 1)}
		if m.decks != nil {
			if d := m.decks(n); d != nil {
				opts = append(opts, WithDeck(d))
			}
		}
		h, err := NewHand(sb, bb, m.cfg.SmallBlind, m.cfg.BigBlind, opts...)
		if err != nil {
			return m.aborted(res), err
		}
		if _, err := h.Play(ctx); err != nil {
			return m.aborted(res), err
		}
		res.Hands++
	}

	res = m.result(res)
	ev := MatchEnded{stamp: now(), Hands: res.Hands, Stacks: res.Stacks}
	if res.Winner != nil {
		ev.Winner = res.Winner.Name
	}
	m.bus.Publish(ev)
	return res, nil
}

// aborted reports the stacks of a match that stopped on an error. There is
// no winner.
func (m *Match) aborted(res MatchResult) MatchResult {
	res = m.result(res)
	res.Winner = nil
	return res
}

// result fills in the chip leader and stacks.
func (m *Match) result(res MatchResult) MatchResult {
	a, b := m.players[0], m.players[1]
	res.Stacks = map[string]int{a.Name: a.Stack, b.Name: b.Stack}
	switch {
	case a.Stack > b.Stack:
		res.Winner = a
	case b.Stack > a.Stack:
		res.Winner = b
	default:
		res.Winner = nil
	}
	return res
}
