package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/poker"
)

func newTestMatch(t *testing.T, cfg MatchConfig, a, b *Player, opts ...MatchOption) (*Match, *recorder) {
	t.Helper()
	rec := &recorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)
	opts = append([]MatchOption{WithMatchRand(randutil.New(1)), WithMatchEventBus(bus)}, opts...)
	m, err := NewMatch(cfg, a, b, opts...)
	require.NoError(t, err)
	return m, rec
}

func TestMatchAlternatesSmallBlind(t *testing.T) {
	t.Parallel()
	a := &Player{Name: "alice", Stack: 200, Provider: passive}
	b := &Player{Name: "bob", Stack: 200, Provider: passive}

	m, rec := newTestMatch(t, MatchConfig{SmallBlind: 1, BigBlind: 2, MaxHands: 4}, a, b)
	res, err := m.Play(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Capped)
	assert.Equal(t, 4, res.Hands)
	assert.Equal(t, 400, a.Stack+b.Stack)

	started := eventsOf[HandStarted](rec)
	require.Len(t, started, 4)
	for i, want := range []string{"alice", "bob", "alice", "bob"} {
		assert.Equal(t, want, started[i].Players[betting.SmallBlind], "hand %d", i+1)
		assert.Equal(t, i+1, started[i].Number)
	}
	assert.Len(t, eventsOf[MatchEnded](rec), 1)
}

func TestMatchPlaysToElimination(t *testing.T) {
	t.Parallel()
	a := &Player{Name: "alice", Stack: 200, Provider: shove}
	b := &Player{Name: "bob", Stack: 200, Provider: shove}

	m, rec := newTestMatch(t, MatchConfig{SmallBlind: 1, BigBlind: 2}, a, b)
	res, err := m.Play(context.Background())
	require.NoError(t, err)

	require.NotNil(t, res.Winner)
	assert.False(t, res.Capped)
	assert.Equal(t, 400, res.Winner.Stack)
	assert.Equal(t, 400, res.Stacks[res.Winner.Name])
	assert.Equal(t, 0, a.Stack*b.Stack)

	ended := eventsOf[MatchEnded](rec)
	require.Len(t, ended, 1)
	assert.Equal(t, res.Winner.Name, ended[0].Winner)
	assert.Equal(t, res.Hands, ended[0].Hands)
}

func TestMatchStackedDecksDecideWinner(t *testing.T) {
	t.Parallel()
	a := &Player{Name: "alice", Stack: 100, Provider: shove}
	b := &Player{Name: "bob", Stack: 100, Provider: shove}

	// alice is the small blind on hand zero and holds the aces.
	decks := func(n int) *poker.Deck {
		if n > 0 {
			t.Errorf("hand %d should not be played", n)
			return nil
		}
		return stacked(t, acesOverKings)
	}
	m, _ := newTestMatch(t, MatchConfig{SmallBlind: 1, BigBlind: 2}, a, b, WithDeckSource(decks))
	res, err := m.Play(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Hands)
	assert.Same(t, a, res.Winner)
	assert.Equal(t, 200, a.Stack)
	assert.Equal(t, 0, b.Stack)
}

func TestMatchLevelAtCap(t *testing.T) {
	t.Parallel()
	a := &Player{Name: "alice", Stack: 200, Provider: passive}
	b := &Player{Name: "bob", Stack: 200, Provider: passive}

	split := func(int) *poker.Deck { return stacked(t, "2c 3d 2d 3c Ts Js Qs Ks As") }
	m, rec := newTestMatch(t, MatchConfig{SmallBlind: 1, BigBlind: 2, MaxHands: 2}, a, b, WithDeckSource(split))
	res, err := m.Play(context.Background())
	require.NoError(t, err)

	assert.Nil(t, res.Winner)
	assert.True(t, res.Capped)
	assert.Empty(t, eventsOf[MatchEnded](rec)[0].Winner)
}

func TestMatchStopsOnFailedHand(t *testing.T) {
	t.Parallel()
	boom := errors.New("connection lost")
	calls := 0
	flaky := DecisionFunc(func(ctx context.Context, req DecisionRequest) (betting.Action, error) {
		calls++
		if calls > 6 {
			return betting.Action{}, boom
		}
		return passive(ctx, req)
	})
	a := &Player{Name: "alice", Stack: 200, Provider: flaky}
	b := &Player{Name: "bob", Stack: 200, Provider: passive}

	m, rec := newTestMatch(t, MatchConfig{SmallBlind: 1, BigBlind: 2}, a, b)
	res, err := m.Play(context.Background())
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, ErrProvider)

	settled := eventsOf[HandSettled](rec)
	require.Equal(t, 1, res.Hands)
	require.Len(t, settled, 1)
	// alice was the small blind on the only completed hand.
	last := settled[len(settled)-1]
	assert.Equal(t, [2]string{"alice", "bob"}, last.Players)
	assert.Equal(t, last.Stacks, [2]int{a.Stack, b.Stack}, "the failed hand must not move chips")
	assert.Nil(t, res.Winner)
	assert.Equal(t, map[string]int{"alice": a.Stack, "bob": b.Stack}, res.Stacks)
	assert.Empty(t, eventsOf[MatchEnded](rec))
}

func TestNewMatchValidation(t *testing.T) {
	t.Parallel()
	p := func(name string, stack int) *Player {
		return &Player{Name: name, Stack: stack, Provider: passive}
	}

	tests := []struct {
		name string
		cfg  MatchConfig
		a, b *Player
	}{
		{"zero small blind", MatchConfig{SmallBlind: 0, BigBlind: 2}, p("a", 10), p("b", 10)},
		{"big blind not above small", MatchConfig{SmallBlind: 2, BigBlind: 2}, p("a", 10), p("b", 10)},
		{"negative cap", MatchConfig{SmallBlind: 1, BigBlind: 2, MaxHands: -1}, p("a", 10), p("b", 10)},
		{"empty stack", MatchConfig{SmallBlind: 1, BigBlind: 2}, p("a", 0), p("b", 10)},
		{"same names", MatchConfig{SmallBlind: 1, BigBlind: 2}, p("a", 10), p("a", 10)},
		{"missing provider", MatchConfig{SmallBlind: 1, BigBlind: 2}, p("a", 10), &Player{Name: "b", Stack: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatch(tt.cfg, tt.a, tt.b)
			require.ErrorIs(t, err, ErrInvalidSetup)
		})
	}
}
