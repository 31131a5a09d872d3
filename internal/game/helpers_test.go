package game

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/poker"
)

var errScriptExhausted = errors.New("script exhausted")

// script plays a fixed list of actions and records what it was asked.
type script struct {
	t       *testing.T
	actions []betting.Action
	seen    []DecisionRequest
}

func newScript(t *testing.T, actions ...betting.Action) *script {
	return &script{t: t, actions: actions}
}

func (s *script) Decide(_ context.Context, req DecisionRequest) (betting.Action, error) {
	s.seen = append(s.seen, req)
	if len(s.actions) == 0 {
		s.t.Errorf("unexpected decision request on the %s: history %s", req.Street, req.History)
		return betting.Action{}, errScriptExhausted
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return a, nil
}

// prompted answers call-off prompts with a fixed choice.
type prompted struct {
	*script
	accept bool
	asked  []CallOffRequest
}

func (p *prompted) CallOff(_ context.Context, req CallOffRequest) (bool, error) {
	p.asked = append(p.asked, req)
	return p.accept, nil
}

// passive calls when it can and checks otherwise.
var passive = DecisionFunc(func(_ context.Context, req DecisionRequest) (betting.Action, error) {
	if req.Can(betting.Call) {
		return betting.CallAction(), nil
	}
	return betting.CheckAction(), nil
})

// shove moves all-in whenever a raise is open.
var shove = DecisionFunc(func(_ context.Context, req DecisionRequest) (betting.Action, error) {
	switch {
	case req.Can(betting.Raise):
		return betting.RaiseTo(req.MaxRaiseTo), nil
	case req.Can(betting.Bet):
		return betting.BetTo(req.MaxRaiseTo), nil
	case req.Can(betting.Call):
		return betting.CallAction(), nil
	}
	return betting.CheckAction(), nil
})

// recorder keeps every published event.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func eventsOf[T Event](r *recorder) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []T
	for _, e := range r.events {
		if ev, ok := e.(T); ok {
			out = append(out, ev)
		}
	}
	return out
}

// stacked returns a deck dealing SB hole, BB hole, then the board.
func stacked(t *testing.T, cards string) *poker.Deck {
	t.Helper()
	d, err := poker.NewDeckFromCards(poker.MustParseCards(cards))
	require.NoError(t, err)
	return d
}

// acesOverKings deals the small blind aces and the big blind kings on a dry
// board.
const acesOverKings = "As Ad Kc Kd 2c 7d 9h Js 3s"

func newTestHand(t *testing.T, sb, bb *Player, deck string, opts ...HandOption) (*Hand, *recorder) {
	t.Helper()
	rec := &recorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)
	opts = append([]HandOption{WithDeck(stacked(t, deck)), WithEventBus(bus), WithHandID("test")}, opts...)
	h, err := NewHand(sb, bb, 1, 2, opts...)
	require.NoError(t, err)
	return h, rec
}
