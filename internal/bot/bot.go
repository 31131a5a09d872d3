// Package bot provides automated decision providers.
package bot

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/game"
)

type factory func(rng *rand.Rand, logger *log.Logger) game.DecisionProvider

var registry = map[string]factory{
	"calling": func(_ *rand.Rand, logger *log.Logger) game.DecisionProvider { return NewCallBot(logger) },
	"fold":    func(_ *rand.Rand, _ *log.Logger) game.DecisionProvider { return FoldBot{} },
	"maniac":  func(_ *rand.Rand, logger *log.Logger) game.DecisionProvider { return NewManiacBot(logger) },
	"random":  func(rng *rand.Rand, logger *log.Logger) game.DecisionProvider { return NewRandBot(rng, logger) },
	"tag":     func(rng *rand.Rand, logger *log.Logger) game.DecisionProvider { return NewTagBot(rng, logger) },
}

// ByName returns the named strategy.
func ByName(name string, rng *rand.Rand, logger *log.Logger) (game.DecisionProvider, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown bot strategy %q (want one of %v)", name, Names())
	}
	return f(rng, logger), nil
}

// Names lists the registered strategies in order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// minRaise returns a minimum bet or raise for whichever wager is open.
func minRaise(req game.DecisionRequest) (betting.Action, bool) {
	switch {
	case req.Can(betting.Raise):
		return betting.RaiseTo(req.MinRaiseTo), true
	case req.Can(betting.Bet):
		return betting.BetTo(req.MinRaiseTo), true
	}
	return betting.Action{}, false
}

// callOrCheck stays in the hand as cheaply as possible.
func callOrCheck(req game.DecisionRequest) betting.Action {
	if req.Can(betting.Call) {
		return betting.CallAction()
	}
	return req.Passive()
}
