package bot

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/game"
)

// RandBot makes uniform random legal actions. It never folds when it could
// check for free.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(_ context.Context, req game.DecisionRequest) (betting.Action, error) {
	kinds := req.Legal
	if req.Can(betting.Check) {
		kinds = make([]betting.Kind, 0, len(req.Legal))
		for _, k := range req.Legal {
			if k != betting.Fold {
				kinds = append(kinds, k)
			}
		}
	}
	if len(kinds) == 0 {
		return betting.FoldAction(), nil
	}

	k := kinds[r.rng.IntN(len(kinds))]
	a := betting.Action{Kind: k}
	if k.IsWager() {
		lo, hi := req.MinRaiseTo, req.MaxRaiseTo
		a.Amount = lo + r.rng.IntN(hi-lo+1)
	}
	r.logger.Debug("rand-bot random action", "action", a)
	return a, nil
}

func (r *RandBot) CallOff(context.Context, game.CallOffRequest) (bool, error) {
	return r.rng.IntN(2) == 0, nil
}
