package bot

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/poker"
)

// bluffFrequency is how often TagBot bets an unpaired hand when checked to.
const bluffFrequency = 0.1

// TagBot plays tight-aggressive: it raises good starting hands, folds weak
// ones to pressure and bets when it has paired the board.
type TagBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

func NewTagBot(rng *rand.Rand, logger *log.Logger) *TagBot {
	return &TagBot{rng: rng, logger: logger}
}

func (b *TagBot) Decide(_ context.Context, req game.DecisionRequest) (betting.Action, error) {
	var a betting.Action
	if req.Street == game.Preflop {
		a = b.preflop(req)
	} else {
		a = b.postflop(req)
	}
	b.logger.Debug("tag-bot decision",
		"street", req.Street,
		"hole", poker.FormatCards(req.Hole),
		"toCall", req.ToCall,
		"action", a)
	return a, nil
}

func (b *TagBot) CallOff(_ context.Context, req game.CallOffRequest) (bool, error) {
	return tier(req.Hole) >= poker.TierMarginal, nil
}

func (b *TagBot) preflop(req game.DecisionRequest) betting.Action {
	live := req.Committed[req.Seat.Other()]
	switch tier(req.Hole) {
	case poker.TierPremium:
		if a, ok := raiseTo(req, 3*live); ok {
			return a
		}
		return callOrCheck(req)
	case poker.TierStrong:
		if req.ToCall <= req.BigBlind {
			if a, ok := raiseTo(req, 3*live); ok {
				return a
			}
		}
		return callOrCheck(req)
	case poker.TierPlayable:
		if req.ToCall <= 3*req.BigBlind {
			return callOrCheck(req)
		}
	case poker.TierMarginal:
		if req.ToCall <= req.BigBlind {
			return callOrCheck(req)
		}
	}
	return req.Passive()
}

func (b *TagBot) postflop(req game.DecisionRequest) betting.Action {
	if paired(req.Hole, req.Board) {
		if req.ToCall == 0 {
			if a, ok := raiseTo(req, req.Pot/2); ok {
				return a
			}
		}
		return callOrCheck(req)
	}
	if req.ToCall == 0 && b.rng.Float64() < bluffFrequency {
		if a, ok := raiseTo(req, req.Pot/2); ok {
			return a
		}
	}
	if req.ToCall > 0 && req.ToCall*4 <= req.Pot {
		return callOrCheck(req)
	}
	return req.Passive()
}

// raiseTo opens or raises to target, clamped to the legal range.
func raiseTo(req game.DecisionRequest, target int) (betting.Action, bool) {
	a, ok := minRaise(req)
	if !ok {
		return a, false
	}
	a.Amount = min(max(target, req.MinRaiseTo), req.MaxRaiseTo)
	return a, true
}

func tier(hole []poker.Card) poker.Tier {
	if len(hole) != 2 {
		return poker.TierTrash
	}
	return poker.PreflopTier(hole[0], hole[1])
}

// paired reports a pocket pair or a hole card matching the board.
func paired(hole, board []poker.Card) bool {
	if len(hole) == 2 && hole[0].Rank() == hole[1].Rank() {
		return true
	}
	for _, h := range hole {
		for _, c := range board {
			if h.Rank() == c.Rank() {
				return true
			}
		}
	}
	return false
}
