package betting

import "fmt"

var (
	foldCallRaise  = []Kind{Fold, Call, Raise}
	foldCheckRaise = []Kind{Fold, Check, Raise}
	foldCheckBet   = []Kind{Fold, Check, Bet}
)

// LegalActions returns the kinds open to the player to act, derived only
// from the last entry of the history (and, preflop, its length).
//
// Preflop the big blind is a live bet, so the first actor faces a call and
// the big blind's option after a limp is a raise. Postflop an unopened street
// offers a bet; once a bet or raise is live the reply is fold, call or raise.
// Any other combination means the round is already over or the history is
// corrupt, and yields ErrInvalidHistory.
func LegalActions(phase Phase, h History) ([]Kind, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}
	last, _ := h.Last()

	switch phase {
	case Preflop:
		switch last.Kind {
		case Root, Raise:
			return clone(foldCallRaise), nil
		case Call:
			if h.Len() == 2 {
				return clone(foldCheckRaise), nil
			}
		}
	case Postflop:
		switch last.Kind {
		case Root:
			return clone(foldCheckBet), nil
		case Check:
			if h.At(h.Len()-2).Kind != Check {
				return clone(foldCheckBet), nil
			}
		case Bet, Raise:
			return clone(foldCallRaise), nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown phase %d", ErrInvalidHistory, uint8(phase))
	}
	return nil, fmt.Errorf("%w: no action follows %s at length %d %s", ErrInvalidHistory, last.Kind, h.Len(), phase)
}

// Done reports whether the history closes the betting round: a fold, a call
// that is not the opening limp, or a check answering a check or a limp.
func Done(h History) (bool, error) {
	if err := h.validate(); err != nil {
		return false, err
	}
	n := h.Len()
	last := h.At(n - 1)
	switch last.Kind {
	case Fold:
		return true, nil
	case Call:
		return n > 2, nil
	case Check:
		prev := h.At(n - 2).Kind
		return prev == Check || prev == Call, nil
	}
	return false, nil
}

func clone(kinds []Kind) []Kind {
	return append([]Kind(nil), kinds...)
}

func contains(kinds []Kind, k Kind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}
