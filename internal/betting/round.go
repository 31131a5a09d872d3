package betting

import "fmt"

// RoundConfig describes the state of a street before its first voluntary
// action.
type RoundConfig struct {
	Phase      Phase
	BigBlind   int
	Stacks     [2]int // chips behind, indexed by Seat, after any blinds
	Committed  [2]int // chips already in for this street, e.g. posted blinds
	FirstToAct Seat
}

// Transfer reports the chip movement caused by one accepted action.
type Transfer struct {
	Seat   Seat
	Action Action
	Amount int // moved from Seat's stack into the pot

	// Refund is the uncalled part of a bet returned to RefundTo when the
	// street closes against an all-in for less.
	Refund   int
	RefundTo Seat

	Done  bool // the action closed the round
	AllIn bool // some stack is now empty
}

// Round is one street of heads-up betting with an explicit ledger of
// what each seat has committed.
type Round struct {
	phase     Phase
	bigBlind  int
	history   History
	stacks    [2]int
	committed [2]int
	toAct     Seat
	minRaise  int // smallest legal raise increment
	done      bool
}

// NewRound starts a street with a fresh history.
func NewRound(cfg RoundConfig) (*Round, error) {
	if cfg.Phase != Preflop && cfg.Phase != Postflop {
		return nil, fmt.Errorf("%w: unknown phase %d", ErrInvalidAction, uint8(cfg.Phase))
	}
	if cfg.BigBlind <= 0 {
		return nil, fmt.Errorf("%w: big blind must be positive, got %d", ErrInvalidAction, cfg.BigBlind)
	}
	if cfg.FirstToAct != SmallBlind && cfg.FirstToAct != BigBlind {
		return nil, fmt.Errorf("%w: unknown seat %d", ErrInvalidAction, uint8(cfg.FirstToAct))
	}
	for s := range 2 {
		if cfg.Stacks[s] < 0 || cfg.Committed[s] < 0 {
			return nil, fmt.Errorf("%w: negative chips for %s", ErrInvalidAction, Seat(s))
		}
	}
	return &Round{
		phase:     cfg.Phase,
		bigBlind:  cfg.BigBlind,
		history:   NewHistory(),
		stacks:    cfg.Stacks,
		committed: cfg.Committed,
		toAct:     cfg.FirstToAct,
		minRaise:  cfg.BigBlind,
	}, nil
}

// Phase returns the street's phase.
func (r *Round) Phase() Phase { return r.phase }

// History returns a copy of the street's history.
func (r *Round) History() History { return HistoryFrom(r.history.actions) }

// ToAct returns the seat whose decision is pending.
func (r *Round) ToAct() Seat { return r.toAct }

// Stacks returns the chips behind for each seat.
func (r *Round) Stacks() [2]int { return r.stacks }

// Committed returns the chips each seat has put in on this street.
func (r *Round) Committed() [2]int { return r.committed }

// Done reports whether the round has closed.
func (r *Round) Done() bool { return r.done }

// AllIn reports whether either stack is empty.
func (r *Round) AllIn() bool {
	return r.stacks[SmallBlind] == 0 || r.stacks[BigBlind] == 0
}

// ToCall returns what the player to act still owes to match the opponent.
func (r *Round) ToCall() int {
	owed := r.committed[r.toAct.Other()] - r.committed[r.toAct]
	if owed < 0 {
		return 0
	}
	return owed
}

// MaxRaiseTo is the largest total the player to act can reach (all-in).
func (r *Round) MaxRaiseTo() int {
	return r.committed[r.toAct] + r.stacks[r.toAct]
}

// MinRaiseTo is the smallest legal bet or raise total, capped at all-in.
func (r *Round) MinRaiseTo() int {
	return min(r.committed[r.toAct.Other()]+r.minRaise, r.MaxRaiseTo())
}

// Legal returns the legal kinds for the player to act. It is LegalActions
// narrowed by the ledger: no bet or raise once the opponent is all-in or
// when the actor cannot put in more than the call.
func (r *Round) Legal() ([]Kind, error) {
	if r.done {
		return nil, ErrRoundOver
	}
	kinds, err := LegalActions(r.phase, r.history)
	if err != nil {
		return nil, err
	}
	canWager := r.stacks[r.toAct.Other()] > 0 && r.stacks[r.toAct] > r.ToCall()
	if canWager {
		return kinds, nil
	}
	out := kinds[:0]
	for _, k := range kinds {
		if !k.IsWager() {
			out = append(out, k)
		}
	}
	return out, nil
}

// Apply validates a and, if accepted, moves chips and appends it to the
// history. Nothing is mutated when an error is returned.
func (r *Round) Apply(a Action) (Transfer, error) {
	if r.done {
		return Transfer{}, ErrRoundOver
	}
	if err := a.Validate(); err != nil {
		return Transfer{}, fmt.Errorf("%w: %w", ErrIllegalAction, err)
	}
	legal, err := r.Legal()
	if err != nil {
		return Transfer{}, err
	}
	if !contains(legal, a.Kind) {
		return Transfer{}, fmt.Errorf("%w: %s not in %v", ErrIllegalAction, a.Kind, legal)
	}

	actor := r.toAct
	cost, increment, err := r.cost(a)
	if err != nil {
		return Transfer{}, err
	}
	if err := r.transfer(actor, cost); err != nil {
		return Transfer{}, err
	}
	if a.Kind.IsWager() && increment >= r.minRaise {
		r.minRaise = increment
	}
	r.history = r.history.With(a)

	t := Transfer{Seat: actor, Action: a, Amount: cost}
	done, err := Done(r.history)
	if err != nil {
		return Transfer{}, err
	}
	if done {
		r.done = true
		if a.Kind != Fold {
			t.RefundTo, t.Refund = r.refundUncalled()
		}
	} else {
		r.toAct = actor.Other()
	}
	t.Done = r.done
	t.AllIn = r.AllIn()
	return t, nil
}

// cost returns the chips the action moves and, for wagers, the raise
// increment over the live bet.
func (r *Round) cost(a Action) (int, int, error) {
	actor := r.toAct
	owed := r.ToCall()
	switch a.Kind {
	case Fold:
		return 0, 0, nil
	case Check:
		if owed > 0 {
			return 0, 0, fmt.Errorf("%w: cannot check facing %d", ErrIllegalAction, owed)
		}
		return 0, 0, nil
	case Call:
		if owed == 0 {
			return 0, 0, fmt.Errorf("%w: nothing to call", ErrIllegalAction)
		}
		// Short stacks call all-in for less.
		return min(owed, r.stacks[actor]), 0, nil
	case Bet, Raise:
		target := a.Amount
		if target <= 0 {
			return 0, 0, fmt.Errorf("%w: %s amount must be positive", ErrIllegalAction, a.Kind)
		}
		live := r.committed[actor.Other()]
		if target <= live {
			return 0, 0, fmt.Errorf("%w: %s to %d does not exceed %d", ErrIllegalAction, a.Kind, target, live)
		}
		cost := target - r.committed[actor]
		if cost > r.stacks[actor] {
			return 0, 0, fmt.Errorf("%w: %s to %d needs %d, stack is %d", ErrIllegalAction, a.Kind, target, cost, r.stacks[actor])
		}
		increment := target - live
		if increment < r.minRaise && cost < r.stacks[actor] {
			return 0, 0, fmt.Errorf("%w: %s to %d is below minimum %d", ErrIllegalAction, a.Kind, target, live+r.minRaise)
		}
		return cost, increment, nil
	}
	return 0, 0, fmt.Errorf("%w: %s cannot be played", ErrIllegalAction, a.Kind)
}

func (r *Round) transfer(s Seat, amount int) error {
	if amount < 0 || amount > r.stacks[s] {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientChips, s, r.stacks[s], amount)
	}
	r.stacks[s] -= amount
	r.committed[s] += amount
	return nil
}

// refundUncalled returns the part of a bet the opponent could not match.
func (r *Round) refundUncalled() (Seat, int) {
	hi := SmallBlind
	if r.committed[BigBlind] > r.committed[SmallBlind] {
		hi = BigBlind
	}
	excess := r.committed[hi] - r.committed[hi.Other()]
	if excess <= 0 {
		return hi, 0
	}
	r.committed[hi] -= excess
	r.stacks[hi] += excess
	return hi, excess
}
