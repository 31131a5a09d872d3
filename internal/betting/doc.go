// Package betting implements a single heads-up no-limit betting round.
//
// A round is described by its Phase and a History of Actions that always
// begins with a synthetic Root entry. Two pure functions derive everything
// the table needs from that history:
//
//   - LegalActions returns the action kinds open to the player to act.
//   - Done reports whether the last action closed the round.
//
// Round adds the chip accounting on top. It keeps an explicit per-street
// ledger of what each seat has committed, so the cost of a call or a raise is
// a subtraction against the opponent's commitment:
//
//	r, _ := betting.NewRound(betting.RoundConfig{
//	    Phase:      betting.Preflop,
//	    BigBlind:   2,
//	    Stacks:     [2]int{199, 198},
//	    Committed:  [2]int{1, 2},
//	    FirstToAct: betting.SmallBlind,
//	})
//	t, _ := r.Apply(betting.RaiseTo(6)) // t.Amount == 5
//
// BET and RAISE amounts are always "to" totals for the street, never
// increments.
package betting
