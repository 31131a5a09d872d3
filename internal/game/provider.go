package game

import (
	"context"
	"slices"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/poker"
)

// DecisionRequest is everything a provider may look at to choose an action.
// Stacks and Committed are indexed by betting.Seat.
type DecisionRequest struct {
	HandID     string          `json:"hand_id"`
	Seat       betting.Seat    `json:"seat"`
	Street     Street          `json:"street"`
	Phase      betting.Phase   `json:"phase"`
	History    betting.History `json:"history"`
	Legal      []betting.Kind  `json:"legal"`
	ToCall     int             `json:"to_call"`
	MinRaiseTo int             `json:"min_raise_to"`
	MaxRaiseTo int             `json:"max_raise_to"`
	Stacks     [2]int          `json:"stacks"`
	Committed  [2]int          `json:"committed"`
	Pot        int             `json:"pot"`
	BigBlind   int             `json:"big_blind"`
	Hole       []poker.Card    `json:"hole"`
	Board      []poker.Card    `json:"board,omitempty"`
}

// Can reports whether k is in the legal set.
func (r DecisionRequest) Can(k betting.Kind) bool {
	return slices.Contains(r.Legal, k)
}

// Passive returns CHECK when it is legal and FOLD otherwise.
func (r DecisionRequest) Passive() betting.Action {
	if r.Can(betting.Check) {
		return betting.CheckAction()
	}
	return betting.FoldAction()
}

// DecisionProvider supplies the action for the player to act. The returned
// action is validated by the engine; an illegal one aborts the hand.
type DecisionProvider interface {
	Decide(ctx context.Context, req DecisionRequest) (betting.Action, error)
}

// DecisionFunc adapts a function to DecisionProvider.
type DecisionFunc func(ctx context.Context, req DecisionRequest) (betting.Action, error)

func (f DecisionFunc) Decide(ctx context.Context, req DecisionRequest) (betting.Action, error) {
	return f(ctx, req)
}

// CallOffRequest asks a short-stacked small blind whether to commit Amount
// more chips against a big blind who is all-in from posting.
type CallOffRequest struct {
	HandID string       `json:"hand_id"`
	Seat   betting.Seat `json:"seat"`
	Amount int          `json:"amount"`
	Stacks [2]int       `json:"stacks"`
	Pot    int          `json:"pot"`
	Hole   []poker.Card `json:"hole"`
}

// CallOffPrompter is implemented by providers that want to answer call-off
// prompts. Providers without it always accept.
type CallOffPrompter interface {
	CallOff(ctx context.Context, req CallOffRequest) (bool, error)
}

func callOff(ctx context.Context, p DecisionProvider, req CallOffRequest) (bool, error) {
	if c, ok := p.(CallOffPrompter); ok {
		return c.CallOff(ctx, req)
	}
	return true, nil
}
