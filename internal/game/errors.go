package game

import "errors"

var (
	// ErrInvalidSetup is returned for a hand or match that cannot start,
	// e.g. blinds out of order or a player without chips.
	ErrInvalidSetup = errors.New("invalid game setup")

	// ErrProvider wraps errors returned by a DecisionProvider or
	// CallOffPrompter. The hand is aborted and stacks are left untouched.
	ErrProvider = errors.New("decision provider failed")
)
