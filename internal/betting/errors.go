package betting

import "errors"

var (
	// ErrInvalidAction is returned when an Action value is malformed, e.g. a
	// negative amount or an amount on a non-wager action.
	ErrInvalidAction = errors.New("invalid action")

	// ErrIllegalAction is returned when an action is not allowed in the
	// current state of the round.
	ErrIllegalAction = errors.New("illegal action")

	// ErrInvalidHistory is returned when a history does not describe a round
	// that can be acted on.
	ErrInvalidHistory = errors.New("invalid betting history")

	// ErrInsufficientChips is returned when a transfer would leave a stack
	// negative.
	ErrInsufficientChips = errors.New("insufficient chips")

	// ErrRoundOver is returned when acting on a round that already finished.
	ErrRoundOver = errors.New("betting round is over")
)
