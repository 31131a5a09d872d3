package game

import (
	"fmt"

	"github.com/lox/headsup/poker"
)

// Player is one of the two participants in a match.
type Player struct {
	Name     string
	Stack    int
	Hole     []poker.Card // empty until dealt
	Provider DecisionProvider
}

func (p *Player) validate() error {
	switch {
	case p == nil:
		return fmt.Errorf("%w: nil player", ErrInvalidSetup)
	case p.Provider == nil:
		return fmt.Errorf("%w: player %q has no decision provider", ErrInvalidSetup, p.Name)
	case p.Stack < 0:
		return fmt.Errorf("%w: player %q has negative stack %d", ErrInvalidSetup, p.Name, p.Stack)
	}
	return nil
}
