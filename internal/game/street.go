package game

import (
	"fmt"

	"github.com/lox/headsup/internal/betting"
)

// Street is a betting phase of the hand.
type Street uint8

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

var streetNames = [...]string{"preflop", "flop", "turn", "river"}

func (s Street) String() string {
	if int(s) < len(streetNames) {
		return streetNames[s]
	}
	return fmt.Sprintf("street(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Street) MarshalText() ([]byte, error) {
	if int(s) >= len(streetNames) {
		return nil, fmt.Errorf("unknown street %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Street) UnmarshalText(b []byte) error {
	for i, n := range streetNames {
		if n == string(b) {
			*s = Street(i)
			return nil
		}
	}
	return fmt.Errorf("unknown street %q", b)
}

// Phase returns the legal-action table used on the street.
func (s Street) Phase() betting.Phase {
	if s == Preflop {
		return betting.Preflop
	}
	return betting.Postflop
}

// cards returns how many board cards are dealt when the street opens.
func (s Street) cards() int {
	switch s {
	case Flop:
		return 3
	case Turn, River:
		return 1
	}
	return 0
}
