package betting

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates betting actions.
type Kind uint8

const (
	Root Kind = iota
	Fold
	Check
	Bet
	Call
	Raise
)

var kindNames = [...]string{"root", "fold", "check", "bet", "call", "raise"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// IsWager reports whether the kind carries a "to" amount.
func (k Kind) IsWager() bool {
	return k == Bet || k == Raise
}

// ParseKind parses a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidAction, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidAction, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Action is one recorded decision. Amount is only set for Bet and Raise and
// is the total the player is putting in for the street.
type Action struct {
	Kind   Kind `json:"kind"`
	Amount int  `json:"amount,omitempty"`
}

// NewAction builds a validated action.
func NewAction(kind Kind, amount int) (Action, error) {
	a := Action{Kind: kind, Amount: amount}
	if err := a.Validate(); err != nil {
		return Action{}, err
	}
	return a, nil
}

// ParseAction parses text such as "call", "check" or "raise 12". Wager
// amounts are "to" totals.
func ParseAction(s string) (Action, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Action{}, fmt.Errorf("%w: empty action", ErrInvalidAction)
	}
	k, err := ParseKind(fields[0])
	if err != nil {
		return Action{}, err
	}
	switch {
	case k.IsWager() && len(fields) != 2:
		return Action{}, fmt.Errorf("%w: %s needs an amount, e.g. %q", ErrInvalidAction, k, k.String()+" 10")
	case !k.IsWager() && len(fields) != 1:
		return Action{}, fmt.Errorf("%w: %s takes no amount", ErrInvalidAction, k)
	}
	amount := 0
	if k.IsWager() {
		amount, err = strconv.Atoi(fields[1])
		if err != nil {
			return Action{}, fmt.Errorf("%w: bad amount %q", ErrInvalidAction, fields[1])
		}
	}
	return NewAction(k, amount)
}

// Validate checks the shape of the action, independent of any round.
func (a Action) Validate() error {
	switch {
	case !a.Kind.Valid():
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidAction, uint8(a.Kind))
	case a.Amount < 0:
		return fmt.Errorf("%w: negative amount %d", ErrInvalidAction, a.Amount)
	case !a.Kind.IsWager() && a.Amount != 0:
		return fmt.Errorf("%w: %s does not take an amount", ErrInvalidAction, a.Kind)
	}
	return nil
}

func (a Action) String() string {
	if a.Kind.IsWager() {
		return fmt.Sprintf("%s to %d", a.Kind, a.Amount)
	}
	return a.Kind.String()
}

// FoldAction returns a fold.
func FoldAction() Action { return Action{Kind: Fold} }

// CheckAction returns a check.
func CheckAction() Action { return Action{Kind: Check} }

// CallAction returns a call.
func CallAction() Action { return Action{Kind: Call} }

// BetTo returns a bet to the given street total.
func BetTo(amount int) Action { return Action{Kind: Bet, Amount: amount} }

// RaiseTo returns a raise to the given street total.
func RaiseTo(amount int) Action { return Action{Kind: Raise, Amount: amount} }
