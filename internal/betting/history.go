package betting

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Phase selects which legal-action table applies to a street.
type Phase uint8

const (
	Preflop Phase = iota
	Postflop
)

func (p Phase) String() string {
	switch p {
	case Preflop:
		return "preflop"
	case Postflop:
		return "postflop"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if p != Preflop && p != Postflop {
		return nil, fmt.Errorf("%w: unknown phase %d", ErrInvalidHistory, uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "preflop":
		*p = Preflop
	case "postflop":
		*p = Postflop
	default:
		return fmt.Errorf("%w: unknown phase %q", ErrInvalidHistory, b)
	}
	return nil
}

// Seat is the role a player holds for the hand.
type Seat uint8

const (
	SmallBlind Seat = iota
	BigBlind
)

// Other returns the opposing seat.
func (s Seat) Other() Seat {
	if s == SmallBlind {
		return BigBlind
	}
	return SmallBlind
}

func (s Seat) String() string {
	switch s {
	case SmallBlind:
		return "SB"
	case BigBlind:
		return "BB"
	default:
		return fmt.Sprintf("seat(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Seat) MarshalText() ([]byte, error) {
	if s != SmallBlind && s != BigBlind {
		return nil, fmt.Errorf("%w: unknown seat %d", ErrInvalidAction, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Seat) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "SB":
		*s = SmallBlind
	case "BB":
		*s = BigBlind
	default:
		return fmt.Errorf("%w: unknown seat %q", ErrInvalidAction, b)
	}
	return nil
}

// History is the ordered list of actions on one street. The zero value is
// empty and therefore invalid; use NewHistory.
type History struct {
	actions []Action
}

// NewHistory returns a history holding Root followed by the given actions.
func NewHistory(actions ...Action) History {
	h := History{actions: make([]Action, 0, len(actions)+4)}
	h.actions = append(h.actions, Action{Kind: Root})
	h.actions = append(h.actions, actions...)
	return h
}

// HistoryFrom wraps an arbitrary action list without adding Root. It exists
// for decoding histories received from elsewhere; they are checked on use.
func HistoryFrom(actions []Action) History {
	return History{actions: append([]Action(nil), actions...)}
}

// Len returns the number of entries, Root included.
func (h History) Len() int { return len(h.actions) }

// At returns entry i.
func (h History) At(i int) Action { return h.actions[i] }

// Last returns the most recent entry.
func (h History) Last() (Action, bool) {
	if len(h.actions) == 0 {
		return Action{}, false
	}
	return h.actions[len(h.actions)-1], true
}

// Actions returns a copy of the entries.
func (h History) Actions() []Action {
	return append([]Action(nil), h.actions...)
}

// With returns a new history with a appended; h is not modified.
func (h History) With(a Action) History {
	out := make([]Action, len(h.actions), len(h.actions)+1)
	copy(out, h.actions)
	return History{actions: append(out, a)}
}

func (h History) String() string {
	parts := make([]string, len(h.actions))
	for i, a := range h.actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

func (h History) validate() error {
	if len(h.actions) == 0 {
		return fmt.Errorf("%w: empty history", ErrInvalidHistory)
	}
	if h.actions[0].Kind != Root {
		return fmt.Errorf("%w: first entry is %s, not root", ErrInvalidHistory, h.actions[0].Kind)
	}
	for i, a := range h.actions[1:] {
		if a.Kind == Root {
			return fmt.Errorf("%w: root repeated at %d", ErrInvalidHistory, i+1)
		}
		if err := a.Validate(); err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrInvalidHistory, i+1, err)
		}
	}
	return nil
}

// MarshalJSON encodes the history as a list of actions, Root included.
func (h History) MarshalJSON() ([]byte, error) {
	if h.actions == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h.actions)
}

// UnmarshalJSON decodes a list of actions. The result is validated when it
// is next used, not here.
func (h *History) UnmarshalJSON(b []byte) error {
	var actions []Action
	if err := json.Unmarshal(b, &actions); err != nil {
		return err
	}
	h.actions = actions
	return nil
}
