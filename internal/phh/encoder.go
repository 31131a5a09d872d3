package phh

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/lox/headsup/internal/betting"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// player returns the PHH name of a seat.
func player(seat betting.Seat) string {
	if seat == betting.BigBlind {
		return "p2"
	}
	return "p1"
}

// FormatAction converts a betting action to a PHH action string. Wagers
// are recorded as their street total, as in PHH's "cbr".
func FormatAction(seat betting.Seat, a betting.Action) string {
	p := player(seat)
	switch a.Kind {
	case betting.Fold:
		return p + " f"
	case betting.Check, betting.Call:
		return p + " cc"
	case betting.Bet, betting.Raise:
		return fmt.Sprintf("%s cbr %d", p, a.Amount)
	}
	return fmt.Sprintf("# %s %s", p, a)
}
