package phh

import (
	"strings"

	"github.com/lox/headsup/poker"
)

// FormatCards joins cards without separators, e.g. "AhKh".
func FormatCards(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}
