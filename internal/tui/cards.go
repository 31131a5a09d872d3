package tui

import (
	"strings"

	"github.com/lox/headsup/poker"
)

// formatCards renders cards in suit colours, e.g. "[As Kd]".
func formatCards(cards []poker.Card) string {
	if len(cards) == 0 {
		return "[]"
	}
	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
