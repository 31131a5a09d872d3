package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/game"
)

// EventPrinter writes a readable transcript of a match. Only hero's hole
// cards are shown before showdown; an empty hero shows both hands.
type EventPrinter struct {
	out  io.Writer
	hero string
}

func NewEventPrinter(out io.Writer, hero string) *EventPrinter {
	return &EventPrinter{out: out, hero: hero}
}

func (p *EventPrinter) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.HandStarted:
		p.println("")
		p.println(HeaderStyle.Render(fmt.Sprintf(" Hand #%d ", e.Number)))
		p.printf("%s (SB) %d vs %s (BB) %d, blinds %d/%d\n",
			e.Players[betting.SmallBlind], e.Stacks[betting.SmallBlind],
			e.Players[betting.BigBlind], e.Stacks[betting.BigBlind],
			e.SmallBlind, e.BigBlind)
		for _, s := range []betting.Seat{betting.SmallBlind, betting.BigBlind} {
			if p.hero == "" || p.hero == e.Players[s] {
				p.printf("%s: %s\n", e.Players[s], formatCards(e.Hole[s]))
			}
		}

	case game.BlindsPosted:
		p.println(InfoStyle.Render(fmt.Sprintf("Blinds posted %d/%d, pot %d",
			e.Posted[betting.SmallBlind], e.Posted[betting.BigBlind], e.Pot)))

	case game.ShortStackResolved:
		p.println(WarningStyle.Render(fmt.Sprintf("Short stack: %s for %d, pot %d", e.Outcome, e.Amount, e.Pot)))

	case game.ActionTaken:
		line := e.Player + " " + describeAction(e)
		if e.Stack == 0 && e.Action.Kind != betting.Fold {
			line += " and is all-in"
		}
		if e.Refund > 0 {
			line += fmt.Sprintf(" (%d uncalled returned)", e.Refund)
		}
		p.println(line)

	case game.StreetDealt:
		label := "*** " + strings.ToUpper(e.Street.String()) + " ***"
		p.println(StreetStyle.Render(label) + " " + formatCards(e.Board))

	case game.HandSettled:
		if e.Showdown {
			for _, s := range []betting.Seat{betting.SmallBlind, betting.BigBlind} {
				p.printf("%s shows %s\n", e.Players[s], formatCards(e.Hole[s]))
			}
		}
		if len(e.Winners) == 2 {
			p.println(SuccessStyle.Render(fmt.Sprintf("Split pot of %d", e.Pot)))
		}
		for _, s := range e.Winners {
			p.println(SuccessStyle.Render(fmt.Sprintf("%s wins %d", e.Players[s], e.Payouts[s])))
		}
		p.println(InfoStyle.Render(fmt.Sprintf("Stacks: %s %d, %s %d",
			e.Players[betting.SmallBlind], e.Stacks[betting.SmallBlind],
			e.Players[betting.BigBlind], e.Stacks[betting.BigBlind])))

	case game.MatchEnded:
		p.println("")
		if e.Winner == "" {
			p.println(HeaderStyle.Render(fmt.Sprintf(" Match ends level after %d hands ", e.Hands)))
			return
		}
		p.println(HeaderStyle.Render(fmt.Sprintf(" %s wins the match after %d hands ", e.Winner, e.Hands)))
	}
}

func describeAction(e game.ActionTaken) string {
	switch e.Action.Kind {
	case betting.Fold:
		return "folds"
	case betting.Check:
		return "checks"
	case betting.Call:
		return fmt.Sprintf("calls %d", e.Amount)
	case betting.Bet:
		return fmt.Sprintf("bets %d", e.Action.Amount)
	case betting.Raise:
		return fmt.Sprintf("raises to %d", e.Action.Amount)
	}
	return e.Action.String()
}

func (p *EventPrinter) println(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *EventPrinter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}
