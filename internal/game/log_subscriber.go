package game

import (
	"github.com/charmbracelet/log"

	"github.com/lox/headsup/poker"
)

// LogSubscriber writes events as structured log lines. Per-action detail is
// logged at debug level.
type LogSubscriber struct {
	logger *log.Logger
}

// NewLogSubscriber returns a subscriber logging under the "game" prefix.
func NewLogSubscriber(logger *log.Logger) *LogSubscriber {
	return &LogSubscriber{logger: logger.WithPrefix("game")}
}

func (s *LogSubscriber) OnEvent(event Event) {
	switch e := event.(type) {
	case HandStarted:
		s.logger.Info("Hand started",
			"hand", e.HandID,
			"number", e.Number,
			"sb", e.Players[0],
			"bb", e.Players[1],
			"stacks", e.Stacks)
	case BlindsPosted:
		s.logger.Debug("Blinds posted", "hand", e.HandID, "posted", e.Posted, "pot", e.Pot)
	case ShortStackResolved:
		s.logger.Info("Short stack resolved",
			"hand", e.HandID,
			"outcome", e.Outcome,
			"amount", e.Amount,
			"pot", e.Pot)
	case ActionTaken:
		s.logger.Debug("Action",
			"hand", e.HandID,
			"street", e.Street,
			"player", e.Player,
			"action", e.Action,
			"amount", e.Amount,
			"pot", e.Pot,
			"stack", e.Stack)
	case StreetDealt:
		s.logger.Debug("Dealt", "hand", e.HandID, "street", e.Street, "board", poker.FormatCards(e.Board), "runout", e.Runout)
	case RoundResolved:
		s.logger.Debug("Round resolved",
			"hand", e.HandID,
			"street", e.Street,
			"history", e.History,
			"pot", e.Pot,
			"folded", e.Folded,
			"allIn", e.AllIn)
	case HandSettled:
		winners := make([]string, len(e.Winners))
		for i, w := range e.Winners {
			winners[i] = e.Players[w]
		}
		s.logger.Info("Hand settled",
			"hand", e.HandID,
			"pot", e.Pot,
			"showdown", e.Showdown,
			"board", poker.FormatCards(e.Board),
			"winners", winners,
			"stacks", e.Stacks)
	case MatchEnded:
		if e.Winner == "" {
			s.logger.Info("Match ended level", "hands", e.Hands, "stacks", e.Stacks)
			return
		}
		s.logger.Info("Match ended", "winner", e.Winner, "hands", e.Hands, "stacks", e.Stacks)
	default:
		s.logger.Warn("Unknown event", "type", event.EventType())
	}
}
