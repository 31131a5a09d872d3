package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/game"
)

// ManiacBot min-raises whenever a wager is open and calls otherwise.
type ManiacBot struct {
	logger *log.Logger
}

func NewManiacBot(logger *log.Logger) *ManiacBot {
	return &ManiacBot{logger: logger}
}

func (m *ManiacBot) Decide(_ context.Context, req game.DecisionRequest) (betting.Action, error) {
	if a, ok := minRaise(req); ok {
		m.logger.Debug("maniac raising", "street", req.Street, "to", a.Amount)
		return a, nil
	}
	return callOrCheck(req), nil
}
