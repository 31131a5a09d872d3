package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/game"
)

// CallBot calls every bet and checks when there is nothing to call.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) Decide(_ context.Context, req game.DecisionRequest) (betting.Action, error) {
	a := callOrCheck(req)
	c.logger.Debug("call-bot decision", "street", req.Street, "action", a)
	return a, nil
}

// FoldBot checks when it is free and folds otherwise. It always declines a
// call-off.
type FoldBot struct{}

func (FoldBot) Decide(_ context.Context, req game.DecisionRequest) (betting.Action, error) {
	return req.Passive(), nil
}

func (FoldBot) CallOff(context.Context, game.CallOffRequest) (bool, error) {
	return false, nil
}
