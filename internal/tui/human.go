// Package tui is the terminal front end: a human decision provider that
// prompts with bubbletea and an event printer for following a match.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/game"
)

// ErrQuit is returned when the human leaves the prompt with Esc or Ctrl+C.
var ErrQuit = errors.New("player quit")

// Human asks a person at the terminal for every decision.
type Human struct {
	in     io.Reader
	out    io.Writer
	logger *log.Logger
}

func NewHuman(in io.Reader, out io.Writer, logger *log.Logger) *Human {
	return &Human{in: in, out: out, logger: logger.WithPrefix("tui")}
}

func (h *Human) Decide(ctx context.Context, req game.DecisionRequest) (betting.Action, error) {
	h.logger.Debug("Waiting for user action", "hand", req.HandID, "street", req.Street, "legal", req.Legal)
	m, err := h.run(ctx, newDecisionPrompt(req))
	if err != nil {
		return betting.Action{}, err
	}
	h.logger.Debug("Received user action", "action", m.action)
	return m.action, nil
}

func (h *Human) CallOff(ctx context.Context, req game.CallOffRequest) (bool, error) {
	m, err := h.run(ctx, newCallOffPrompt(req))
	if err != nil {
		return false, err
	}
	return m.accept, nil
}

func (h *Human) run(ctx context.Context, m *promptModel) (*promptModel, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(h.in),
		tea.WithOutput(h.out),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	pm, ok := final.(*promptModel)
	if !ok || pm.quit {
		return nil, ErrQuit
	}
	if !pm.done {
		return nil, errors.New("prompt closed without an answer")
	}
	return pm, nil
}
