package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/game"
)

// ErrScriptExhausted is returned when a ScriptBot runs out of actions.
var ErrScriptExhausted = errors.New("script exhausted")

// ScriptBot replays a fixed list of actions in order. It is useful for
// replaying recorded hands and for driving tests.
type ScriptBot struct {
	mu      sync.Mutex
	actions []betting.Action
	callOff bool
}

// NewScriptBot plays actions in order. Call-off prompts get accept.
func NewScriptBot(accept bool, actions ...betting.Action) *ScriptBot {
	return &ScriptBot{actions: actions, callOff: accept}
}

// ParseScript builds a ScriptBot from lines like "call", "raise 6" or
// "bet 10".
func ParseScript(accept bool, lines ...string) (*ScriptBot, error) {
	actions := make([]betting.Action, 0, len(lines))
	for i, line := range lines {
		a, err := betting.ParseAction(line)
		if err != nil {
			return nil, fmt.Errorf("script line %d: %w", i+1, err)
		}
		actions = append(actions, a)
	}
	return NewScriptBot(accept, actions...), nil
}

func (s *ScriptBot) Decide(_ context.Context, req game.DecisionRequest) (betting.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.actions) == 0 {
		return betting.Action{}, fmt.Errorf("%w on the %s", ErrScriptExhausted, req.Street)
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return a, nil
}

func (s *ScriptBot) CallOff(context.Context, game.CallOffRequest) (bool, error) {
	return s.callOff, nil
}

// Remaining returns how many scripted actions are left.
func (s *ScriptBot) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}
