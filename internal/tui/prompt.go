package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/headsup/internal/betting"
	"github.com/lox/headsup/internal/game"
)

// promptModel asks for one answer: an action, or yes/no for a call-off.
// Bad input is reported and the prompt stays open.
type promptModel struct {
	decision *game.DecisionRequest
	callOff  *game.CallOffRequest

	input   textinput.Model
	problem string

	action betting.Action
	accept bool
	done   bool
	quit   bool
}

func newPrompt(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.CharLimit = 32
	ti.Width = 40
	ti.Focus()
	return ti
}

func newDecisionPrompt(req game.DecisionRequest) *promptModel {
	return &promptModel{
		decision: &req,
		input:    newPrompt("fold, check, call, bet 6, raise 12, allin"),
	}
}

func newCallOffPrompt(req game.CallOffRequest) *promptModel {
	return &promptModel{
		callOff: &req,
		input:   newPrompt("y or n"),
	}
}

func (m *promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.submit(m.input.Value()) {
				return m, tea.Quit
			}
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit records a valid answer and reports whether the prompt is finished.
func (m *promptModel) submit(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if m.callOff != nil {
		switch text {
		case "y", "yes":
			m.accept = true
		case "n", "no":
			m.accept = false
		default:
			m.problem = "answer y or n"
			return false
		}
		m.done = true
		return true
	}

	action, err := parseInput(*m.decision, text)
	if err != nil {
		m.problem = err.Error()
		return false
	}
	m.action = action
	m.done = true
	return true
}

func (m *promptModel) View() string {
	if m.quit {
		return ""
	}
	if m.done {
		if m.callOff != nil {
			if m.accept {
				return SuccessStyle.Render("You call off.") + "\n"
			}
			return SuccessStyle.Render("You fold your small blind.") + "\n"
		}
		return SuccessStyle.Render("You "+m.action.String()+".") + "\n"
	}

	var b strings.Builder
	if m.callOff != nil {
		r := m.callOff
		fmt.Fprintf(&b, "%s  Pot: %d  Your stack: %d\n", formatCards(r.Hole), r.Pot, r.Stacks[r.Seat])
		b.WriteString(ActionsStyle.Render(fmt.Sprintf("Opponent is all-in. Call off %d more?", r.Amount)))
	} else {
		r := m.decision
		fmt.Fprintf(&b, "%s %s  Board: %s  Pot: %d  Stack: %d\n",
			StreetStyle.Render(strings.ToUpper(r.Street.String())),
			formatCards(r.Hole), formatCards(r.Board), r.Pot, r.Stacks[r.Seat])
		b.WriteString(ActionsStyle.Render("Actions: " + describeLegal(*r)))
	}
	b.WriteString("\n")
	if m.problem != "" {
		b.WriteString(ErrorStyle.Render(m.problem))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Enter to submit • Esc to quit"))
	b.WriteString("\n")
	return b.String()
}

func describeLegal(req game.DecisionRequest) string {
	parts := make([]string, 0, len(req.Legal))
	for _, k := range req.Legal {
		switch k {
		case betting.Call:
			parts = append(parts, fmt.Sprintf("call %d", min(req.ToCall, req.Stacks[req.Seat])))
		case betting.Bet, betting.Raise:
			parts = append(parts, fmt.Sprintf("%s %d-%d", k, req.MinRaiseTo, req.MaxRaiseTo))
		default:
			parts = append(parts, k.String())
		}
	}
	return strings.Join(parts, ", ")
}

// parseInput turns typed text into an action legal for req. Besides the
// forms betting.ParseAction accepts it understands single letter
// shorthands, "min" and "allin".
func parseInput(req game.DecisionRequest, text string) (betting.Action, error) {
	wager := betting.Raise
	if req.Can(betting.Bet) {
		wager = betting.Bet
	}

	var action betting.Action
	switch text {
	case "":
		return betting.Action{}, fmt.Errorf("choose one of: %s", describeLegal(req))
	case "f":
		action = betting.FoldAction()
	case "k", "x":
		action = betting.CheckAction()
	case "c":
		action = betting.CallAction()
	case "min":
		action = betting.Action{Kind: wager, Amount: req.MinRaiseTo}
	case "allin", "all-in", "shove":
		if !req.Can(wager) {
			if req.Can(betting.Call) {
				return betting.CallAction(), nil
			}
			return betting.Action{}, fmt.Errorf("you cannot put in more chips here")
		}
		action = betting.Action{Kind: wager, Amount: req.MaxRaiseTo}
	default:
		var err error
		if action, err = betting.ParseAction(text); err != nil {
			return betting.Action{}, fmt.Errorf("did not understand %q", text)
		}
	}

	if !req.Can(action.Kind) {
		return betting.Action{}, fmt.Errorf("%s is not available; choose one of: %s", action.Kind, describeLegal(req))
	}
	if action.Kind.IsWager() && (action.Amount < req.MinRaiseTo || action.Amount > req.MaxRaiseTo) {
		return betting.Action{}, fmt.Errorf("%s must be to a total between %d and %d", action.Kind, req.MinRaiseTo, req.MaxRaiseTo)
	}
	return action, nil
}
