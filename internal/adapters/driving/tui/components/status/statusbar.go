// Package status provides the status bar of the chat UI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tutor/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tutor/internal/adapters/driving/tui/styles"
)

// State represents the conversation state shown on the left.
type State string

const (
	StateReady    State = "ready"
	StateThinking State = "thinking"
	StateDegraded State = "degraded"
	StateError    State = "error"
)

// Bar displays conversation status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	model   string
	turns   int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// the style pads one column on each side
	padding := max(s.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateThinking:
		return s.styles.Muted.Render("Pensando...")
	case StateDegraded:
		return s.styles.Warning.Render("Modelos indisponíveis, resposta padrão enviada")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Erro: %s", s.message))
		}
		return s.styles.Error.Render("Erro")
	case StateReady:
	}

	parts := make([]string, 0, 2)
	if s.turns > 0 {
		parts = append(parts, fmt.Sprintf("%d perguntas", s.turns))
	}
	if s.model != "" {
		parts = append(parts, s.model)
	}
	if len(parts) == 0 {
		return s.styles.Muted.Render("Pronto")
	}
	return s.styles.Normal.Render(strings.Join(parts, " · "))
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetModel records the model that produced the last reply.
func (s *Bar) SetModel(model string) {
	s.model = model
}

// Model returns the model of the last reply.
func (s *Bar) Model() string {
	return s.model
}

// SetTurns sets the number of answered questions.
func (s *Bar) SetTurns(n int) {
	s.turns = n
}

// Turns returns the number of answered questions.
func (s *Bar) Turns() int {
	return s.turns
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its initial state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.model = ""
	s.turns = 0
}
