package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionInput(t *testing.T) {
	in := NewQuestionInput(nil, "Você")

	require.NotNil(t, in)
	assert.True(t, in.Focused())
	assert.Empty(t, in.Value())
	assert.Equal(t, 50, in.Width())
	assert.NotNil(t, in.Init())
}

func TestQuestionInput_Typing(t *testing.T) {
	in := NewQuestionInput(nil, "Você")

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("oi?")})

	assert.Equal(t, "oi?", in.Value())
}

func TestQuestionInput_SetValueAndReset(t *testing.T) {
	in := NewQuestionInput(nil, "Você")

	in.SetValue("O que é ansiedade?")
	assert.Equal(t, "O que é ansiedade?", in.Value())

	in.Reset()
	assert.Empty(t, in.Value())
}

func TestQuestionInput_FocusBlur(t *testing.T) {
	in := NewQuestionInput(nil, "Você")

	in.Blur()
	assert.False(t, in.Focused())

	in.Focus()
	assert.True(t, in.Focused())
}

func TestQuestionInput_SetWidth(t *testing.T) {
	in := NewQuestionInput(nil, "Você")

	in.SetWidth(120)
	assert.Equal(t, 120, in.Width())
	assert.Equal(t, 108, in.textinput.Width)

	in.SetWidth(10)
	assert.Equal(t, 20, in.textinput.Width)
}

func TestQuestionInput_View(t *testing.T) {
	in := NewQuestionInput(nil, "ana")

	assert.Contains(t, in.View(), "ana:")
}
