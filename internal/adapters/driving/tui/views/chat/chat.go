// Package chat provides the conversation view of the terminal tutor.
package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tutor/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/tutor/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/tutor/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tutor/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tutor/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driving"
)

const (
	tutorName   = "Tutor"
	studentName = "Você"

	// header, input box, status bar and spacing
	chromeHeight = 8
)

type entry struct {
	student bool
	text    string
}

// View is a scrolling conversation above a question input.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	statusbar *status.Bar
	viewport  viewport.Model

	chatService driving.ChatService
	ctx         context.Context
	username    string
	subtitle    string

	entries  []entry
	history  []domain.Turn
	pending  bool
	showHelp bool

	width  int
	height int
	ready  bool
}

// NewView creates a conversation view. username is recorded with every question.
func NewView(s *styles.Styles, km *keymap.KeyMap, chatService driving.ChatService, username string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:      s,
		keymap:      km,
		statusbar:   status.NewBar(s, km),
		viewport:    viewport.New(80, 16),
		chatService: chatService,
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
	v.SetUsername(username)
	return v
}

// WithContext sets the context used for questions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetUsername changes who is asking. It also relabels the input.
func (v *View) SetUsername(username string) {
	v.username = username
	label := studentName
	if username != "" {
		label = username
	}
	v.input = input.NewQuestionInput(v.styles, label)
	v.input.SetWidth(v.width)
}

// SetSubtitle sets the line shown under the title.
func (v *View) SetSubtitle(subtitle string) {
	v.subtitle = subtitle
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the conversation view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnswerReceived:
		v.handleAnswer(msg)
		return v, nil

	case messages.ConversationReset:
		v.Reset()
		return v, nil

	case messages.ErrorOccurred:
		v.pending = false
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Help):
		v.showHelp = !v.showHelp
		return v, nil

	case keymap.Matches(key, v.keymap.NewConversation):
		return v, func() tea.Msg { return messages.ConversationReset{} }

	case keymap.Matches(key, v.keymap.ScrollUp), keymap.Matches(key, v.keymap.ScrollDown):
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd

	case keymap.Matches(key, v.keymap.Send):
		if v.pending {
			return v, nil
		}
		question := strings.TrimSpace(v.input.Value())
		if question == "" {
			return v, nil
		}
		v.input.Reset()
		v.entries = append(v.entries, entry{student: true, text: question})
		v.pending = true
		v.statusbar.SetState(status.StateThinking)
		v.refresh()
		return v, v.ask(question)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// ask sends the question with a snapshot of the history taken now.
func (v *View) ask(question string) tea.Cmd {
	q := domain.Question{
		Username:  v.username,
		Text:      question,
		History:   append([]domain.Turn(nil), v.history...),
		FirstTurn: len(v.history) == 0,
	}
	chatService := v.chatService
	ctx := v.ctx

	return func() tea.Msg {
		if chatService == nil {
			return messages.ErrorOccurred{Err: ErrNoChatService}
		}
		answer, err := chatService.Ask(ctx, q)
		return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

func (v *View) handleAnswer(msg messages.AnswerReceived) {
	v.pending = false
	if msg.Err != nil || msg.Answer == nil {
		v.statusbar.SetState(status.StateError)
		if msg.Err != nil {
			v.statusbar.SetMessage(msg.Err.Error())
		}
		return
	}

	v.entries = append(v.entries, entry{text: Render(msg.Answer.Text, v.styles)})
	v.history = append(v.history,
		domain.Turn{Role: domain.RoleStudent, Text: msg.Question},
		domain.Turn{Role: domain.RoleAssistant, Text: Plain(msg.Answer.Text)},
	)

	v.statusbar.SetTurns(len(v.history) / 2)
	v.statusbar.SetModel(msg.Answer.Model)
	v.statusbar.SetMessage("")
	if msg.Answer.Degraded {
		v.statusbar.SetState(status.StateDegraded)
	} else {
		v.statusbar.SetState(status.StateReady)
	}
	v.refresh()
}

// refresh re-renders the conversation and scrolls to the newest turn.
func (v *View) refresh() {
	wrap := lipgloss.NewStyle().Width(max(v.viewport.Width, 10))

	blocks := make([]string, 0, len(v.entries))
	for _, e := range v.entries {
		name := v.styles.TutorName.Render(tutorName)
		text := e.text
		if e.student {
			label := studentName
			if v.username != "" {
				label = v.username
			}
			name = v.styles.StudentName.Render(label)
			text = v.styles.Normal.Render(text)
		}
		blocks = append(blocks, name+"\n"+wrap.Render(text))
	}
	if v.pending {
		blocks = append(blocks, v.styles.Muted.Render(tutorName+" está digitando..."))
	}

	v.viewport.SetContent(strings.Join(blocks, "\n\n"))
	v.viewport.GotoBottom()
}

// View renders the conversation view.
func (v *View) View() string {
	if !v.ready {
		return "Carregando..."
	}

	sections := make([]string, 0, 8)
	header := v.styles.Title.Render("Tutor")
	if v.subtitle != "" {
		header += "  " + v.styles.Muted.Render(v.subtitle)
	}
	sections = append(sections, header, "", v.viewport.View(), "")

	if v.showHelp {
		sections = append(sections, v.renderHelp(), "")
	}

	sections = append(sections, v.input.View(), v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderHelp() string {
	lines := make([]string, 0, 6)
	for _, group := range v.keymap.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, h.Key+"  "+h.Desc)
		}
	}
	return v.styles.Help.Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.viewport.Width = width
	v.viewport.Height = max(height-chromeHeight, 3)
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.refresh()
}

// Reset clears the conversation. The next question is a first turn again.
func (v *View) Reset() {
	v.entries = nil
	v.history = nil
	v.pending = false
	v.input.Reset()
	v.statusbar.Clear()
	v.refresh()
}

// History returns the turns passed with the next question.
func (v *View) History() []domain.Turn {
	return v.history
}

// Pending reports whether a question is awaiting its answer.
func (v *View) Pending() bool {
	return v.pending
}

// Ready returns whether the view has been sized.
func (v *View) Ready() bool {
	return v.ready
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}
