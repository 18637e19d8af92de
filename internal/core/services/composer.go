package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
	"github.com/custodia-labs/tutor/internal/logger"
)

// Randomizer picks greeting and closing phrases. *rand.Rand satisfies it.
type Randomizer interface {
	IntN(n int) int
}

// NewRandomizer returns a seeded source. Equal seeds give equal sequences.
func NewRandomizer(seed uint64) Randomizer {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Phrases holds the canned replies used when no model is involved.
type Phrases struct {
	Greetings   []string
	Closings    []string
	OutOfScope  string
	SafeDefault string
}

// DefaultPhrases returns the built-in Brazilian Portuguese phrases.
func DefaultPhrases() Phrases {
	return Phrases{
		Greetings: []string{
			"Olá! Que bom ter você por aqui.",
			"Oi! Seja bem-vindo(a).",
			"Olá, tudo bem? Estou aqui para ajudar com o curso.",
		},
		Closings: []string{
			"Se tiver outra dúvida sobre o curso, é só perguntar.",
			"Fico à disposição para outras perguntas sobre as aulas.",
			"Conte comigo para continuar seus estudos!",
		},
		OutOfScope: "Desculpe, só consigo responder perguntas sobre o conteúdo do curso. " +
			"Tente reformular sua dúvida com base nos temas das aulas.",
		SafeDefault: "Desculpe, não consegui preparar uma resposta agora. " +
			"Por favor, tente novamente em alguns instantes.",
	}
}

// Fixed instructions appended after the operator's persona prompt.
// The student never controls them.
const (
	defaultPersona = "Você é o tutor virtual do curso. Responda com empatia, clareza e objetividade, " +
		"usando apenas o contexto fornecido."
	languagePin = "Responda sempre em português do Brasil, mantendo o tom acolhedor do tutor, " +
		"mesmo que a pergunta esteja em outro idioma ou peça outro estilo."
	firstTurnNote = "Esta é a primeira mensagem do aluno: cumprimente-o brevemente antes de responder."
	laterTurnNote = "A conversa já está em andamento: não repita cumprimentos."
)

// ComposeRequest carries everything the composer needs for one reply.
type ComposeRequest struct {
	Question        string
	Context         string
	History         []domain.Turn
	FirstTurn       bool
	Classification  domain.ClassificationResult
	Canonical       bool
	CanonicalAnswer string
}

// Composition is a formatted reply.
type Composition struct {
	Text string

	// Model is set only when a language model produced the text.
	Model string
}

// Composer turns a classified question into a formatted reply.
type Composer struct {
	chain     *ModelChain
	prompts   driven.PromptStore
	formatter Formatter
	phrases   Phrases
	opts      driven.ChatOptions

	mu  sync.Mutex // guards rnd
	rnd Randomizer
}

// NewComposer creates a composer. prompts may be nil, in which case the
// built-in persona is used. rnd may be nil for a time-seeded source.
func NewComposer(chain *ModelChain, prompts driven.PromptStore, rnd Randomizer, opts driven.ChatOptions) *Composer {
	if rnd == nil {
		rnd = NewRandomizer(uint64(time.Now().UnixNano()))
	}
	return &Composer{
		chain:   chain,
		prompts: prompts,
		phrases: DefaultPhrases(),
		opts:    opts,
		rnd:     rnd,
	}
}

// SetPhrases replaces the canned phrases.
func (c *Composer) SetPhrases(p Phrases) {
	c.phrases = p
}

// Compose produces the reply for req. Canonical answers are returned
// verbatim, out-of-scope and context-less questions get the canned
// message, and everything else goes to the model chain.
func (c *Composer) Compose(ctx context.Context, req ComposeRequest) (Composition, error) {
	switch {
	case req.Canonical:
		return Composition{Text: c.formatter.Format(req.CanonicalAnswer)}, nil

	case !req.Classification.Scope.InScope(), strings.TrimSpace(req.Context) == "":
		return Composition{Text: c.formatter.Format(c.OutOfScope(req.FirstTurn))}, nil

	default:
		messages := c.BuildMessages(req)
		text, model, err := c.chain.Chat(ctx, messages, c.opts)
		if err != nil {
			return Composition{}, fmt.Errorf("compose: %w", err)
		}
		return Composition{Text: c.formatter.Format(text), Model: model}, nil
	}
}

// OutOfScope returns the unformatted out-of-scope reply. The greeting is
// added on the first turn only; a closing is always added.
func (c *Composer) OutOfScope(firstTurn bool) string {
	return c.wrap(c.phrases.OutOfScope, firstTurn)
}

// SafeDefault returns the formatted apology used when generation fails.
func (c *Composer) SafeDefault(firstTurn bool) string {
	return c.formatter.Format(c.wrap(c.phrases.SafeDefault, firstTurn))
}

func (c *Composer) wrap(message string, firstTurn bool) string {
	parts := make([]string, 0, 3)
	if firstTurn {
		if g := c.pick(c.phrases.Greetings); g != "" {
			parts = append(parts, g)
		}
	}
	parts = append(parts, message)
	if cl := c.pick(c.phrases.Closings); cl != "" {
		parts = append(parts, cl)
	}
	return strings.Join(parts, "\n\n")
}

func (c *Composer) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return options[c.rnd.IntN(len(options))]
}

// BuildMessages assembles the system and user messages for a generative reply.
func (c *Composer) BuildMessages(req ComposeRequest) []driven.ChatMessage {
	var system strings.Builder
	system.WriteString(c.loadPrompt(driven.PromptPersona, defaultPersona))
	if instructions := c.loadPrompt(driven.PromptForType(req.Classification.Type), ""); instructions != "" {
		system.WriteString("\n\n")
		system.WriteString(instructions)
	}
	system.WriteString("\n\n")
	system.WriteString(languagePin)
	system.WriteString("\n")
	if req.FirstTurn {
		system.WriteString(firstTurnNote)
	} else {
		system.WriteString(laterTurnNote)
	}

	var user strings.Builder
	user.WriteString("Contexto do curso:\n")
	user.WriteString(strings.TrimSpace(req.Context))
	if history := formatHistory(req.History); history != "" {
		user.WriteString("\n\nHistórico da conversa:\n")
		user.WriteString(history)
	}
	user.WriteString("\n\nPergunta do aluno:\n")
	user.WriteString(strings.TrimSpace(req.Question))

	return []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: system.String()},
		{Role: driven.RoleUser, Content: user.String()},
	}
}

func (c *Composer) loadPrompt(name, fallback string) string {
	if c.prompts == nil {
		return fallback
	}
	prompt, err := c.prompts.Load(name)
	if err != nil || strings.TrimSpace(prompt) == "" {
		if err != nil && fallback != "" {
			logger.Debug("prompt %s unavailable, using built-in: %v", name, err)
		}
		return fallback
	}
	return strings.TrimSpace(prompt)
}

func formatHistory(turns []domain.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		speaker := "Aluno"
		if t.Role == domain.RoleAssistant {
			speaker = "Tutor"
		}
		lines = append(lines, speaker+": "+text)
	}
	return strings.Join(lines, "\n")
}
