package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
)

// stubLLM implements driven.LLMService with a canned reply.
type stubLLM struct {
	name     string
	reply    string
	err      error
	delay    time.Duration
	closeErr error

	mu           sync.Mutex
	calls        int
	lastMessages []driven.ChatMessage
}

func (s *stubLLM) respond(ctx context.Context) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubLLM) Generate(ctx context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	return s.respond(ctx)
}

func (s *stubLLM) Chat(ctx context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	s.mu.Lock()
	s.lastMessages = messages
	s.mu.Unlock()
	return s.respond(ctx)
}

func (s *stubLLM) Summarise(ctx context.Context, _ string, _ int) (string, error) {
	return s.respond(ctx)
}

func (s *stubLLM) ModelName() string          { return s.name }
func (s *stubLLM) Ping(context.Context) error { return nil }
func (s *stubLLM) Close() error               { return s.closeErr }

func (s *stubLLM) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubLLM) LastMessages() []driven.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMessages
}

// stubPrompts implements driven.PromptStore from a map.
type stubPrompts map[string]string

func (p stubPrompts) Load(name string) (string, error) {
	if v, ok := p[name]; ok {
		return v, nil
	}
	return "", errors.New("unknown prompt: " + name)
}

func (p stubPrompts) Reload() {}

// stubSource implements driven.CorpusSource with swappable text.
type stubSource struct {
	mu   sync.Mutex
	text string
	err  error
}

func (s *stubSource) set(text string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text, s.err = text, err
}

func (s *stubSource) Read(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, s.err
}

func (s *stubSource) Name() string { return "stub.txt" }

// stubWatcher fires onChange a fixed number of times, then returns err.
type stubWatcher struct {
	fires int
	err   error
}

func (w *stubWatcher) Watch(_ context.Context, onChange func()) error {
	for i := 0; i < w.fires; i++ {
		onChange()
	}
	return w.err
}

// failingInteractionStore rejects every write.
type failingInteractionStore struct{}

func (failingInteractionStore) Append(context.Context, *domain.InteractionRecord) error {
	return errors.New("disk full")
}

func (failingInteractionStore) ListRecent(context.Context, int) ([]domain.InteractionRecord, error) {
	return nil, errors.New("disk full")
}

func (failingInteractionStore) ExportAll(context.Context) ([]domain.InteractionRecord, error) {
	return nil, errors.New("disk full")
}

// fixedRand always picks the same index.
type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

const testTranscript = `Introdução sem marcador, ignorada.
[TEMA: ansiedade, emoções]
A ansiedade é uma resposta natural do corpo diante de ameaças.
[TEMA: respiração]
A respiração diafragmática ajuda a reduzir a ansiedade.
[TEMA: dossiê 007]
O Dossiê 007 organiza os módulos do curso.`

func testCatalog() domain.Catalog {
	return domain.Catalog{
		Canonical: []domain.CanonicalEntry{
			{
				Question: "Qual é o objetivo principal do Dossiê 007?",
				Answer:   "O **Dossiê 007** ajuda você a compreender suas emoções.",
			},
		},
		Types: []domain.TypeKeywords{
			{Type: "crise", Keywords: []string{"crise", "suicid"}},
			{Type: "exercicio", Keywords: []string{"exercício", "prática"}},
			{Type: "conceito", Keywords: []string{"o que é"}},
			{Type: "explicacao", Keywords: []string{"explica", "ansiedade", "respiração"}},
		},
	}
}

func testPhrases() Phrases {
	return Phrases{
		Greetings:   []string{"Oi"},
		Closings:    []string{"Tchau"},
		OutOfScope:  "Fora do curso",
		SafeDefault: "Tente de novo",
	}
}
