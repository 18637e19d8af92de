package cli

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/tutor/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tutor/internal/bootstrap"
	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driving"
	"github.com/custodia-labs/tutor/internal/core/services"
)

var errRuntimeUnavailable = errors.New("runtime not available in tests")

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	answer  *domain.Answer
	err     error
	asked   []domain.Question
	result  domain.ClassificationResult
	ranked  []domain.ScoredBlock
	snippet string
}

func (m *mockChatService) Ask(_ context.Context, q domain.Question) (*domain.Answer, error) {
	m.asked = append(m.asked, q)
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockChatService) Classify(_ string) domain.ClassificationResult {
	return m.result
}

func (m *mockChatService) Retrieve(_ string) ([]domain.ScoredBlock, string) {
	return m.ranked, m.snippet
}

// mockHistoryService is a mock implementation of driving.HistoryService.
// records are kept newest first.
type mockHistoryService struct {
	records   []domain.InteractionRecord
	err       error
	lastN     int
	allCalled bool
}

func (m *mockHistoryService) Recent(_ context.Context, n int) ([]domain.InteractionRecord, error) {
	m.lastN = n
	if m.err != nil {
		return nil, m.err
	}
	if n > len(m.records) {
		n = len(m.records)
	}
	return m.records[:n], nil
}

func (m *mockHistoryService) All(_ context.Context) ([]domain.InteractionRecord, error) {
	m.allCalled = true
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.InteractionRecord, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	corpus *domain.Corpus
}

func (m *mockCorpusService) Load(_ context.Context) error   { return nil }
func (m *mockCorpusService) Reload(_ context.Context) error { return nil }
func (m *mockCorpusService) Snapshot() *domain.Corpus       { return m.corpus }
func (m *mockCorpusService) Stats() domain.CorpusStats      { return m.corpus.Stats() }

// mockSummaryService is a mock implementation of driving.SummaryService.
type mockSummaryService struct {
	summary   string
	err       error
	text      string
	maxLength int
}

func (m *mockSummaryService) Summarise(_ context.Context, text string, maxLength int) (string, error) {
	m.text = text
	m.maxLength = maxLength
	return m.summary, m.err
}

var testTimestamp = time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)

func testRecords() []domain.InteractionRecord {
	return []domain.InteractionRecord{
		{ID: 2, Username: "bruno", Question: "Como respirar?", Answer: "Respire fundo.",
			PromptType: "pratica", Timestamp: testTimestamp.Add(time.Minute)},
		{ID: 1, Username: "ana", Question: "O que é ansiedade?", Answer: "Uma resposta, \"natural\".",
			ContextSnippet: "A ansiedade é natural.", PromptType: "conceito", Timestamp: testTimestamp},
	}
}

func testCorpus() *domain.Corpus {
	return &domain.Corpus{
		Source:   "/srv/curso/transcricao.txt",
		LoadedAt: testTimestamp,
		Blocks: []domain.TopicBlock{
			{Tags: []string{"ansiedade", "emocoes"}, Content: "A ansiedade é natural."},
			{Tags: []string{"respiracao"}, Content: "Respire fundo."},
		},
	}
}

// setupTestServices installs mocks for every service and makes any attempt
// to build the real runtime fail. The returned function restores the
// previous state and resets command flags.
func setupTestServices() func() {
	oldChat := chatService
	oldHistory := historyService
	oldCorpus := corpusService
	oldSummary := summaryService
	oldSettings := settingsService
	oldVerifier := tokenVerifier
	oldWatch := watchCorpus
	oldCloser := runtimeCloser
	oldBuild := buildRuntime
	oldNewSettings := newSettingsService

	chatService = &mockChatService{
		answer: &domain.Answer{
			RequestID: "req-1",
			Text:      "Olá!<br><br>A <strong>ansiedade</strong> é natural.",
			Scope:     domain.ScopeIn,
			Type:      "conceito",
			Model:     "mock-model",
			Context:   "A ansiedade é natural.",
		},
		result:  domain.ClassificationResult{Scope: domain.ScopeIn, Type: "conceito"},
		ranked:  []domain.ScoredBlock{{Block: testCorpus().Blocks[0], Score: 2, Position: 0}},
		snippet: "A ansiedade é natural.",
	}
	historyService = &mockHistoryService{records: testRecords()}
	corpusService = &mockCorpusService{corpus: testCorpus()}
	summaryService = &mockSummaryService{summary: "Resumo curto."}
	settingsService = services.NewSettingsService(memory.NewConfigStore(), nil)
	tokenVerifier = nil
	watchCorpus = nil
	runtimeCloser = nil
	buildRuntime = func(context.Context, bootstrap.Options, *domain.AppSettings) (*bootstrap.Runtime, error) {
		return nil, errRuntimeUnavailable
	}
	newSettingsService = func(bootstrap.Options) (driving.SettingsService, error) {
		return nil, errRuntimeUnavailable
	}

	return func() {
		chatService = oldChat
		historyService = oldHistory
		corpusService = oldCorpus
		summaryService = oldSummary
		settingsService = oldSettings
		tokenVerifier = oldVerifier
		watchCorpus = oldWatch
		runtimeCloser = oldCloser
		buildRuntime = oldBuild
		newSettingsService = oldNewSettings
		resetFlags()
	}
}

func resetFlags() {
	askUser, askFirstTurn, askJSON, retrieveJSON = "", true, false, false
	logsLimit, logsJSON = 20, false
	exportScope, exportLimit, exportOutput = scopeRecent, 20, ""
	summariseMaxLength = 500
	serveAddr = ""
	chatUser = ""
	settingsTier = string(domain.ModelTierPrimary)
	verbose, configDir, envFile, ephemeral = false, "", ".env", false
	rootCmd.SetArgs(nil)
	rootCmd.SetIn(nil)
}

func mockChat() *mockChatService       { return chatService.(*mockChatService) }
func mockHistory() *mockHistoryService { return historyService.(*mockHistoryService) }
func mockSummary() *mockSummaryService { return summaryService.(*mockSummaryService) }
