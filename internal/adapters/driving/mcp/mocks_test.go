package mcp

import (
	"context"

	"github.com/custodia-labs/tutor/internal/core/domain"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	answer  *domain.Answer
	err     error
	asked   domain.Question
	result  domain.ClassificationResult
	ranked  []domain.ScoredBlock
	snippet string
}

func (m *mockChatService) Ask(_ context.Context, q domain.Question) (*domain.Answer, error) {
	m.asked = q
	return m.answer, m.err
}

func (m *mockChatService) Classify(_ string) domain.ClassificationResult {
	return m.result
}

func (m *mockChatService) Retrieve(_ string) ([]domain.ScoredBlock, string) {
	return m.ranked, m.snippet
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records []domain.InteractionRecord
	err     error
	lastN   int
}

func (m *mockHistoryService) Recent(_ context.Context, n int) ([]domain.InteractionRecord, error) {
	m.lastN = n
	return m.records, m.err
}

func (m *mockHistoryService) All(_ context.Context) ([]domain.InteractionRecord, error) {
	return m.records, m.err
}

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	corpus *domain.Corpus
}

func (m *mockCorpusService) Load(_ context.Context) error   { return nil }
func (m *mockCorpusService) Reload(_ context.Context) error { return nil }
func (m *mockCorpusService) Snapshot() *domain.Corpus       { return m.corpus }
func (m *mockCorpusService) Stats() domain.CorpusStats      { return m.corpus.Stats() }
