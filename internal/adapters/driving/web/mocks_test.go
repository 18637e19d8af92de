package web

import (
	"context"

	"github.com/custodia-labs/tutor/internal/core/domain"
)

type mockChatService struct {
	answer *domain.Answer
	err    error
	asked  domain.Question
}

func (m *mockChatService) Ask(_ context.Context, q domain.Question) (*domain.Answer, error) {
	m.asked = q
	return m.answer, m.err
}

func (m *mockChatService) Classify(_ string) domain.ClassificationResult {
	return domain.ClassificationResult{}
}

func (m *mockChatService) Retrieve(_ string) ([]domain.ScoredBlock, string) {
	return nil, ""
}

type mockHistoryService struct {
	records   []domain.InteractionRecord
	err       error
	lastN     int
	allCalled bool
}

func (m *mockHistoryService) Recent(_ context.Context, n int) ([]domain.InteractionRecord, error) {
	m.lastN = n
	return m.records, m.err
}

func (m *mockHistoryService) All(_ context.Context) ([]domain.InteractionRecord, error) {
	m.allCalled = true
	return m.records, m.err
}

type mockCorpusService struct {
	corpus *domain.Corpus
}

func (m *mockCorpusService) Load(_ context.Context) error   { return nil }
func (m *mockCorpusService) Reload(_ context.Context) error { return nil }
func (m *mockCorpusService) Snapshot() *domain.Corpus       { return m.corpus }
func (m *mockCorpusService) Stats() domain.CorpusStats      { return m.corpus.Stats() }
