package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
	"github.com/custodia-labs/tutor/internal/core/ports/driving"
	"github.com/custodia-labs/tutor/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// AnonymousUser is recorded when a question carries no username.
const AnonymousUser = "anonymous"

// logTimeout bounds one interaction insert. It is detached from the
// request context so a disconnecting client does not drop the record.
const logTimeout = 5 * time.Second

// ChatService answers questions: canonical lookup, classification,
// retrieval, composition and logging.
type ChatService struct {
	corpus     driving.CorpusService
	classifier *Classifier
	composer   *Composer
	store      driven.InteractionStore
	retriever  Retriever
	retrieval  domain.RetrievalSettings

	logFailures atomic.Int64
}

// NewChatService creates a chat service. store may be nil to disable logging.
func NewChatService(
	corpus driving.CorpusService,
	classifier *Classifier,
	composer *Composer,
	store driven.InteractionStore,
	retrieval domain.RetrievalSettings,
) *ChatService {
	return &ChatService{
		corpus:     corpus,
		classifier: classifier,
		composer:   composer,
		store:      store,
		retrieval:  retrieval,
	}
}

// Ask answers a question. Generation failures degrade to the safe default
// and logging failures are counted, so the only error is invalid input.
func (s *ChatService) Ask(ctx context.Context, q domain.Question) (*domain.Answer, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	answer := &domain.Answer{RequestID: uuid.NewString()}
	logger.Section("Ask " + answer.RequestID)
	logger.Debug("user=%q first_turn=%v history=%d question=%q", q.Username, q.FirstTurn, len(q.History), text)

	req := ComposeRequest{
		Question:  text,
		History:   q.History,
		FirstTurn: q.FirstTurn,
	}

	if canned, ok := s.classifier.Canonical().Lookup(text); ok {
		answer.Scope = domain.ScopeIn
		answer.Type = domain.PromptTypeFAQ
		answer.Canonical = true
		req.Canonical = true
		req.CanonicalAnswer = canned
		req.Classification = domain.ClassificationResult{Scope: domain.ScopeIn, Type: domain.PromptTypeFAQ}
		logger.Debug("canonical match")
	} else {
		cls := s.classifier.Classify(text)
		answer.Scope = cls.Scope
		answer.Type = cls.Type
		req.Classification = cls
		if cls.Scope.InScope() {
			_, answer.Context = s.Retrieve(text)
		}
		req.Context = answer.Context
		logger.Debug("classified %s/%s, context %d chars", cls.Scope, cls.Type, len(answer.Context))
	}

	comp, err := s.composer.Compose(ctx, req)
	if err != nil {
		logger.Warn("request %s degraded to safe default: %v", answer.RequestID, err)
		answer.Text = s.composer.SafeDefault(q.FirstTurn)
		answer.Degraded = true
	} else {
		answer.Text = comp.Text
		answer.Model = comp.Model
	}

	s.record(ctx, q.Username, text, answer)
	return answer, nil
}

// Classify reports the routing decision for a question.
func (s *ChatService) Classify(question string) domain.ClassificationResult {
	return s.classifier.Classify(question)
}

// Retrieve ranks the current corpus against a question and builds the context.
func (s *ChatService) Retrieve(question string) ([]domain.ScoredBlock, string) {
	var blocks []domain.TopicBlock
	if s.corpus != nil {
		if snap := s.corpus.Snapshot(); snap != nil {
			blocks = snap.Blocks
		}
	}
	ranked := s.retriever.Rank(question, blocks)
	return ranked, JoinContext(ranked, s.retrieval.MaxBlocks, s.retrieval.MaxLength)
}

// LogFailures returns how many interactions could not be recorded.
func (s *ChatService) LogFailures() int64 {
	return s.logFailures.Load()
}

func (s *ChatService) record(ctx context.Context, username, question string, answer *domain.Answer) {
	if s.store == nil {
		return
	}
	if username == "" {
		username = AnonymousUser
	}

	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logTimeout)
	defer cancel()

	rec := &domain.InteractionRecord{
		Username:       username,
		Question:       question,
		Answer:         answer.Text,
		ContextSnippet: answer.Context,
		PromptType:     answer.Type,
	}
	if err := s.store.Append(logCtx, rec); err != nil {
		s.logFailures.Add(1)
		logger.Error("request %s: record interaction: %v", answer.RequestID, err)
		return
	}
	logger.Debug("recorded interaction %d", rec.ID)
}
