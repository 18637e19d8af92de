package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
	"github.com/custodia-labs/tutor/internal/core/ports/driving"
	"github.com/custodia-labs/tutor/internal/logger"
	"github.com/custodia-labs/tutor/internal/postprocessors/segmenter"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService holds the segmented transcript. Readers always see a
// complete snapshot; reloads build a new one and swap it in.
type CorpusService struct {
	source  driven.CorpusSource
	current atomic.Pointer[domain.Corpus]
	reload  sync.Mutex
	now     func() time.Time
}

// NewCorpusService creates a corpus service reading from source.
func NewCorpusService(source driven.CorpusSource) *CorpusService {
	return &CorpusService{
		source: source,
		now:    time.Now,
	}
}

// Load reads and segments the corpus.
func (s *CorpusService) Load(ctx context.Context) error {
	s.reload.Lock()
	defer s.reload.Unlock()

	corpus, err := s.build(ctx)
	if err != nil {
		return err
	}
	s.current.Store(corpus)
	logger.Info("corpus %s loaded: %d blocks", corpus.Source, len(corpus.Blocks))
	return nil
}

// Reload rebuilds the snapshot. On failure the previous snapshot is kept.
func (s *CorpusService) Reload(ctx context.Context) error {
	s.reload.Lock()
	defer s.reload.Unlock()

	corpus, err := s.build(ctx)
	if err != nil {
		logger.Warn("corpus reload failed, keeping previous snapshot: %v", err)
		return err
	}
	s.current.Store(corpus)
	logger.Info("corpus %s reloaded: %d blocks", corpus.Source, len(corpus.Blocks))
	return nil
}

// Snapshot returns the current corpus, or nil before Load.
func (s *CorpusService) Snapshot() *domain.Corpus {
	return s.current.Load()
}

// Blocks returns the blocks of the current snapshot.
func (s *CorpusService) Blocks() []domain.TopicBlock {
	if c := s.current.Load(); c != nil {
		return c.Blocks
	}
	return nil
}

// Stats summarises the current snapshot.
func (s *CorpusService) Stats() domain.CorpusStats {
	return s.current.Load().Stats()
}

// Watch reloads the corpus whenever the watcher reports a change.
// It blocks until ctx is cancelled.
func (s *CorpusService) Watch(ctx context.Context, watcher driven.CorpusWatcher) error {
	err := watcher.Watch(ctx, func() {
		// Errors are already logged and the old snapshot stays live.
		_ = s.Reload(ctx)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *CorpusService) build(ctx context.Context) (*domain.Corpus, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: no corpus source configured", domain.ErrCorpusUnavailable)
	}

	raw, err := s.source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCorpusUnavailable, s.source.Name(), err)
	}

	blocks := segmenter.Segment(raw)
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrCorpusEmpty, s.source.Name())
	}

	return &domain.Corpus{
		Blocks:   blocks,
		Source:   s.source.Name(),
		LoadedAt: s.now().UTC(),
	}, nil
}
