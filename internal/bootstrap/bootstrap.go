// Package bootstrap wires settings into adapters and services.
//
// Driving adapters receive the resulting services through their Ports
// structs; nothing below this package knows how the pieces were chosen.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/custodia-labs/tutor/internal/adapters/driven/ai"
	"github.com/custodia-labs/tutor/internal/adapters/driven/auth"
	configfile "github.com/custodia-labs/tutor/internal/adapters/driven/config/file"
	corpusfile "github.com/custodia-labs/tutor/internal/adapters/driven/corpus/file"
	"github.com/custodia-labs/tutor/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tutor/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
	"github.com/custodia-labs/tutor/internal/core/services"
	"github.com/custodia-labs/tutor/internal/logger"
)

// Options select where state lives.
type Options struct {
	// ConfigDir holds config.toml and prompts/. Empty means ~/.tutor.
	ConfigDir string

	// Ephemeral keeps interactions in memory instead of SQLite.
	Ephemeral bool
}

// promptDir returns the prompt directory under ConfigDir, or "" for the default.
func (o Options) promptDir() string {
	if o.ConfigDir == "" {
		return ""
	}
	return filepath.Join(o.ConfigDir, "prompts")
}

// NewSettingsService opens the TOML config store and returns a settings
// service that can ping providers.
func NewSettingsService(opts Options) (*services.SettingsService, error) {
	store, err := configfile.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	return services.NewSettingsService(store, ai.NewConfigValidator()), nil
}

// Runtime is the wired application.
type Runtime struct {
	Chat     *services.ChatService
	Corpus   *services.CorpusService
	History  *services.HistoryService
	Summary  *services.SummaryService
	Verifier driven.TokenVerifier

	// Watcher is nil unless corpus.watch is set.
	Watcher driven.CorpusWatcher

	// Tiers lists the model tiers that were constructed, in attempt order.
	Tiers []domain.ModelTier

	// Warnings are non-fatal start-up problems, such as a tier that
	// could not be built.
	Warnings []string

	closers []func() error
}

// Build loads the catalog, prompts and corpus, opens the interaction
// store and constructs the model chain. A corpus that cannot be read or
// holds no topic blocks is an error.
func Build(ctx context.Context, opts Options, settings *domain.AppSettings) (*Runtime, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: settings are required", domain.ErrInvalidInput)
	}
	logger.Section("Startup")

	rt := &Runtime{}
	ok := false
	defer func() {
		if !ok {
			_ = rt.Close()
		}
	}()

	prompts, err := configfile.NewPromptStore(opts.promptDir())
	if err != nil {
		return nil, fmt.Errorf("open prompts: %w", err)
	}

	catalog, err := configfile.NewCatalogStore(settings.Corpus.CatalogPath).Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog: %d canonical answers, %d type rules", len(catalog.Canonical), len(catalog.Types))

	source, err := corpusfile.NewSource(settings.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
	}
	rt.Corpus = services.NewCorpusService(source)
	if err := rt.Corpus.Load(ctx); err != nil {
		return nil, err
	}
	stats := rt.Corpus.Stats()
	logger.Info("corpus %s: %d blocks, %d tags", stats.Source, stats.Blocks, stats.Tags)

	if settings.Corpus.Watch {
		watcher, err := corpusfile.NewWatcher(source.Path(), corpusfile.DefaultDebounce)
		if err != nil {
			return nil, fmt.Errorf("watch corpus: %w", err)
		}
		rt.Watcher = watcher
	}

	store, err := rt.openStore(opts, settings.Storage)
	if err != nil {
		return nil, err
	}

	tiers := ai.CreateTiers(&settings.LLM, prompts)
	rt.Warnings = tiers.Warnings
	models := make([]services.ChainModel, 0, len(tiers.Tiers))
	for _, t := range tiers.Tiers {
		models = append(models, services.ChainModel{Tier: t.Name, Service: t.Service})
	}
	chain := services.NewModelChain(models, settings.LLM.AttemptTimeout, settings.LLM.Budget)
	rt.closers = append(rt.closers, chain.Close)
	rt.Tiers = chain.Tiers()
	if chain.Len() == 0 {
		logger.Warn("no language model configured, generated answers fall back to the default message")
	}

	composer := services.NewComposer(chain, prompts,
		services.NewRandomizer(uint64(time.Now().UnixNano())),
		driven.ChatOptions{MaxTokens: settings.LLM.MaxTokens, Temperature: settings.LLM.Temperature})

	rt.Chat = services.NewChatService(rt.Corpus, services.NewClassifierFromCatalog(catalog), composer, store, settings.Retrieval)
	rt.History = services.NewHistoryService(store)
	rt.Summary = services.NewSummaryService(chain)
	rt.Verifier = auth.NewVerifier(settings.Server.Tokens, services.AnonymousUser)

	ok = true
	return rt, nil
}

func (rt *Runtime) openStore(opts Options, storage domain.StorageSettings) (driven.InteractionStore, error) {
	if opts.Ephemeral {
		logger.Info("interactions kept in memory")
		return memory.NewInteractionStore(), nil
	}
	db, err := sqlite.NewStore(storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open interaction store: %w", err)
	}
	rt.closers = append(rt.closers, db.Close)
	logger.Info("interactions: %s", db.Path())
	return db.InteractionStore(), nil
}

// WatchCorpus reloads the corpus on every change until ctx is cancelled.
// It returns immediately when watching is disabled.
func (rt *Runtime) WatchCorpus(ctx context.Context) error {
	if rt.Watcher == nil {
		return nil
	}
	return rt.Corpus.Watch(ctx, rt.Watcher)
}

// Close releases the store and model clients in reverse order of opening.
func (rt *Runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
