// Package cli provides the tutor command line interface on cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tutor/internal/bootstrap"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
	"github.com/custodia-labs/tutor/internal/core/ports/driving"
	"github.com/custodia-labs/tutor/internal/logger"
)

// version is set at build time.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	configDir string
	envFile   string
	ephemeral bool
)

// Services used by the commands. They are built on first use by
// ensureRuntime unless already set.
var (
	chatService     driving.ChatService
	historyService  driving.HistoryService
	corpusService   driving.CorpusService
	summaryService  driving.SummaryService
	settingsService driving.SettingsService
	tokenVerifier   driven.TokenVerifier

	// watchCorpus blocks reloading the corpus on change. Nil when the
	// runtime was not built here.
	watchCorpus func(ctx context.Context) error

	// runtimeCloser releases whatever ensureRuntime opened.
	runtimeCloser func() error
)

// Constructors, replaceable in tests.
var (
	buildRuntime       = bootstrap.Build
	newSettingsService = func(opts bootstrap.Options) (driving.SettingsService, error) {
		return bootstrap.NewSettingsService(opts)
	}
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Course-support chatbot",
	Long: `tutor answers student questions about a course from its lesson transcript.

Questions are matched against canonical answers, classified, grounded on the
most relevant transcript passages and answered through the configured language
models. Every interaction is logged for the course team.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvironment,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.tutor)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file loaded before reading settings")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep interactions in memory instead of the database")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command until it finishes or the process is
// interrupted, then releases the runtime.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// cobra's Print helpers default to stderr.
	rootCmd.SetOut(os.Stdout)
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := closeRuntime(); closeErr != nil {
		logger.Error("shutdown: %v", closeErr)
	}
	return err
}

func loadEnvironment(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return nil
}

func options() bootstrap.Options {
	return bootstrap.Options{ConfigDir: configDir, Ephemeral: ephemeral}
}

func ensureSettings() error {
	if settingsService != nil {
		return nil
	}
	svc, err := newSettingsService(options())
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}
	settingsService = svc
	return nil
}

// ensureRuntime loads settings and builds the chat stack once.
func ensureRuntime(cmd *cobra.Command) error {
	if chatService != nil {
		return nil
	}
	if err := ensureSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	rt, err := buildRuntime(cmd.Context(), options(), settings)
	if err != nil {
		return err
	}
	for _, w := range rt.Warnings {
		cmd.PrintErrf("warning: %s\n", w)
	}

	chatService = rt.Chat
	historyService = rt.History
	corpusService = rt.Corpus
	summaryService = rt.Summary
	tokenVerifier = rt.Verifier
	watchCorpus = rt.WatchCorpus
	runtimeCloser = rt.Close
	return nil
}

func closeRuntime() error {
	if runtimeCloser == nil {
		return nil
	}
	err := runtimeCloser()
	runtimeCloser = nil
	return err
}

// startWatcher runs the corpus watcher in the background for long-running
// commands. The returned function stops it.
func startWatcher(ctx context.Context) func() {
	if watchCorpus == nil {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := watchCorpus(ctx); err != nil {
			logger.Error("corpus watcher stopped: %v", err)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
