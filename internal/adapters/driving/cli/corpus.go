package cli

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect the lesson transcript",
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show transcript statistics",
	Args:  cobra.NoArgs,
	RunE:  runCorpusStats,
}

var corpusTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topic blocks",
	Args:  cobra.NoArgs,
	RunE:  runCorpusTopics,
}

func init() {
	corpusCmd.AddCommand(corpusStatsCmd)
	corpusCmd.AddCommand(corpusTopicsCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusStats(cmd *cobra.Command, _ []string) error {
	if err := ensureRuntime(cmd); err != nil {
		return err
	}
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	stats := corpusService.Stats()
	cmd.Printf("Source:    %s\n", stats.Source)
	cmd.Printf("Blocks:    %d\n", stats.Blocks)
	cmd.Printf("Tags:      %d\n", stats.Tags)
	cmd.Printf("Bytes:     %d\n", stats.Bytes)
	if !stats.LoadedAt.IsZero() {
		cmd.Printf("Loaded at: %s\n", stats.LoadedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runCorpusTopics(cmd *cobra.Command, _ []string) error {
	if err := ensureRuntime(cmd); err != nil {
		return err
	}
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	snap := corpusService.Snapshot()
	if snap == nil || len(snap.Blocks) == 0 {
		cmd.Println("No topics loaded.")
		return nil
	}

	for i, b := range snap.Blocks {
		cmd.Printf("%3d  %-40s %6d chars\n", i, strings.Join(b.Tags, ", "), utf8.RuneCountInString(b.Content))
	}
	return nil
}
