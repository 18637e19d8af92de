package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tutor/internal/adapters/driving/csvexport"
	"github.com/custodia-labs/tutor/internal/core/domain"
)

const (
	scopeRecent = "recent"
	scopeAll    = "all"
)

var (
	logsLimit    int
	logsJSON     bool
	exportScope  string
	exportLimit  int
	exportOutput string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent interactions",
	Long:  `Lists the most recent logged interactions, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runLogs,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export interactions as CSV",
	Long: `Writes the interaction log as CSV with the columns
id, username, question, answer, context_snippet, prompt_type and timestamp.

  --scope recent   newest first, limited by --limit (default)
  --scope all      the whole history, oldest first`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	logsCmd.Flags().IntVarP(&logsLimit, "limit", "n", 20, "maximum number of interactions")
	logsCmd.Flags().BoolVar(&logsJSON, "json", false, "output interactions as JSON")
	exportCmd.Flags().StringVar(&exportScope, "scope", scopeRecent, "recent or all")
	exportCmd.Flags().IntVarP(&exportLimit, "limit", "n", 20, "maximum number of interactions for --scope recent")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(exportCmd)
}

type interactionJSON struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	ContextSnippet string `json:"context_snippet,omitempty"`
	PromptType     string `json:"prompt_type"`
	Timestamp      string `json:"timestamp"`
}

func runLogs(cmd *cobra.Command, _ []string) error {
	if err := ensureRuntime(cmd); err != nil {
		return err
	}
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.Recent(cmd.Context(), logsLimit)
	if err != nil {
		return fmt.Errorf("failed to list interactions: %w", err)
	}

	if logsJSON {
		out := make([]interactionJSON, 0, len(records))
		for _, r := range records {
			out = append(out, interactionJSON{
				ID:             r.ID,
				Username:       r.Username,
				Question:       r.Question,
				Answer:         r.Answer,
				ContextSnippet: r.ContextSnippet,
				PromptType:     r.PromptType,
				Timestamp:      r.Timestamp.UTC().Format(time.RFC3339),
			})
		}
		return printJSON(cmd, out)
	}

	if len(records) == 0 {
		cmd.Println("No interactions logged.")
		return nil
	}

	for _, r := range records {
		cmd.Printf("#%d  %s  %s  [%s]\n", r.ID, r.Timestamp.Local().Format("2006-01-02 15:04"), r.Username, r.PromptType)
		cmd.Printf("  Q: %s\n", truncate(r.Question, 100))
		cmd.Printf("  A: %s\n", truncate(r.Answer, 100))
	}
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportScope != scopeRecent && exportScope != scopeAll {
		return fmt.Errorf("invalid scope %q: use %s or %s", exportScope, scopeRecent, scopeAll)
	}
	if err := ensureRuntime(cmd); err != nil {
		return err
	}
	if historyService == nil {
		return errors.New("history service not configured")
	}

	var (
		records []domain.InteractionRecord
		err     error
	)
	if exportScope == scopeAll {
		records, err = historyService.All(cmd.Context())
	} else {
		records, err = historyService.Recent(cmd.Context(), exportLimit)
	}
	if err != nil {
		return fmt.Errorf("failed to list interactions: %w", err)
	}

	var buf bytes.Buffer
	if err := csvexport.Write(&buf, records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if exportOutput == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(exportOutput, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	cmd.PrintErrf("Exported %d interactions to %s\n", len(records), exportOutput)
	return nil
}
