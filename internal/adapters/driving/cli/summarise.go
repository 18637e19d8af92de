package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var summariseMaxLength int

var summariseCmd = &cobra.Command{
	Use:   "summarise [file]",
	Short: "Summarise a supplementary document",
	Long: `Summarises a plain-text document through the configured language models.
Use "-" to read from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarise,
}

func init() {
	summariseCmd.Flags().IntVarP(&summariseMaxLength, "max-length", "m", 500, "maximum summary length in characters")
	rootCmd.AddCommand(summariseCmd)
}

func runSummarise(cmd *cobra.Command, args []string) error {
	text, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}

	if err := ensureRuntime(cmd); err != nil {
		return err
	}
	if summaryService == nil {
		return errors.New("summary service not configured")
	}

	summary, err := summaryService.Summarise(cmd.Context(), text, summariseMaxLength)
	if err != nil {
		return fmt.Errorf("summarise failed: %w", err)
	}
	cmd.Println(summary)
	return nil
}

func readDocument(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
