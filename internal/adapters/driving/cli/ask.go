package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	chatview "github.com/custodia-labs/tutor/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/tutor/internal/core/domain"
)

var (
	askUser      string
	askFirstTurn bool
	askJSON      bool
	retrieveJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the tutor a question",
	Long: `Answers one question and logs the interaction.

The answer is printed as plain text; use --json for the formatted HTML answer
together with its scope, prompt type and the model that produced it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

var classifyCmd = &cobra.Command{
	Use:   "classify [question]",
	Short: "Show the scope and prompt type of a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [question]",
	Short: "Show the transcript passages selected for a question",
	Long: `Ranks the transcript topic blocks against the question and prints the
selected blocks with their scores, followed by the context that would be sent
to the language model.`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

func init() {
	askCmd.Flags().StringVarP(&askUser, "user", "u", "", "username recorded with the interaction")
	askCmd.Flags().BoolVar(&askFirstTurn, "first-turn", true, "open the answer with a greeting")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	retrieveCmd.Flags().BoolVar(&retrieveJSON, "json", false, "output the blocks as JSON")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(retrieveCmd)
}

type answerJSON struct {
	RequestID string `json:"request_id"`
	Answer    string `json:"answer"`
	Scope     string `json:"scope"`
	Type      string `json:"type"`
	Canonical bool   `json:"canonical"`
	Model     string `json:"model,omitempty"`
	Degraded  bool   `json:"degraded"`
	Context   string `json:"context,omitempty"`
}

type blockJSON struct {
	Position int      `json:"position"`
	Score    int      `json:"score"`
	Tags     []string `json:"tags"`
	Content  string   `json:"content"`
}

type retrievalJSON struct {
	Blocks  []blockJSON `json:"blocks"`
	Context string      `json:"context"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := ensureRuntime(cmd); err != nil {
		return err
	}
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	answer, err := chatService.Ask(cmd.Context(), domain.Question{
		Username:  askUser,
		Text:      args[0],
		FirstTurn: askFirstTurn,
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return printJSON(cmd, answerJSON{
			RequestID: answer.RequestID,
			Answer:    answer.Text,
			Scope:     answer.Scope.String(),
			Type:      answer.Type,
			Canonical: answer.Canonical,
			Model:     answer.Model,
			Degraded:  answer.Degraded,
			Context:   answer.Context,
		})
	}

	cmd.Println(chatview.Plain(answer.Text))
	if answer.Degraded {
		cmd.PrintErrln("warning: no language model answered, the default message was sent")
	}
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	if err := ensureRuntime(cmd); err != nil {
		return err
	}
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	result := chatService.Classify(args[0])
	cmd.Printf("Scope: %s\n", result.Scope)
	cmd.Printf("Type:  %s\n", result.Type)
	return nil
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if err := ensureRuntime(cmd); err != nil {
		return err
	}
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	ranked, snippet := chatService.Retrieve(args[0])

	if retrieveJSON {
		out := retrievalJSON{Blocks: make([]blockJSON, 0, len(ranked)), Context: snippet}
		for _, sb := range ranked {
			out.Blocks = append(out.Blocks, blockJSON{
				Position: sb.Position,
				Score:    sb.Score,
				Tags:     sb.Block.Tags,
				Content:  sb.Block.Content,
			})
		}
		return printJSON(cmd, out)
	}

	if len(ranked) == 0 {
		cmd.Println("No relevant passages found.")
		return nil
	}

	cmd.Println("Blocks:")
	for _, sb := range ranked {
		cmd.Printf("  [%d] score %d  (%s)\n", sb.Position, sb.Score, strings.Join(sb.Block.Tags, ", "))
		cmd.Printf("      %s\n", truncate(sb.Block.Content, 120))
	}
	cmd.Println()
	cmd.Println("Context:")
	cmd.Println(snippet)
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// truncate shortens s to maxLen runes, marking the cut with "...".
func truncate(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
