package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tutor/internal/adapters/driving/tui"
)

var chatUser string

// chatCmd runs the terminal chat.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the tutor in the terminal",
	Long: `Launch an interactive conversation with the tutor.

Earlier turns are sent with each question so follow-ups keep their context.

Controls:
  Enter       - Send question
  Ctrl+N      - New conversation
  PgUp/PgDown - Scroll
  F1          - Toggle help
  Esc         - Quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatUser, "user", "u", "", "username recorded with each interaction")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newChatApp(cmd)
	if err != nil {
		return err
	}

	stop := startWatcher(cmd.Context())
	defer stop()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}

func newChatApp(cmd *cobra.Command) (*tui.App, error) {
	if err := ensureRuntime(cmd); err != nil {
		return nil, err
	}

	app, err := tui.NewApp(&tui.Ports{Chat: chatService, Corpus: corpusService})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return app.WithContext(cmd.Context()).WithUsername(chatUser), nil
}
