package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tutor/internal/adapters/driving/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the JSON HTTP server used by the course front end.

Routes:
  GET  /healthz
  POST /api/ask
  GET  /api/interactions?limit=N
  GET  /api/interactions/export.csv?scope=recent|all&limit=N

Requests under /api authenticate with "Authorization: Bearer <token>" against
server.tokens. With no tokens configured every request is accepted as the
anonymous user.

When corpus.watch is set, edits to the transcript are picked up without a
restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := ensureRuntime(cmd); err != nil {
		return err
	}
	if tokenVerifier == nil {
		return errors.New("token verifier not configured")
	}

	addr, err := listenAddr()
	if err != nil {
		return err
	}

	server, err := web.NewServer(&web.Ports{
		Chat:     chatService,
		History:  historyService,
		Corpus:   corpusService,
		Verifier: tokenVerifier,
	})
	if err != nil {
		return err
	}

	stop := startWatcher(cmd.Context())
	defer stop()

	cmd.Printf("Listening on http://%s\n", displayAddr(addr))
	if err := server.Run(cmd.Context(), addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func listenAddr() (string, error) {
	if serveAddr != "" {
		return serveAddr, nil
	}
	if err := ensureSettings(); err != nil {
		return "", err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Server.Addr, nil
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
