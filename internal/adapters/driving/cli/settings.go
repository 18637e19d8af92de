package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/tutor/internal/core/domain"
)

// tierValidator is implemented by settings services that can ping a tier.
type tierValidator interface {
	ValidateModelTier(tier domain.ModelTier) error
}

var settingsTier string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the transcript, language models and server options.

Settings live in config.toml inside the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure a language model tier",
	Long: `Configure the provider and model of the primary or fallback tier.

Questions go to the primary tier first and to the fallback tier when the
primary fails or times out.`,
	RunE: runSettingsLLM,
}

var settingsCorpusCmd = &cobra.Command{
	Use:   "corpus [path]",
	Short: "Set the transcript file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsCorpus,
}

func init() {
	settingsLLMCmd.Flags().StringVarP(&settingsTier, "tier", "t", string(domain.ModelTierPrimary), "primary or fallback")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsCorpusCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := ensureSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Corpus]")
	cmd.Printf("  Path: %s\n", settings.Corpus.Path)
	cmd.Printf("  Watch: %s\n", yesNo(settings.Corpus.Watch))
	catalog := settings.Corpus.CatalogPath
	if catalog == "" {
		catalog = "(built-in)"
	}
	cmd.Printf("  Catalog: %s\n", catalog)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Max blocks: %d\n", settings.Retrieval.MaxBlocks)
	cmd.Printf("  Max context length: %d\n", settings.Retrieval.MaxLength)
	cmd.Println()

	printModel(cmd, "LLM Primary", settings.LLM.Primary)
	printModel(cmd, "LLM Fallback", settings.LLM.Fallback)

	cmd.Println("[Generation]")
	cmd.Printf("  Temperature: %.2f\n", settings.LLM.Temperature)
	cmd.Printf("  Max tokens: %d\n", settings.LLM.MaxTokens)
	cmd.Printf("  Attempt timeout: %s\n", settings.LLM.AttemptTimeout)
	cmd.Printf("  Budget: %s\n", settings.LLM.Budget)
	if settings.LLM.RatePerMinute > 0 {
		cmd.Printf("  Rate limit: %d/min\n", settings.LLM.RatePerMinute)
	} else {
		cmd.Printf("  Rate limit: off\n")
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	if n := len(settings.Server.Tokens); n > 0 {
		cmd.Printf("  Tokens: %d\n", n)
	} else {
		cmd.Printf("  Tokens: none (anonymous access)\n")
	}
	cmd.Println()

	cmd.Println("[Storage]")
	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	cmd.Printf("  Data dir: %s\n", dataDir)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'tutor settings llm' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printModel(cmd *cobra.Command, title string, m domain.ModelSettings) {
	cmd.Printf("[%s]\n", title)
	if m.Provider == "" {
		cmd.Println("  Status: not configured")
		cmd.Println()
		return
	}
	cmd.Printf("  Provider: %s\n", m.Provider.Description())
	cmd.Printf("  Model: %s\n", m.Model)
	if m.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", m.BaseURL)
	}
	if m.Provider.RequiresAPIKey() {
		switch {
		case m.APIKey != "":
			cmd.Printf("  API Key: %s\n", maskAPIKey(m.APIKey))
		case m.APIKeyEnv != "":
			cmd.Printf("  API Key: (from $%s, not set)\n", m.APIKeyEnv)
		default:
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !m.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	tier := domain.ModelTier(settingsTier)
	if tier != domain.ModelTierPrimary && tier != domain.ModelTierFallback {
		return fmt.Errorf("invalid tier %q: use primary or fallback", settingsTier)
	}
	if err := ensureSettings(); err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Printf("Select LLM Provider (%s tier)\n", tier)
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key (empty to use api_key_env): ")
		apiKey = readPassword(cmd, reader)
		cmd.Println()
	}

	if err := settingsService.SetModelTier(tier, provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure %s tier: %w", tier, err)
	}

	if v, ok := settingsService.(tierValidator); ok {
		cmd.Print("Validating configuration... ")
		if err := v.ValidateModelTier(tier); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("%s tier validation failed: %w", tier, err)
		}
		cmd.Println("OK")
	}

	cmd.Printf("LLM %s tier configured: %s (%s)\n", tier, provider.Description(), model)
	return nil
}

func runSettingsCorpus(cmd *cobra.Command, args []string) error {
	if err := ensureSettings(); err != nil {
		return err
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetCorpusPath(args[0]); err != nil {
		return fmt.Errorf("failed to set transcript: %w", err)
	}
	cmd.Printf("Transcript set to: %s\n", strings.TrimSpace(args[0]))
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when the command reads the real terminal.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) string {
	if cmd.InOrStdin() == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
