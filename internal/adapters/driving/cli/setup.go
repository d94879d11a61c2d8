package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/services"
)

var (
	setupProvider     string
	setupModel        string
	setupAPIKey       string
	setupOllamaURL    string
	setupAdminPass    string
	setupSkipValidate bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the LLM provider and admin password",
	Long: `Runs an interactive wizard that selects the LLM provider, model and API
key, checks that the provider answers, and optionally sets the admin password
used by the HTTP admin routes.

Pass --provider to skip the prompts:

  refdesk setup --provider anthropic --api-key sk-...
  refdesk setup --provider ollama --model llama3.2 --ollama-url http://gpu-box:11434`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

var setupShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runSetupShow,
}

func init() {
	setupCmd.Flags().StringVar(&setupProvider, "provider", "", "LLM provider (anthropic, openai, ollama)")
	setupCmd.Flags().StringVar(&setupModel, "model", "", "model name (default: provider default)")
	setupCmd.Flags().StringVar(&setupAPIKey, "api-key", "", "API key for cloud providers")
	setupCmd.Flags().StringVar(&setupOllamaURL, "ollama-url", "", "Ollama endpoint")
	setupCmd.Flags().StringVar(&setupAdminPass, "admin-password", "", "admin password for the HTTP API")
	setupCmd.Flags().BoolVar(&setupSkipValidate, "skip-validate", false, "save without contacting the provider")
	setupCmd.AddCommand(setupShowCmd)
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	interactive := setupProvider == ""

	if interactive {
		cmd.Println("refdesk setup")
		cmd.Println()
		if err := promptLLMProvider(cmd, reader); err != nil {
			return err
		}
	} else if err := applyLLMFlags(); err != nil {
		return err
	}

	llm := settingsService.Get().LLM
	if !setupSkipValidate && validateLLM != nil {
		cmd.Print("Validating configuration... ")
		if err := validateLLM(cmd.Context(), llm); err != nil {
			cmd.Println("FAILED")
			return fmt.Errorf("LLM configuration validation failed: %w", err)
		}
		cmd.Println("OK")
	}
	cmd.Printf("LLM provider configured: %s (%s)\n", llm.Provider.Description(), llm.Model)

	password := setupAdminPass
	if interactive && password == "" {
		cmd.Print("Admin password (leave empty to keep current): ")
		password = readSecret(cmd, reader)
		cmd.Println()
	}
	if password != "" {
		if err := settingsService.Set(services.KeyAdminPassword, password); err != nil {
			return fmt.Errorf("failed to save admin password: %w", err)
		}
		cmd.Println("Admin password saved.")
	}

	cmd.Printf("Configuration written to %s\n", settingsService.ConfigPath())
	return nil
}

func applyLLMFlags() error {
	provider := domain.AIProvider(setupProvider)
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrUnsupportedType, setupProvider)
	}
	if err := settingsService.SetLLMProvider(provider, setupModel, setupAPIKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}
	if provider.IsLocal() && setupOllamaURL != "" {
		return settingsService.Set(services.KeyLLMBaseURL, setupOllamaURL)
	}
	return nil
}

func promptLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	provider := providers[parseChoice(readLine(reader), len(providers), 1)-1]

	defaultModel := domain.DefaultLLMModels()[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key (leave empty to use the environment): ")
		apiKey = readSecret(cmd, reader)
		cmd.Println()
	}

	if err := settingsService.SetLLMProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	if provider.IsLocal() {
		cmd.Print("Ollama URL [http://localhost:11434]: ")
		if url := readLine(reader); url != "" {
			if err := settingsService.Set(services.KeyLLMBaseURL, url); err != nil {
				return fmt.Errorf("failed to save Ollama URL: %w", err)
			}
		}
	}
	return nil
}

func runSetupShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	s := settingsService.Get()
	cmd.Printf("Config file:    %s\n", settingsService.ConfigPath())
	cmd.Println()
	cmd.Printf("LLM provider:   %s\n", s.LLM.Provider.Description())
	cmd.Printf("LLM model:      %s\n", s.LLM.Model)
	if s.LLM.BaseURL != "" {
		cmd.Printf("LLM endpoint:   %s\n", s.LLM.BaseURL)
	}
	if s.LLM.Provider.RequiresAPIKey() {
		cmd.Printf("API key:        %s\n", maskSecret(s.LLM.APIKey))
	}
	cmd.Printf("Max tokens:     %d\n", s.LLM.MaxTokens)
	cmd.Println()
	cmd.Printf("Storage:        %s %s\n", s.Storage.Backend, s.Storage.Path)
	cmd.Printf("Library:        %s\n", s.Library.Dir)
	cmd.Printf("Retrieval:      top %d, excerpt %d, context %d\n",
		s.Retrieval.TopK, s.Retrieval.ExcerptChars, s.Retrieval.ContextChars)
	cmd.Printf("Server:         %s\n", s.Server.Addr)
	cmd.Printf("Admin password: %s\n", maskSecret(s.Admin.Password))
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

// readSecret reads without echo when stdin is a terminal, otherwise it
// falls back to a plain line from reader.
func readSecret(cmd *cobra.Command, reader *bufio.Reader) string {
	if f, ok := stdinFile(cmd.InOrStdin()); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(reader)
}

func stdinFile(r io.Reader) (*os.File, bool) {
	f, ok := r.(*os.File)
	return f, ok
}

func maskSecret(s string) string {
	switch {
	case s == "":
		return "(not set)"
	case len(s) <= 8:
		return "****"
	default:
		return s[:4] + "..." + s[len(s)-4:]
	}
}
