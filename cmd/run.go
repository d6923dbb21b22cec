package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spigell/career-referee/internal/ai"
	"github.com/spigell/career-referee/internal/ai/gemini"
	"github.com/spigell/career-referee/internal/ai/mock"
	"github.com/spigell/career-referee/internal/ai/ollama"
	"github.com/spigell/career-referee/internal/logger"
	"github.com/spigell/career-referee/internal/referee"
	"github.com/spigell/career-referee/internal/secrets"
	"github.com/spigell/career-referee/internal/ui"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptNewComparison = "Compare other careers"
	PromptDumpToFile    = "Dump comparison to file"
	PromptExit          = "Exit"

	providerOllama = "ollama"
	providerGemini = "gemini"
	providerMock   = "mock"
)

type page int

const (
	pageInput page = iota
	pageComparison
)

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptNewComparison, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive career comparison",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("name", "n", "", "user name shown on the comparison (skips the name prompt)")

	viper.BindPFlag("user-name", runCmd.Flags().Lookup("name"))
}

// run is the main command for the cli.
func run(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the career-referee", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		config = &Config{}
	}

	providers, err := buildProviders(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building providers", zap.Error(err))
	}

	ref := referee.New(providers, logger)

	userName := strings.TrimSpace(viper.GetString("user-name"))
	if userName == "" {
		userName = strings.TrimSpace(config.UserName)
	}

	current := pageInput
	var comparison *ui.Comparison

	for {
		switch current {
		case pageInput:
			comparison = nil

			if userName == "" {
				userName = promptFor("Your name", ui.ValidateUserName)
			}

			careerA := promptFor("First career option", ui.ValidateCareer)
			careerB := promptFor("Second career option", ui.ValidateCareer)

			if err := ui.ValidateDistinct(careerA, careerB); err != nil {
				logger.Warn("invalid input", zap.Error(err))
				continue
			}

			logger.Info("analyzing careers, this may take a moment",
				zap.String("career_a", careerA),
				zap.String("career_b", careerB),
			)

			result, err := ref.Compare(ctx, careerA, careerB, userName)
			if err != nil {
				// Only a defect in the fallback chain can get us here.
				logger.Fatal("comparison pipeline is broken", zap.Error(err))
			}

			comparison = &ui.Comparison{
				UserName: userName,
				CareerA:  careerA,
				CareerB:  careerB,
				Result:   result,
			}
			current = pageComparison

		case pageComparison:
			if err := ui.Render(os.Stdout, comparison); err != nil {
				logger.Fatal("rendering comparison", zap.Error(err))
			}

			for current == pageComparison {
				_, action, err := actionPrompt.Run()
				if err != nil {
					logger.Fatal("exiting", zap.Error(err))
				}

				switch action {
				case PromptNewComparison:
					current = pageInput
				case PromptDumpToFile:
					filename, err := comparison.DumpToTmpFile()
					if err != nil {
						logger.Fatal("dumping result to file", zap.Error(err))
					}
					logger.Info("dumping result to file", zap.String("filename", filename))
				case PromptExit:
					logger.Info("exiting", zap.String("reason", "got exit from prompt"))
					return
				}
			}
		}
	}
}

func promptFor(label string, validate func(string) error) string {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}

	value, err := prompt.Run()
	if err != nil {
		log.Fatalf("reading %s: %s", strings.ToLower(label), err)
	}

	return strings.TrimSpace(value)
}

// buildProviders assembles the fallback chain in priority order. The mock
// provider is always appended when the configuration leaves it out, keeping
// the referee's termination guarantee intact.
func buildProviders(ctx context.Context, config *AIConfig, logger *zap.Logger) ([]ai.Provider, error) {
	if config == nil {
		config = &AIConfig{}
	}

	order := config.Providers
	if len(order) == 0 {
		order = []string{providerOllama, providerGemini, providerMock}
	}

	hasMock := false
	providers := make([]ai.Provider, 0, len(order)+1)

	for _, name := range order {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case providerOllama:
			providers = append(providers, newOllamaProvider(config.Ollama, logger))
		case providerGemini:
			provider, err := newGeminiProvider(ctx, config.Gemini, logger)
			if err != nil {
				return nil, fmt.Errorf("building gemini provider: %w", err)
			}
			providers = append(providers, provider)
		case providerMock:
			providers = append(providers, mock.New())
			hasMock = true
		default:
			return nil, fmt.Errorf("unsupported ai provider: %s", name)
		}
	}

	if !hasMock {
		providers = append(providers, mock.New())
	}

	return providers, nil
}

func newOllamaProvider(config *OllamaConfig, logger *zap.Logger) *ollama.Client {
	if config == nil {
		config = &OllamaConfig{}
	}

	return ollama.New(ollama.Config{
		BaseURL:      config.BaseURL,
		Models:       config.Models,
		Timeout:      config.Timeout,
		MaxLogLength: config.MaxLogLength,
	}, logger)
}

func newGeminiProvider(ctx context.Context, config *GeminiConfig, logger *zap.Logger) (*gemini.Client, error) {
	if config == nil {
		config = &GeminiConfig{}
	}

	keyFile := strings.TrimSpace(config.APIKeyFile)
	if keyFile == "" {
		keyFile = strings.TrimSpace(viper.GetString("gemini-api-key-file"))
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  keyFile,
		Env:   "GEMINI_API_KEY",
		Value: config.APIKey,
	})
	if err != nil {
		// Not fatal: the provider reports itself unavailable and the chain
		// falls through to the next backend.
		logger.Warn(
			"gemini api key is not configured, the hosted provider will be skipped",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
		apiKey = ""
	}

	return gemini.New(ctx, gemini.Config{
		APIKey:       apiKey,
		Model:        config.Model,
		MaxRetries:   config.MaxRetries,
		MaxLogLength: config.MaxLogLength,
	}, logger)
}
