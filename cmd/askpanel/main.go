package main

import (
	"fmt"
	"os"
	"time"

	"askpanel/internal/config"
	"askpanel/internal/display"
	"askpanel/internal/logging"
	"askpanel/internal/responder"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	envFile    string
	timeout    time.Duration
	rawOutput  bool
	limit      int

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "askpanel",
	Short: "Ask one question to a panel of personas in parallel",
	Long: `askpanel sends a question to several named personas through the
Gemini generateContent endpoint at the same time and prints each answer.

Keys are read from askpanel.yaml, GEMINI_API_KEY / GEMINI_API_KEYS, or a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "askpanel.yaml", "Config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file with API keys")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per-call timeout (overrides llm.timeout)")
	rootCmd.PersistentFlags().BoolVar(&rawOutput, "raw", false, "Print answers without markdown rendering")
	rootCmd.PersistentFlags().IntVar(&limit, "limit", 0, "Summary line length (overrides display.limit)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(respondCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, applies flag overrides and starts
// category logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if timeout > 0 {
		cfg.LLM.Timeout = timeout.String()
	}
	if rawOutput {
		cfg.Display.Raw = true
	}
	if limit > 0 {
		cfg.Display.Limit = limit
	}

	if cfg.Logging.DebugMode {
		err := logging.Initialize(cfg.Logging.Dir, logging.Options{
			DebugMode:  cfg.Logging.DebugMode,
			Level:      cfg.Logging.Level,
			JSONFormat: cfg.Logging.JSONFormat(),
			Categories: cfg.Logging.Categories,
		})
		if err != nil {
			logger.Warn("Category logging disabled", zap.Error(err))
		}
	}

	logger.Debug("Config loaded",
		zap.String("path", configPath),
		zap.String("model", cfg.LLM.Model),
		zap.Int("personas", len(cfg.Panel.Personas)))
	return cfg, nil
}

func newClient(cfg *config.Config) *responder.Client {
	return responder.New(responder.Config{
		BaseURL:   cfg.LLM.BaseURL,
		Model:     cfg.LLM.Model,
		Timeout:   cfg.GetLLMTimeout(),
		JoinParts: cfg.LLM.JoinParts,
	})
}

func newRenderer(cfg *config.Config) *display.Renderer {
	return display.NewRenderer(display.Options{
		Raw:         cfg.Display.Raw,
		Style:       cfg.Display.Style,
		Width:       cfg.Display.Width,
		Dark:        display.DetectDark(),
		Limit:       cfg.Display.Limit,
		Placeholder: cfg.Display.Placeholder,
	})
}
