package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"askpanel/internal/display"
	"askpanel/internal/responder"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var respondKey string

// respondCmd sends one prompt verbatim
var respondCmd = &cobra.Command{
	Use:   "respond [prompt]",
	Short: "Send a single prompt and print the normalized answer",
	Long: `Sends the prompt as-is, without persona formatting. Failures are
printed as "Error: ..." text, exactly as a panel member would show them.

Example:
  askpanel respond --raw "Summarize the Ehime prefecture in one line"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRespond,
}

func init() {
	respondCmd.Flags().StringVar(&respondKey, "key", "", "API key (default: llm.api_key or the first of llm.api_keys)")
}

func runRespond(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := respondKey
	if key == "" {
		key = cfg.LLM.APIKey
	}
	if key == "" && len(cfg.LLM.APIKeys) > 0 {
		key = cfg.LLM.APIKeys[0]
	}
	if key == "" {
		return fmt.Errorf("no API key (use --key, GEMINI_API_KEY or llm.api_key)")
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := newClient(cfg)
	prompt := strings.Join(args, " ")
	logger.Debug("Responding", zap.String("model", client.Model()), zap.Int("prompt_len", len(prompt)))

	text, answerErr := client.Answer(ctx, prompt, key)
	if answerErr != nil {
		logger.Warn("Answer failed", zap.String("kind", responder.KindOf(answerErr).String()))
		text = responder.Render(answerErr)
	}

	out := cmd.OutOrStdout()
	if cfg.Display.Raw {
		fmt.Fprintln(out, text)
		return nil
	}
	fmt.Fprint(out, newRenderer(cfg).Render([]display.Entry{
		{Label: client.Model(), Text: text, Failed: answerErr != nil},
	}))
	return nil
}
