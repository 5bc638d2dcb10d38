package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"askpanel/internal/display"
	"askpanel/internal/panel"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	summaryOnly bool
	streamLines bool
)

// askCmd asks every configured persona the same question
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask every persona the same question in parallel",
	Long: `Builds one prompt per persona, sends them concurrently and prints the
answers in persona order once all have arrived.

Example:
  askpanel ask "Suggest a name for the new public-private co-creation hall"
  askpanel ask --stream "What should we serve at the opening?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&summaryOnly, "summary", false, "Print one clipped line per persona")
	askCmd.Flags().BoolVar(&streamLines, "stream", false, "Print each answer as soon as it arrives")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	p, err := panel.FromConfig(cfg, newClient(cfg))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	question := strings.Join(args, " ")
	logger.Info("Asking panel",
		zap.Int("personas", len(cfg.Panel.Personas)),
		zap.String("model", cfg.LLM.Model))

	out := cmd.OutOrStdout()
	var onAnswer func(panel.Answer)
	if streamLines {
		onAnswer = func(a panel.Answer) {
			fmt.Fprintln(out, a.Line())
		}
	}

	answers, err := p.AskStream(ctx, question, onAnswer)
	if err != nil {
		return err
	}

	failed := 0
	entries := make([]display.Entry, len(answers))
	for i, a := range answers {
		entries[i] = display.Entry{Label: a.Persona, Text: a.Text, Failed: a.Failed()}
		if a.Failed() {
			failed++
			logger.Warn("Persona answer failed", zap.String("persona", a.Persona), zap.Error(a.Err))
		}
	}
	logger.Info("Panel finished", zap.Int("answers", len(answers)), zap.Int("failed", failed))

	if streamLines {
		return nil
	}

	r := newRenderer(cfg)
	if summaryOnly {
		fmt.Fprint(out, r.Summary(entries))
		return nil
	}
	fmt.Fprint(out, r.Render(entries))
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
