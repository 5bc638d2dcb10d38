package main

import (
	"fmt"
	"os"

	"askpanel/internal/config"
	"askpanel/internal/responder"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var forceInit bool

// configCmd groups config helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or inspect the askpanel config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to --config",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config with keys masked",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !forceInit {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	// Defaults only: keys from the environment stay out of the file.
	if err := config.DefaultConfig().Save(configPath); err != nil {
		return err
	}
	logger.Info("Config written", zap.String("path", configPath))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	masked := *cfg
	masked.LLM.APIKey = responder.MaskCredential(cfg.LLM.APIKey)
	masked.LLM.APIKeys = make([]string, len(cfg.LLM.APIKeys))
	for i, k := range cfg.LLM.APIKeys {
		masked.LLM.APIKeys[i] = responder.MaskCredential(k)
	}
	masked.Panel.Personas = append(masked.Panel.Personas[:0:0], cfg.Panel.Personas...)
	for i := range masked.Panel.Personas {
		if masked.Panel.Personas[i].APIKey != "" {
			masked.Panel.Personas[i].APIKey = responder.MaskCredential(masked.Panel.Personas[i].APIKey)
		}
	}

	data, err := yaml.Marshal(&masked)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
