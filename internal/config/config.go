package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all askpanel configuration.
type Config struct {
	// Upstream generation endpoint
	LLM LLMConfig `yaml:"llm"`

	// Personas asked in parallel
	Panel PanelConfig `yaml:"panel"`

	// Terminal output
	Display DisplayConfig `yaml:"display"`

	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:     "gemini-2.0-flash-001",
			BaseURL:   "https://generativelanguage.googleapis.com/v1beta",
			Timeout:   "60s",
			JoinParts: true,
		},

		Panel: PanelConfig{
			Personas: []PersonaConfig{
				{Name: "Kenji"},
				{Name: "Shinya"},
				{Name: "Takashi"},
			},
			PromptTemplate: DefaultPromptTemplate,
		},

		Display: DisplayConfig{
			Limit:       50,
			Placeholder: "(no answer)",
			Style:       "auto",
			Width:       80,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Dir:    ".askpanel/logs",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		c.LLM.APIKey = key
	}
	if keys := os.Getenv("GEMINI_API_KEYS"); strings.TrimSpace(keys) != "" {
		c.LLM.APIKeys = splitList(keys)
	}
	if model := strings.TrimSpace(os.Getenv("ASKPANEL_MODEL")); model != "" {
		c.LLM.Model = model
	}
	if url := strings.TrimSpace(os.Getenv("ASKPANEL_BASE_URL")); url != "" {
		c.LLM.BaseURL = url
	}
	if timeout := strings.TrimSpace(os.Getenv("ASKPANEL_TIMEOUT")); timeout != "" {
		c.LLM.Timeout = timeout
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GetLLMTimeout returns the per-call timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.Model) == "" {
		return fmt.Errorf("llm.model must not be empty")
	}
	if c.LLM.Timeout != "" {
		if _, err := time.ParseDuration(c.LLM.Timeout); err != nil {
			return fmt.Errorf("invalid llm.timeout %q: %w", c.LLM.Timeout, err)
		}
	}
	if err := c.Panel.validate(); err != nil {
		return err
	}
	for i, p := range c.Panel.Personas {
		if c.CredentialFor(i) == "" {
			return fmt.Errorf("no API key for persona %q (set panel.personas[%d].api_key, llm.api_keys, llm.api_key, GEMINI_API_KEYS or GEMINI_API_KEY)", p.Name, i)
		}
	}
	return nil
}
