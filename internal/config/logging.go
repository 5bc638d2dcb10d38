package config

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`                // debug, info, warn, error
	Format     string          `yaml:"format"`               // json, text
	Dir        string          `yaml:"dir"`                  // per-category log files
	DebugMode  bool            `yaml:"debug_mode"`           // Master toggle - false = no logging (production)
	Categories map[string]bool `yaml:"categories,omitempty"` // Per-category toggles
}

// JSONFormat reports whether log lines are written as JSON.
func (c *LoggingConfig) JSONFormat() bool {
	return c.Format == "json"
}
