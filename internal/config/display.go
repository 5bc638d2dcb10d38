package config

// DisplayConfig configures terminal output.
type DisplayConfig struct {
	// Limit clips summary lines to this many characters.
	Limit int `yaml:"limit"`

	// Placeholder stands in for an empty answer in summaries.
	Placeholder string `yaml:"placeholder"`

	// Style is a glamour style name, or "auto".
	Style string `yaml:"style"`
	Width int    `yaml:"width"`
	Raw   bool   `yaml:"raw"`
}
