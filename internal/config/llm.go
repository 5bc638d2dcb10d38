package config

// LLMConfig configures the generateContent endpoint.
// APIKey is shared by every persona without a key of its own; APIKeys
// pairs with personas by position.
type LLMConfig struct {
	APIKey    string   `yaml:"api_key"`
	APIKeys   []string `yaml:"api_keys,omitempty"`
	Model     string   `yaml:"model"`
	BaseURL   string   `yaml:"base_url"`
	Timeout   string   `yaml:"timeout"`
	JoinParts bool     `yaml:"join_parts"`
}

// CredentialFor returns the key for persona i: its own key, then
// llm.api_keys[i], then llm.api_key.
func (c *Config) CredentialFor(i int) string {
	if i >= 0 && i < len(c.Panel.Personas) && c.Panel.Personas[i].APIKey != "" {
		return c.Panel.Personas[i].APIKey
	}
	if i >= 0 && i < len(c.LLM.APIKeys) && c.LLM.APIKeys[i] != "" {
		return c.LLM.APIKeys[i]
	}
	return c.LLM.APIKey
}
