package config

import (
	"fmt"
	"strings"
)

// DefaultPromptTemplate is a text/template with .Name and .Question.
const DefaultPromptTemplate = "{{.Name}} please answer the following question:\n" +
	"Question: {{.Question}}\n" +
	"Think freely. Do not output JSON or parts."

// PanelConfig lists the personas asked in parallel.
type PanelConfig struct {
	Personas       []PersonaConfig `yaml:"personas"`
	PromptTemplate string          `yaml:"prompt_template"`
}

// PersonaConfig is one named answerer.
type PersonaConfig struct {
	Name   string `yaml:"name"`
	APIKey string `yaml:"api_key,omitempty"`
}

func (p *PanelConfig) validate() error {
	if len(p.Personas) == 0 {
		return fmt.Errorf("panel.personas must list at least one persona")
	}
	seen := make(map[string]bool, len(p.Personas))
	for i, persona := range p.Personas {
		name := strings.TrimSpace(persona.Name)
		if name == "" {
			return fmt.Errorf("panel.personas[%d] has no name", i)
		}
		if seen[name] {
			return fmt.Errorf("duplicate persona name %q", name)
		}
		seen[name] = true
	}
	return nil
}
