package panel

import (
	"fmt"
	"strings"
	"text/template"

	"askpanel/internal/config"
)

// Prompter renders the per-persona prompt.
type Prompter struct {
	tmpl *template.Template
}

type promptData struct {
	Name     string
	Question string
}

// NewPrompter parses a text/template using .Name and .Question. An empty
// template selects config.DefaultPromptTemplate.
func NewPrompter(text string) (*Prompter, error) {
	if strings.TrimSpace(text) == "" {
		text = config.DefaultPromptTemplate
	}
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid prompt template: %w", err)
	}
	return &Prompter{tmpl: tmpl}, nil
}

// Build renders the prompt for one persona.
func (p *Prompter) Build(name, question string) (string, error) {
	var sb strings.Builder
	if err := p.tmpl.Execute(&sb, promptData{Name: name, Question: question}); err != nil {
		return "", fmt.Errorf("failed to render prompt for %s: %w", name, err)
	}
	return sb.String(), nil
}

var defaultPrompter = func() *Prompter {
	p, err := NewPrompter(config.DefaultPromptTemplate)
	if err != nil {
		panic(err)
	}
	return p
}()

// MakePrompt renders the default prompt.
func MakePrompt(name, question string) string {
	out, err := defaultPrompter.Build(name, question)
	if err != nil {
		return question
	}
	return out
}
