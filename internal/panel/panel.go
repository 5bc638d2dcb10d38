// Package panel asks one question to several personas at once and
// gathers their answers.
package panel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"askpanel/internal/config"
	"askpanel/internal/logging"
	"askpanel/internal/responder"
)

// ErrEmptyQuestion is returned when the question is blank.
var ErrEmptyQuestion = errors.New("question must not be empty")

// Runner runs tasks concurrently and streams their results.
type Runner interface {
	Stream(ctx context.Context, tasks []responder.Task) <-chan responder.Result
}

// Persona is one named answerer with its credential.
type Persona struct {
	Name       string
	Credential string
}

// Answer is one persona's reply.
type Answer struct {
	Persona   string
	Text      string
	Err       error
	RequestID string
	Duration  time.Duration
}

// Failed reports whether the answer is an error text.
func (a Answer) Failed() bool {
	return a.Err != nil || strings.HasPrefix(a.Text, responder.ErrorMarker)
}

// Line formats the answer as "name: text".
func (a Answer) Line() string {
	return fmt.Sprintf("%s: %s", a.Persona, a.Text)
}

// Panel is a fixed set of personas sharing one runner.
type Panel struct {
	runner   Runner
	personas []Persona
	prompter *Prompter
	order    map[string]int
}

// New creates a panel. Every persona needs a unique name and a credential.
func New(runner Runner, personas []Persona, prompter *Prompter) (*Panel, error) {
	if runner == nil {
		return nil, fmt.Errorf("panel requires a runner")
	}
	if len(personas) == 0 {
		return nil, fmt.Errorf("panel requires at least one persona")
	}
	if prompter == nil {
		prompter = defaultPrompter
	}

	order := make(map[string]int, len(personas))
	for i, p := range personas {
		if p.Name == "" {
			return nil, fmt.Errorf("persona %d has no name", i)
		}
		if _, dup := order[p.Name]; dup {
			return nil, fmt.Errorf("duplicate persona name %q", p.Name)
		}
		if p.Credential == "" {
			return nil, fmt.Errorf("no API key for persona %q", p.Name)
		}
		order[p.Name] = i
	}

	return &Panel{
		runner:   runner,
		personas: append([]Persona(nil), personas...),
		prompter: prompter,
		order:    order,
	}, nil
}

// FromConfig builds a panel from the configured personas and keys.
func FromConfig(cfg *config.Config, runner Runner) (*Panel, error) {
	prompter, err := NewPrompter(cfg.Panel.PromptTemplate)
	if err != nil {
		return nil, err
	}
	personas := make([]Persona, len(cfg.Panel.Personas))
	for i, p := range cfg.Panel.Personas {
		personas[i] = Persona{
			Name:       strings.TrimSpace(p.Name),
			Credential: cfg.CredentialFor(i),
		}
	}
	return New(runner, personas, prompter)
}

// Personas returns the panel members in configured order.
func (p *Panel) Personas() []Persona {
	return append([]Persona(nil), p.personas...)
}

// Ask sends question to every persona and returns the answers in persona
// order.
func (p *Panel) Ask(ctx context.Context, question string) ([]Answer, error) {
	return p.AskStream(ctx, question, nil)
}

// AskStream is Ask with onAnswer called for each answer as it arrives.
func (p *Panel) AskStream(ctx context.Context, question string, onAnswer func(Answer)) ([]Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	tasks := make([]responder.Task, len(p.personas))
	for i, persona := range p.personas {
		prompt, err := p.prompter.Build(persona.Name, question)
		if err != nil {
			return nil, err
		}
		tasks[i] = responder.Task{
			Label:      persona.Name,
			Prompt:     prompt,
			Credential: persona.Credential,
		}
	}

	logging.Panel("asking %d personas: question_len=%d", len(tasks), len(question))
	timer := logging.StartTimer(logging.CategoryPanel, "panel ask")

	answers := make([]Answer, 0, len(tasks))
	for r := range p.runner.Stream(ctx, tasks) {
		a := Answer{
			Persona:   r.Label,
			Text:      r.Text,
			Err:       r.Err,
			RequestID: r.RequestID,
			Duration:  r.Duration,
		}
		logging.PanelDebug("answer from %s after %v (failed=%v)", a.Persona, a.Duration, a.Failed())
		if onAnswer != nil {
			onAnswer(a)
		}
		answers = append(answers, a)
	}
	timer.Stop()

	sort.SliceStable(answers, func(i, j int) bool {
		return p.order[answers[i].Persona] < p.order[answers[j].Persona]
	})
	return answers, nil
}
