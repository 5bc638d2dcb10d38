// Package responder turns a free-form prompt into a display-ready answer by
// calling a generateContent endpoint and normalizing its reply.
//
// Every failure is recovered at this boundary: Respond always returns a
// string, and Answer exposes the same outcome as a structured *Error.
package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"askpanel/internal/logging"
)

// Config holds configuration for the responder client.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration

	// JoinParts lets a wrapped content object without a "value" key fall
	// back to its joined parts text.
	JoinParts bool

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash-001"
	DefaultTimeout = 60 * time.Second
)

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Model:   DefaultModel,
		Timeout: DefaultTimeout,
	}
}

// Client sends prompts to one model. It is safe for concurrent use.
type Client struct {
	baseURL    string
	model      string
	timeout    time.Duration
	joinParts  bool
	httpClient *http.Client
}

// New creates a client, filling zero fields of cfg from DefaultConfig.
func New(cfg Config) *Client {
	def := DefaultConfig()

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = def.BaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = def.Model
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = def.Timeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		model:      model,
		timeout:    timeout,
		joinParts:  cfg.JoinParts,
		httpClient: httpClient,
	}
}

// Model returns the model identifier used in the endpoint path.
func (c *Client) Model() string {
	return c.model
}

// Respond returns the answer for prompt, or a descriptive error text.
// It never returns an error and never panics on well-formed input.
func (c *Client) Respond(ctx context.Context, prompt, credential string) string {
	text, err := c.Answer(ctx, prompt, credential)
	if err != nil {
		return Render(err)
	}
	return text
}

// Answer is Respond with the failure kept structured. A non-nil error is
// always a *Error.
func (c *Client) Answer(ctx context.Context, prompt, credential string) (string, error) {
	// Apply the client timeout if the caller set no deadline.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	timer := logging.StartTimer(logging.CategoryResponder, "answer")
	defer timer.Stop()

	body, err := c.post(ctx, prompt, credential)
	if err != nil {
		logging.ResponderWarn("call failed: %s", err.Kind)
		return "", err
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", &Error{Kind: KindParse, Err: err}
	}

	if len(env.Candidates) == 0 {
		return "", &Error{Kind: KindEmptyCandidates}
	}

	content := env.Candidates[0].Content
	text := strings.TrimSpace(content.Resolve(c.joinParts))
	if text == "" {
		logging.ResponderDebug("empty content: kind=%s has_value=%v parts_len=%d",
			content.Kind, content.HasValue, len(content.Parts))
		return "", &Error{Kind: KindEmptyContent}
	}

	cleaned := RemoveArtifacts(text)
	if len(cleaned) != len(text) {
		logging.ResponderDebug("removed %d bytes of artifacts", len(text)-len(cleaned))
	}
	logging.Responder("answer ready: model=%s kind=%s len=%d", c.model, content.Kind, len(cleaned))
	return cleaned, nil
}

// post performs the HTTP exchange and returns the body of a 200 reply.
func (c *Client) post(ctx context.Context, prompt, credential string) ([]byte, *Error) {
	payload, err := json.Marshal(newGenerateRequest(prompt))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	endpoint := c.endpoint(credential)
	logging.APIDebug("POST model=%s key=%s prompt_len=%d", c.model, MaskCredential(credential), len(prompt))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("failed to create request: %w", redact(err, credential))}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.APIError("request failed: %v", redact(err, credential))
		return nil, &Error{Kind: KindTransport, Err: redact(err, credential)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	logging.APIDebug("status=%d body_len=%d", resp.StatusCode, len(body))

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindHTTPStatus, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) endpoint(credential string) string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(credential))
}

// MaskCredential keeps the first 10 characters of a key for logs.
func MaskCredential(credential string) string {
	runes := []rune(credential)
	if len(runes) <= 10 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:10]) + "..."
}

// redact strips the credential from transport errors, which quote the URL.
func redact(err error, credential string) error {
	if err == nil || credential == "" {
		return err
	}
	msg := err.Error()
	escaped := url.QueryEscape(credential)
	if !strings.Contains(msg, credential) && !strings.Contains(msg, escaped) {
		return err
	}
	msg = strings.ReplaceAll(msg, escaped, MaskCredential(credential))
	msg = strings.ReplaceAll(msg, credential, MaskCredential(credential))
	return redactedError{msg: msg, cause: err}
}

type redactedError struct {
	msg   string
	cause error
}

func (e redactedError) Error() string { return e.msg }
func (e redactedError) Unwrap() error { return e.cause }
