package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"askpanel/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// personaServer answers each prompt with the persona name that opens it.
func personaServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("key") == "bad-key" {
			http.Error(w, "denied", http.StatusForbidden)
			return
		}
		prompt := req.Contents[0].Parts[0].Text
		name := strings.Fields(prompt)[0]
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{"content": "answer from " + name},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// writeConfig saves a config pointing at baseURL and returns its path.
func writeConfig(t *testing.T, baseURL string, mutate func(*config.Config)) string {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.LLM.BaseURL = baseURL
	cfg.LLM.APIKey = "test-key-1234567890"
	cfg.Display.Raw = true
	if mutate != nil {
		mutate(cfg)
	}
	path := filepath.Join(t.TempDir(), "askpanel.yaml")
	require.NoError(t, cfg.Save(path))
	return path
}

// execute runs the root command with fresh global flag state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, name := range []string{"GEMINI_API_KEY", "GEMINI_API_KEYS", "ASKPANEL_MODEL", "ASKPANEL_BASE_URL", "ASKPANEL_TIMEOUT"} {
		t.Setenv(name, "")
	}

	verbose, rawOutput, summaryOnly, streamLines, forceInit = false, false, false, false, false
	timeout, limit = 0, 0
	respondKey = ""
	logger = zap.NewNop()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--env-file", ""))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAsk_StreamPrintsEveryPersona(t *testing.T) {
	srv := personaServer(t)
	path := writeConfig(t, srv.URL, nil)

	out, err := execute(t, "ask", "--config", path, "--stream", "Name", "the", "hall")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.ElementsMatch(t, []string{
		"Kenji: answer from Kenji",
		"Shinya: answer from Shinya",
		"Takashi: answer from Takashi",
	}, lines)
}

func TestAsk_RenderedInPersonaOrder(t *testing.T) {
	srv := personaServer(t)
	path := writeConfig(t, srv.URL, nil)

	out, err := execute(t, "ask", "--config", path, "Name the hall")
	require.NoError(t, err)

	k := strings.Index(out, "answer from Kenji")
	s := strings.Index(out, "answer from Shinya")
	tk := strings.Index(out, "answer from Takashi")
	require.True(t, k >= 0 && s >= 0 && tk >= 0, out)
	assert.Less(t, k, s)
	assert.Less(t, s, tk)
}

func TestAsk_SummaryClipsAnswers(t *testing.T) {
	srv := personaServer(t)
	path := writeConfig(t, srv.URL, nil)

	out, err := execute(t, "ask", "--config", path, "--summary", "--limit", "8", "Name the hall")
	require.NoError(t, err)

	assert.Contains(t, out, "answer f…")
	assert.NotContains(t, out, "answer from")
}

func TestAsk_FailedPersonaShowsErrorText(t *testing.T) {
	srv := personaServer(t)
	path := writeConfig(t, srv.URL, func(c *config.Config) {
		c.Panel.Personas[1].APIKey = "bad-key"
	})

	out, err := execute(t, "ask", "--config", path, "--stream", "Name the hall")
	require.NoError(t, err)

	assert.Contains(t, out, "Kenji: answer from Kenji")
	assert.Contains(t, out, "Shinya: Error: 403 -> denied")
}

func TestAsk_MissingCredential(t *testing.T) {
	srv := personaServer(t)
	path := writeConfig(t, srv.URL, func(c *config.Config) {
		c.LLM.APIKey = ""
	})

	_, err := execute(t, "ask", "--config", path, "Name the hall")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API key")
}

func TestRespond_RawPrompt(t *testing.T) {
	srv := personaServer(t)
	path := writeConfig(t, srv.URL, nil)

	out, err := execute(t, "respond", "--config", path, "Hello there")
	require.NoError(t, err)
	assert.Equal(t, "answer from Hello\n", out)
}

func TestRespond_ErrorBecomesText(t *testing.T) {
	srv := personaServer(t)
	path := writeConfig(t, srv.URL, nil)

	out, err := execute(t, "respond", "--config", path, "--key", "bad-key", "Hello")
	require.NoError(t, err)
	assert.Contains(t, out, "Error: 403 -> denied")
}

func TestRespond_NoKey(t *testing.T) {
	path := writeConfig(t, "http://127.0.0.1:1", func(c *config.Config) {
		c.LLM.APIKey = ""
	})

	_, err := execute(t, "respond", "--config", path, "Hello")
	require.Error(t, err)
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "askpanel.yaml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Panel, loaded.Panel)

	_, err = execute(t, "config", "init", "--config", path)
	require.Error(t, err)

	_, err = execute(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestConfigShow_MasksKeys(t *testing.T) {
	path := writeConfig(t, "http://example.invalid", func(c *config.Config) {
		c.LLM.APIKeys = []string{"persona-key-abcdefghij"}
	})

	out, err := execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "test-key-1234567890")
	assert.NotContains(t, out, "persona-key-abcdefghij")
	assert.NotContains(t, out, "version:")

	var shown config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "test-key-1...", shown.LLM.APIKey)
	assert.Equal(t, []string{"persona-ke..."}, shown.LLM.APIKeys)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	path := writeConfig(t, "http://example.invalid", func(c *config.Config) {
		c.Display.Raw = false
	})

	_, err := execute(t, "config", "show", "--config", path)
	require.NoError(t, err)

	configPath = path
	rawOutput = true
	limit = 12
	timeout = 0
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Display.Raw)
	assert.Equal(t, 12, cfg.Display.Limit)
	assert.Equal(t, "60s", cfg.LLM.Timeout)
}
