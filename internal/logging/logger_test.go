package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCategoryLog(t *testing.T, dir string, cat Category) string {
	t.Helper()
	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(dir, date+"_"+string(cat)+".log"))
	require.NoError(t, err)
	return string(data)
}

func TestInitialize_RequiresDir(t *testing.T) {
	err := Initialize("", Options{DebugMode: true})
	assert.Error(t, err)
}

func TestProductionModeWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(dir, Options{DebugMode: false}))
	t.Cleanup(CloseAll)

	assert.False(t, IsDebugMode())
	assert.False(t, IsCategoryEnabled(CategoryResponder))

	Responder("should not be written")

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "logs dir must not be created in production mode")
}

func TestAllCategoriesLog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{DebugMode: true, Level: "debug"}))
	t.Cleanup(CloseAll)

	categories := []Category{
		CategoryBoot,
		CategoryAPI,
		CategoryResponder,
		CategoryFanout,
		CategoryPanel,
		CategoryDisplay,
	}
	for _, cat := range categories {
		require.True(t, IsCategoryEnabled(cat), "category %s", cat)
		l := Get(cat)
		l.Info("info for %s", cat)
		l.Debug("debug for %s", cat)
		l.Warn("warn for %s", cat)
		l.Error("error for %s", cat)
	}
	CloseAll()

	for _, cat := range categories {
		content := readCategoryLog(t, dir, cat)
		assert.Contains(t, content, "[INFO] info for "+string(cat))
		assert.Contains(t, content, "[DEBUG] debug for "+string(cat))
		assert.Contains(t, content, "[WARN] warn for "+string(cat))
		assert.Contains(t, content, "[ERROR] error for "+string(cat))
	}
}

func TestCategoryFilter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{
		DebugMode:  true,
		Categories: map[string]bool{"api": false},
	}))
	t.Cleanup(CloseAll)

	assert.False(t, IsCategoryEnabled(CategoryAPI))
	assert.True(t, IsCategoryEnabled(CategoryPanel), "unlisted categories default to enabled")

	API("dropped")
	_, err := os.Stat(filepath.Join(dir, time.Now().Format("2006-01-02")+"_api.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{DebugMode: true, Level: "warn"}))
	t.Cleanup(CloseAll)

	PanelDebug("hidden debug")
	Panel("hidden info")
	Get(CategoryPanel).Warn("visible warn")
	CloseAll()

	content := readCategoryLog(t, dir, CategoryPanel)
	assert.NotContains(t, content, "hidden")
	assert.Contains(t, content, "visible warn")
}

func TestRequestLogger_JSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{DebugMode: true, Level: "info", JSONFormat: true}))
	t.Cleanup(CloseAll)

	WithRequestID(CategoryFanout, "req-42").WithField("label", "kenji").Info("task done")
	CloseAll()

	content := readCategoryLog(t, dir, CategoryFanout)
	var found bool
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		idx := strings.Index(line, "{")
		if idx < 0 {
			continue
		}
		var entry StructuredLogEntry
		if err := json.Unmarshal([]byte(line[idx:]), &entry); err != nil {
			continue
		}
		if entry.Message == "task done" {
			found = true
			assert.Equal(t, "req-42", entry.RequestID)
			assert.Equal(t, "fanout", entry.Category)
			assert.Equal(t, "kenji", entry.Fields["label"])
		}
	}
	assert.True(t, found, "structured entry not found in %q", content)
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	parent := WithRequestID(CategoryFanout, "r1").WithField("a", 1)
	child := parent.WithField("b", 2)

	assert.Len(t, parent.fields, 1)
	assert.Len(t, child.fields, 2)
}

func TestTimer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Options{DebugMode: true, Level: "debug"}))
	t.Cleanup(CloseAll)

	timer := StartTimer(CategoryResponder, "respond")
	elapsed := timer.StopWithThreshold(time.Hour)
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	CloseAll()

	assert.Contains(t, readCategoryLog(t, dir, CategoryResponder), "respond completed in")
}
