package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := InitLogger("distribute", dir, false)
	require.NoError(t, err)

	logger.Debug("Solving pair")
	_ = logger.Sync()

	matches, err := filepath.Glob(filepath.Join(dir, "distribute_*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)

	line := strings.TrimSpace(string(data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "Solving pair", entry["msg"])
	assert.Contains(t, entry, "timestamp")
}

func TestInitLogger_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	_, err := InitLogger("test", dir, true)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
