package logx

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "json")
	SetLevel(LevelWarn)
	t.Cleanup(func() { SetLevel(LevelInfo) })

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "shown 2", entry["message"])
	assert.Equal(t, "WARN", entry["level"])
}

func TestConfigureRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Configure(Options{Level: "loud"}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("  abc ", 5))
	assert.Equal(t, "ab...", Truncate("abcdef", 2))
	assert.Equal(t, "", Truncate("abc", 0))
}
