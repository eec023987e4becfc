package logs

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vugu/vgnav/internal/config"
)

func TestParseLevel(t *testing.T) {
	var tlist = []struct {
		in  string
		out slog.Level
	}{
		{"Debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}
	for _, ti := range tlist {
		assert.Equal(t, ti.out, ParseLevel(ti.in), ti.in)
	}
}

func TestNewStdout(t *testing.T) {

	var buf bytes.Buffer
	logger, closeFn, err := New(config.Logging{Level: "Info", Output: "stdout"}, &buf)
	require.NoError(t, err)
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("navigated", "path", "/api")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=navigated")
	assert.Contains(t, out, "path=/api")
}

func TestNewFile(t *testing.T) {

	p := filepath.Join(t.TempDir(), "nav.log")
	var buf bytes.Buffer
	logger, closeFn, err := New(config.Logging{Level: "Debug", Output: "file", File: p}, &buf)
	require.NoError(t, err)

	logger.Warn("no route for path", "path", "/missing")
	require.NoError(t, closeFn())

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"no route for path"`)
	assert.Contains(t, string(b), `"path":"/missing"`)
	assert.Contains(t, buf.String(), "path=/missing")
}
