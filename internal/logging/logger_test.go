package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestJSONRecordsCarryRunID(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(Config{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	_, err = uuid.Parse(l.RunID)
	require.NoError(t, err)

	l.Debug("solved", "cost", 500)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "solved", rec["msg"])
	require.Equal(t, l.RunID, rec["run_id"])
	require.Equal(t, 500.0, rec["cost"])
	require.Contains(t, rec, "timestamp")
	require.NoError(t, l.Close())
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(Config{Level: "warn"}, &buf)
	require.NoError(t, err)
	l.Info("hidden")
	require.Zero(t, buf.Len())
	l.Warn("shown")
	require.Contains(t, buf.String(), "msg=shown")
}

func TestUnknownFormat(t *testing.T) {
	_, err := newLogger(Config{Format: "xml"}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transport.log")
	l, err := New(Config{Level: "info", Format: "json", File: path, MaxSize: 1})
	require.NoError(t, err)
	l.Info("to file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"to file"`)
}
