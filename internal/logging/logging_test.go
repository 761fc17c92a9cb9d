package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useLogFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs", "picker.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func TestConfigureCreatesDirectory(t *testing.T) {
	path := useLogFile(t)
	assert.Equal(t, path, Path())
	_, err := os.Stat(filepath.Dir(path))
	assert.NoError(t, err)

	Configure("  ")
	assert.Equal(t, defaultLogFile, Path())
}

func TestTraceWritesOnlyWhenEnabled(t *testing.T) {
	path := useLogFile(t)

	Trace("ignored", nil)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	SetTraceEnabled(true)
	Trace("picker.test", map[string]int{"n": 1})
	Trace("picker.test", map[string]int{"n": 2})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	var entries []traceEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry traceEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.Len(t, entries, 2)
	assert.Equal(t, "picker.test", entries[0].Event)
	assert.NotEmpty(t, entries[0].Session)
	assert.Equal(t, entries[0].Session, entries[1].Session)
}

func TestErrorAppendsLine(t *testing.T) {
	path := useLogFile(t)
	Error(nil)
	Error(errors.New("catalog vanished"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "catalog vanished")
}
