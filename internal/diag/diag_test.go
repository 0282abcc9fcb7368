package diag

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/glamus/glamus-utils/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLevels(t *testing.T) {
	var out bytes.Buffer
	l, err := New(settings.LogSettings{}, &out)
	require.NoError(t, err)
	defer l.Close()

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("forced release", "attempts", 101)

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `level=WARN msg="forced release" attempts=101`)
	assert.NotContains(t, out.String(), "time=")
}

func TestDebugConsole(t *testing.T) {
	var out bytes.Buffer
	l, err := New(settings.LogSettings{Debug: true}, &out)
	require.NoError(t, err)

	l.Debug("checking flag")
	assert.Contains(t, out.String(), "checking flag")
}

func TestFileLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "glutils.log")
	var out bytes.Buffer
	l, err := New(settings.LogSettings{File: path, MaxSize: 1, MaxBackups: 1, MaxAge: 1}, &out)
	require.NoError(t, err)

	l.Info("config written", "path", "tests/x.json")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `msg="config written" path=tests/x.json`)
	assert.Regexp(t, `time="\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}"`, string(data))
	assert.Empty(t, out.String(), "info stays out of the console")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	assert.NoError(t, l.Close())
}
