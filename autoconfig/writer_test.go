package autoconfig

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glamus/glamus-utils/lock"
	"github.com/glamus/glamus-utils/util"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFields() Fields {
	return Fields{
		ElectionPath:         "bund2021",
		ServerResultFile:     "results/server_1.json",
		ModuleDefinitionPath: "modules/wom.json",
		ServerID:             "srv-1",
		BaseURL:              "https://example.org/wahl",
		ServerTitle:          "Wahl-O-Mat",
		Platform:             "WINDOWS",
		PlatformVersion:      "latest",
		BrowserName:          "chrome",
		BrowserVersion:       "91",
		PartyID:              7,
		PartyName:            "Die Partei",
		TestStatements:       true,
		DevelopmentMode:      false,
	}
}

const sampleDocument = `{"electionPath":"bund2021","serverResultFile":"results/server_1.json",` +
	`"moduleDefinitionPath":"modules/wom.json","serverID":"srv-1","baseurl":"https://example.org/wahl",` +
	`"serverTitle":"Wahl-O-Mat","platform":"WINDOWS","platformVersion":"latest","browserName":"chrome",` +
	`"browserVersion":"91","partyID":"7","partyName":"Die Partei","testStatements":"true",` +
	`"developmentMode":"false"}`

func TestRender(t *testing.T) {
	doc, err := Render(sampleFields())
	require.NoError(t, err)
	assert.Equal(t, sampleDocument, doc)
}

func TestRenderNested(t *testing.T) {
	f := sampleFields()
	f.CookieQuestion = map[string]any{"button": "#accept", "iframe": false}
	f.Banner2 = map[string]any{"selectors": []any{"div.a", "div.b"}}
	f.Iframe = map[string]any{}

	doc, err := Render(f)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(doc,
		`"developmentMode":"false","cookieQuestion":{"button":"#accept","iframe":false},`+
			`"banner2":{"selectors":["div.a","div.b"]}}`), doc)
	assert.NotContains(t, doc, `"iframe":{`)
	assert.NotContains(t, doc, `"banner":`)

	// the result is a valid document
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/c.json", []byte(doc), 0o644))
	m, err := util.DecodeObject(fsys, "/c.json")
	require.NoError(t, err)
	assert.Equal(t, "7", m["partyID"])
	assert.Equal(t, "true", m["testStatements"])
	assert.Equal(t, map[string]any{"selectors": []any{"div.a", "div.b"}}, m["banner2"])
}

func TestRenderNestedLists(t *testing.T) {
	tests := []struct {
		name   string
		banner any
		suffix string
	}{
		{"list embedded", []any{"div.a", 2.0}, `"developmentMode":"false","banner":["div.a",2]}`},
		{"empty list omitted", []any{}, `"developmentMode":"false"}`},
		{"nil omitted", nil, `"developmentMode":"false"}`},
		{"empty typed map omitted", map[string]string{}, `"developmentMode":"false"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := sampleFields()
			f.Banner = tt.banner
			doc, err := Render(f)
			require.NoError(t, err)
			if !strings.HasSuffix(doc, tt.suffix) {
				t.Errorf("Render() = %s, expected suffix %s", doc, tt.suffix)
			}
		})
	}
}

func TestRenderEscapesStrings(t *testing.T) {
	f := sampleFields()
	f.ServerTitle = `Wahl "2021"`

	doc, err := Render(f)
	require.NoError(t, err)
	assert.Contains(t, doc, `"serverTitle":"Wahl \"2021\""`)
}

func TestRenderNestedFailure(t *testing.T) {
	f := sampleFields()
	f.Banner = map[string]any{"bad": func() {}}

	_, err := Render(f)
	assert.True(t, errors.Is(err, util.ErrEncodeJSON))
}

func TestWrite(t *testing.T) {
	fsys := afero.NewMemMapFs()
	w := NewWriter(fsys, "/project")

	require.NoError(t, w.Write(sampleFields()))

	data, err := afero.ReadFile(fsys, "/project/"+ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, sampleDocument, string(data))

	// the writer does not release the flag on success
	flag, err := afero.ReadFile(fsys, "/project/"+LockPath)
	require.NoError(t, err)
	assert.Equal(t, "locked", string(flag))

	locked, err := w.Locked()
	require.NoError(t, err)
	assert.True(t, locked)

	m, err := Read(fsys, "/project")
	require.NoError(t, err)
	assert.Equal(t, "srv-1", m["serverID"])
}

func TestWriteReplacesDocument(t *testing.T) {
	fsys := afero.NewMemMapFs()
	flag := lock.NewMemFlag()
	w := NewWriter(fsys, "/project", WithFlag(flag))

	first := sampleFields()
	first.CookieQuestion = map[string]any{"button": "#ok"}
	require.NoError(t, w.Write(first))
	require.NoError(t, w.Unlock())
	require.NoError(t, w.Write(sampleFields()))

	m, err := Read(fsys, "/project")
	require.NoError(t, err)
	_, ok := m["cookieQuestion"]
	assert.False(t, ok, "document must be replaced, not merged")
}

func TestSecondWriterForcesStaleFlag(t *testing.T) {
	fsys := afero.NewMemMapFs()
	var slept time.Duration
	opts := lock.Options{Sleep: func(d time.Duration) { slept += d }}

	a := NewWriter(fsys, "/project", WithLockOptions(opts))
	b := NewWriter(fsys, "/project", WithLockOptions(opts))

	require.NoError(t, a.Write(sampleFields()))
	assert.Zero(t, slept)

	second := sampleFields()
	second.PartyID = 8
	require.NoError(t, b.Write(second))

	// 101 waits plus the one after the forced release
	assert.Equal(t, 102*lock.DefaultDelay, slept)

	m, err := Read(fsys, "/project")
	require.NoError(t, err)
	assert.Equal(t, "8", m["partyID"])
}

func TestWriteFailureIsNotReturned(t *testing.T) {
	base := afero.NewMemMapFs()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	w := NewWriter(afero.NewReadOnlyFs(base), "/project",
		WithFlag(lock.NewMemFlag()), WithLogger(logger))

	assert.NoError(t, w.Write(sampleFields()))
	assert.False(t, util.Exists(base, "/project/"+ConfigPath))
	assert.Contains(t, logs.String(), "writing config failed")
}

func TestServerResultFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	w := NewWriter(fsys, "/project", WithFlag(lock.NewMemFlag()))

	a := ServerResultFile("/project/results", "server_")
	b := ServerResultFile("/project/results", "server_")
	assert.NotEqual(t, a, b)
	assert.Equal(t, "/project/results", filepath.Dir(a))
	assert.True(t, strings.HasPrefix(filepath.Base(a), "server_"))
	assert.Equal(t, ".json", util.FileExtension(a))

	for _, p := range []string{a, b, "/project/results/other.json"} {
		require.NoError(t, afero.WriteFile(fsys, p, []byte("{}"), 0o644))
	}
	assert.Equal(t, 2, w.CleanServerResults("/project/results", "server_"))
	assert.True(t, util.Exists(fsys, "/project/results/other.json"))
}

func TestCleanServerResultsStaysInsideDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	w := NewWriter(fsys, "/project", WithFlag(lock.NewMemFlag()))

	for _, p := range []string{
		"/project/results/serverResult_a.json",
		"/project/results.bak",
		"/project/results_notes.txt",
	} {
		require.NoError(t, afero.WriteFile(fsys, p, []byte("{}"), 0o644))
	}

	// an empty prefix matches every file in the directory and nothing beside it
	assert.Equal(t, 1, w.CleanServerResults("/project/results", ""))
	assert.False(t, util.Exists(fsys, "/project/results/serverResult_a.json"))
	assert.True(t, util.Exists(fsys, "/project/results.bak"))
	assert.True(t, util.Exists(fsys, "/project/results_notes.txt"))

	require.NoError(t, afero.WriteFile(fsys, "/project/results/serverResult_b.json", []byte("{}"), 0o644))
	assert.Equal(t, 1, w.CleanServerResults("/project/results/", "serverResult_"))
	assert.True(t, util.Exists(fsys, "/project/results.bak"))
}
