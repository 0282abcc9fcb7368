package util

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	in := map[string]any{
		"button":    "#accept-cookies",
		"enabled":   true,
		"delay":     1.5,
		"nothing":   nil,
		"selectors": []any{"iframe#cmp", "div.banner", []any{"nested", 2.0}},
		"position":  map[string]any{"x": 10.0, "y": 20.0},
	}

	s, err := Encode(in)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, "/doc.json", []byte(s), 0o644))

	out, err := Decode(fsys, "/doc.json")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncodeKeepsHTML(t *testing.T) {
	s, err := Encode(map[string]any{"url": "https://example.org/?a=1&b=<2>"})
	require.NoError(t, err)
	assert.Equal(t, `{"url":"https://example.org/?a=1&b=<2>"}`, s)
}

func TestEncodeFailure(t *testing.T) {
	_, err := Encode(map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEncodeJSON))
}

func TestDecodeMalformed(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/bad.json", []byte(`{"electionPath": "bund",`), 0o644))

	v, err := Decode(fsys, "/bad.json")
	assert.Nil(t, v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedJSON))
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := Decode(afero.NewMemMapFs(), "/missing.json")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedJSON))
}

func TestDecodeObject(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/obj.json", []byte(`{"a":"1"}`), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/arr.json", []byte(`["a"]`), 0o644))

	m, err := DecodeObject(fsys, "/obj.json")
	require.NoError(t, err)
	assert.Equal(t, "1", m["a"])

	_, err = DecodeObject(fsys, "/arr.json")
	assert.True(t, errors.Is(err, ErrNotObject))
}

func TestWriteJSONFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, WriteJSONFile(fsys, "/out.json", map[string]any{"k": []any{"v"}}))

	m, err := DecodeObject(fsys, "/out.json")
	require.NoError(t, err)
	assert.Equal(t, []any{"v"}, m["k"])
}
