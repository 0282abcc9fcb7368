package util

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

// Decode reads the JSON document at path into generic values: objects become
// map[string]any, arrays []any and numbers float64.
// Malformed content is reported as ErrMalformedJSON.
func Decode(fsys afero.Fs, path string) (any, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w in %s: %w", ErrMalformedJSON, path, err)
	}
	return v, nil
}

// DecodeObject is Decode for documents whose top level must be an object.
func DecodeObject(fsys afero.Fs, path string) (map[string]any, error) {
	v, err := Decode(fsys, path)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotObject, path)
	}
	return m, nil
}

// Encode serializes v to a compact JSON string. HTML characters are not escaped.
func Encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeJSON, err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// WriteJSONFile writes any value as JSON to the specified file path.
// It creates or truncates the file and encodes the value using the standard JSON encoder.
func WriteJSONFile(fsys afero.Fs, path string, v any) error {
	f, err := fsys.Create(path)
	if err != nil {
		return err
	}
	je := json.NewEncoder(f)
	je.SetIndent("", "  ")
	err = je.Encode(v)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
