package version

import (
	"bytes"
	"strings"
	"testing"
)

func TestGetVersionPrefersLdflags(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "v1.2.0"
	if got := GetVersion(); got != "v1.2.0" {
		t.Errorf("GetVersion() = %q, expected %q", got, "v1.2.0")
	}
}

func TestGetFullVersion(t *testing.T) {
	origV, origC, origD := Version, Commit, Date
	defer func() { Version, Commit, Date = origV, origC, origD }()

	tests := []struct {
		name     string
		commit   string
		date     string
		expected string
	}{
		{"commit and date", "0123456789abcdef", "2021-07-02", "v1.0.0 (0123456, built 2021-07-02)"},
		{"commit only", "0123456789abcdef", "", "v1.0.0 (0123456)"},
		{"short commit", "abc", "2021-07-02", "v1.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = "v1.0.0", tt.commit, tt.date
			if tt.date == "" {
				Date = "unknown"
			}
			// build info may still supply a date when Date is unknown
			got := GetFullVersion()
			if tt.date == "" {
				if !strings.HasPrefix(got, "v1.0.0 (0123456") {
					t.Errorf("GetFullVersion() = %q", got)
				}
				return
			}
			if got != tt.expected {
				t.Errorf("GetFullVersion() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf, "glutils")
	out := buf.String()
	for _, want := range []string{"glutils version ", "Package: glamus-utils", "Commit: ", "Build Date: "} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintVersion output %q missing %q", out, want)
		}
	}
}
