package util

import "testing"

func TestRemoveRoundBrackets(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Partei (Kurzname)", "Partei Kurzname"},
		{"((a))b()", "ab"},
		{"none", "none"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := RemoveRoundBrackets(tt.in); got != tt.want {
			t.Errorf("RemoveRoundBrackets(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name             string
		haystack, needle string
		expected         bool
	}{
		{"match", "chrome latest", "latest", true},
		{"no match", "firefox", "chrome", false},
		{"empty needle", "firefox", "", false},
		{"empty haystack", "", "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.haystack, tt.needle); got != tt.expected {
				t.Errorf("Contains(%q, %q) = %v, expected %v", tt.haystack, tt.needle, got, tt.expected)
			}
		})
	}
}
