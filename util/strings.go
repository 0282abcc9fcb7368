package util

import "strings"

// RemoveRoundBrackets strips every "(" and ")" from s.
func RemoveRoundBrackets(s string) string {
	return strings.NewReplacer("(", "", ")", "").Replace(s)
}

// Contains reports whether needle occurs in haystack. An empty needle never matches.
func Contains(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}
