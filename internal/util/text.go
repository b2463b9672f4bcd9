package util

import "strings"

// CollapseWhitespace trims the string and folds any run of whitespace
// (including newlines) into a single space.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
