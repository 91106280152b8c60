// Package utils provides common string utility functions.
package utils

import "strings"

// shortNameMax is the display budget for chart and table labels.
const shortNameMax = 12

// ShortName truncates a label to 12 runes with an ellipsis, for compact
// chart labels.
func ShortName(s string) string {
	runes := []rune(s)
	if len(runes) <= shortNameMax {
		return s
	}

	return string(runes[:shortNameMax]) + "…"
}

// TrimWhitespace removes leading and trailing whitespace.
func TrimWhitespace(str string) string {
	return strings.TrimSpace(str)
}

// NormalizeWhitespace replaces multiple whitespace with single space.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}
