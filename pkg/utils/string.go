// Package utils provides common utility functions.
package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CollapseWhitespace trims s and replaces every run of whitespace with a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold returns the comparison form of s: whitespace collapsed, lowercased and
// stripped of combining marks, so "  Galle   International " and
// "galle international" fold to the same key.
func Fold(s string) string {
	folded, _, err := transform.String(stripMarks, strings.ToLower(CollapseWhitespace(s)))
	if err != nil {
		return strings.ToLower(CollapseWhitespace(s))
	}

	return folded
}

// EqualFold reports whether a and b are equal under Fold.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// TruncateString truncates str to maxLength runes, appending "..." when cut.
func TruncateString(str string, maxLength int) string {
	runes := []rune(str)
	if len(runes) <= maxLength {
		return str
	}

	return string(runes[:maxLength]) + "..."
}
