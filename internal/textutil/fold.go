package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold trims value and applies Unicode case folding so titles can be compared
// without regard to case.
func Fold(value string) string {
	return cases.Fold().String(strings.TrimSpace(value))
}

// EqualFold reports whether a and b match after trimming and case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Lower lowercases value using root-locale rules.
func Lower(value string) string {
	return cases.Lower(language.Und).String(value)
}
