package discovery

import (
	"strings"
	"unicode"
)

// Predicate classifies a series description as included or not.
type Predicate interface {
	Matches(description string) bool
}

// Func adapts a plain function to a Predicate.
type Func func(string) bool

// Matches implements Predicate.
func (f Func) Matches(description string) bool { return f(description) }

// Substring matches descriptions containing the text, case-insensitively.
type Substring string

// Matches implements Predicate.
func (s Substring) Matches(description string) bool {
	return strings.Contains(strings.ToLower(description), strings.ToLower(string(s)))
}

// AllIndicators matches when the normalized description contains every
// indicator word, e.g. AllIndicators{"stress", "perf"} accepts both
// "Stress_Perfusion" and "stress perf AI".
type AllIndicators []string

// Matches implements Predicate.
func (a AllIndicators) Matches(description string) bool {
	norm := NormalizeDescription(description)
	for _, indicator := range a {
		if !strings.Contains(norm, strings.ToLower(indicator)) {
			return false
		}
	}
	return true
}

// NormalizeDescription lowercases a series description and collapses runs
// of underscores and whitespace into single spaces, so scanner naming
// variants like "Stress_Perf" and "stress  perf" compare equal.
func NormalizeDescription(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '_' || unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
