package analysis

import "strings"

// Normalize collapses runs of whitespace (including line breaks) into single
// spaces and trims the ends. It never changes letter case; detectors fold
// case internally. Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// wordCount returns the number of whitespace-separated words in text.
// Shared by the scorer and the suggestion rules so both agree on length.
func wordCount(text string) int {
	return len(strings.Fields(text))
}
