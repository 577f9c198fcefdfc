package analysis

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "collapses runs of spaces",
			input:    "John    Doe   Engineer",
			expected: "John Doe Engineer",
		},
		{
			name:     "strips line breaks and tabs",
			input:    "John Doe\nSoftware\tEngineer\r\nPython",
			expected: "John Doe Software Engineer Python",
		},
		{
			name:     "trims leading and trailing whitespace",
			input:    "   John Doe   ",
			expected: "John Doe",
		},
		{
			name:     "preserves case",
			input:    "John DOE",
			expected: "John DOE",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    " \n\t ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"John    Doe\n\nEngineer",
		"  spaced   out  ",
		"already normalized",
		"",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func BenchmarkNormalize(b *testing.B) {
	input := "John  Doe\nSenior   Software Engineer\twith 10 years  of experience"
	for b.Loop() {
		Normalize(input)
	}
}
