package analysis

import (
	"strings"
	"testing"
)

func TestMatchKeywords(t *testing.T) {
	tests := []struct {
		name       string
		resume     string
		job        string
		score      int
		details    string
		detailsSub string
	}{
		{
			name:    "full overlap",
			resume:  "python java node",
			job:     "python java",
			score:   100,
			details: "Keyword match: 2/2 words matched",
		},
		{
			name:    "partial overlap",
			resume:  "python developer",
			job:     "python rust developer golang",
			score:   50,
			details: "Keyword match: 2/4 words matched",
		},
		{
			name:   "no overlap",
			resume: "baker pastry chef",
			job:    "python rust",
			score:  0,
		},
		{
			name: "duplicates count in the denominator",
			// job tokens: python, python, rust -> 2/3 matched -> 67
			resume: "python",
			job:    "python python rust",
			score:  67,
		},
		{
			name:       "empty resume",
			resume:     "",
			job:        "python",
			score:      0,
			detailsSub: "Missing",
		},
		{
			name:       "empty job description",
			resume:     "python",
			job:        "",
			score:      0,
			detailsSub: "Missing",
		},
		{
			name:       "whitespace-only job description",
			resume:     "python",
			job:        "  \n ",
			score:      0,
			detailsSub: "Missing",
		},
		{
			name:       "job description of only short tokens",
			resume:     "python",
			job:        "a of to is",
			score:      0,
			detailsSub: "no usable keywords",
		},
		{
			name:   "case folded",
			resume: "PYTHON Java",
			job:    "python JAVA",
			score:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchKeywords(tt.resume, tt.job)

			if got.Score != tt.score {
				t.Errorf("Score = %d, want %d", got.Score, tt.score)
			}
			if tt.details != "" && got.Details != tt.details {
				t.Errorf("Details = %q, want %q", got.Details, tt.details)
			}
			if tt.detailsSub != "" && !strings.Contains(got.Details, tt.detailsSub) {
				t.Errorf("Details = %q, want substring %q", got.Details, tt.detailsSub)
			}
		})
	}
}

func TestMatchKeywordsBounded(t *testing.T) {
	resume := strings.Repeat("python ", 10000)
	job := strings.Repeat("python ", 10000)

	got := MatchKeywords(resume, job)
	if got.Score < 0 || got.Score > 100 {
		t.Errorf("Score = %d out of [0,100]", got.Score)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "splits on punctuation",
			input:    "Go, Python/Rust; C++",
			expected: []string{"python", "rust"},
		},
		{
			name:     "drops short tokens",
			input:    "a to be or not",
			expected: []string{"not"},
		},
		{
			name:     "keeps underscores and digits",
			input:    "ci_cd pipeline 2024",
			expected: []string{"ci_cd", "pipeline", "2024"},
		},
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}
