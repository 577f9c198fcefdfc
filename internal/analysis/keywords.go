package analysis

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"resumelens/internal/types"
)

// minTokenLength filters connective noise (a, an, of, to) out of both
// token streams before matching.
const minTokenLength = 2

// MatchKeywords computes a deterministic word-overlap score between a
// resume and a job description: the fraction of job-description tokens
// (duplicates counted) found in the resume's token set, as a rounded
// percent clamped to [0,100]. Empty input on either side short-circuits to
// a zero score with an explanatory detail.
func MatchKeywords(resumeText, jobText string) types.JobMatch {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return types.JobMatch{Score: 0, Details: "Missing resume or job description"}
	}

	resumeWords := make(map[string]struct{})
	for _, w := range tokenize(resumeText) {
		resumeWords[w] = struct{}{}
	}

	jobWords := tokenize(jobText)
	if len(jobWords) == 0 {
		return types.JobMatch{Score: 0, Details: "Job description contains no usable keywords"}
	}

	matched := 0
	for _, w := range jobWords {
		if _, ok := resumeWords[w]; ok {
			matched++
		}
	}

	score := int(math.Round(float64(matched) / float64(len(jobWords)) * 100))

	return types.JobMatch{
		Score:   clamp(score, 0, 100),
		Details: fmt.Sprintf("Keyword match: %d/%d words matched", matched, len(jobWords)),
	}
}

// tokenize splits text on non-word-character boundaries, case-folds, and
// drops tokens of length <= minTokenLength.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > minTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
