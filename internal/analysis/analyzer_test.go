package analysis

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

const sampleResume = "John Doe, Software Engineer with 5 years of experience in JavaScript, React, Node.js, and Python. " +
	"Email: john@example.com, Phone: (555) 123-4567. Experience includes building web applications and APIs."

const sampleJob = "Looking for a Senior Software Engineer with experience in JavaScript, React, and Node.js. " +
	"Must have 3+ years of experience building web applications."

// fakeEnricher returns canned enrichment results, or errors on every call
// when fail is set.
type fakeEnricher struct {
	fail        bool
	match       types.JobMatch
	skills      types.SkillSet
	suggestions []types.Suggestion
}

func (f *fakeEnricher) MatchJobDescription(ctx context.Context, resumeText, jobDescription string) (types.JobMatch, error) {
	if f.fail {
		return types.JobMatch{}, fmt.Errorf("model unavailable")
	}
	return f.match, nil
}

func (f *fakeEnricher) ExtractSkills(ctx context.Context, text string) (types.SkillSet, error) {
	if f.fail {
		return nil, fmt.Errorf("model unavailable")
	}
	return f.skills, nil
}

func (f *fakeEnricher) GenerateSuggestions(ctx context.Context, resumeText, jobDescription string) ([]types.Suggestion, error) {
	if f.fail {
		return nil, fmt.Errorf("model unavailable")
	}
	return f.suggestions, nil
}

func strPtr(s string) *string { return &s }

func TestAnalyzeMissingResume(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	_, err := analyzer.Analyze(context.Background(), Request{ResumeText: nil})
	if err == nil {
		t.Fatal("expected error for missing resume text")
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("error code = %q, want %q", appErr.Code, errors.ErrCodeInvalidInput)
	}
	if appErr.Type != errors.ErrorTypeValidation {
		t.Errorf("error type = %q, want %q", appErr.Type, errors.ErrorTypeValidation)
	}
}

func TestAnalyzeEmptyResume(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	result, err := analyzer.Analyze(context.Background(), Request{ResumeText: strPtr("")})
	if err != nil {
		t.Fatalf("Analyze(\"\") returned error: %v", err)
	}

	if result.ATSScore != 0 {
		t.Errorf("ATSScore = %d, want 0", result.ATSScore)
	}

	var contactNegative, experienceNegative bool
	for _, item := range result.Feedback {
		if item.Kind != types.FeedbackNegative {
			continue
		}
		if strings.Contains(item.Message, "contact") {
			contactNegative = true
		}
		if strings.Contains(item.Message, "experience") {
			experienceNegative = true
		}
	}
	if !contactNegative {
		t.Error("expected negative feedback for missing contact information")
	}
	if !experienceNegative {
		t.Error("expected negative feedback for missing work experience")
	}

	if result.JobMatch.Details != noJobDescriptionDetails {
		t.Errorf("JobMatch.Details = %q, want %q", result.JobMatch.Details, noJobDescriptionDetails)
	}
	if result.JobMatchScore != 0 {
		t.Errorf("JobMatchScore = %d, want 0", result.JobMatchScore)
	}
	if result.Enrichment != types.SourceFallback {
		t.Errorf("Enrichment = %q, want %q", result.Enrichment, types.SourceFallback)
	}
	if len(result.Skills) != 0 {
		t.Errorf("Skills = %v, want empty", result.Skills)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	req := Request{ResumeText: strPtr(sampleResume), JobDescription: sampleJob}

	first, err := analyzer.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("first Analyze failed: %v", err)
	}
	second, err := analyzer.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("second Analyze failed: %v", err)
	}

	// The generation timestamp is the only field allowed to differ.
	first.AnalysisDate = second.AnalysisDate
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated analysis diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyzeBounded(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	inputs := []string{
		"",
		"!!!???...",
		strings.Repeat("experience skills summary education achieved 10% jane@example.com 555-123-4567 ", 2000),
		strings.Repeat("x", 120000),
	}

	for _, input := range inputs {
		result, err := analyzer.Analyze(context.Background(), Request{
			ResumeText:     strPtr(input),
			JobDescription: sampleJob,
		})
		if err != nil {
			t.Fatalf("Analyze failed for input of length %d: %v", len(input), err)
		}

		scores := map[string]int{
			"overallScore":         result.OverallScore,
			"atsScore":             result.ATSScore,
			"jobMatchScore":        result.JobMatchScore,
			"keywordOptimization":  result.Breakdown.KeywordOptimization,
			"structuralFormatting": result.Breakdown.StructuralFormatting,
			"contentQuality":       result.Breakdown.ContentQuality,
			"narrativeCoherence":   result.Breakdown.NarrativeCoherence,
			"additionalFactors":    result.Breakdown.AdditionalFactors,
		}
		for name, score := range scores {
			if score < 0 || score > 100 {
				t.Errorf("%s = %d out of [0,100] for input of length %d", name, score, len(input))
			}
		}
	}
}

func TestAnalyzeSecondaryBreakdownRanges(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	result, err := analyzer.Analyze(context.Background(), Request{ResumeText: strPtr(sampleResume)})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	checks := []struct {
		name   string
		value  int
		lo, hi int
	}{
		{"keywordOptimization", result.Breakdown.KeywordOptimization, 65, 95},
		{"structuralFormatting", result.Breakdown.StructuralFormatting, 70, 90},
		{"contentQuality", result.Breakdown.ContentQuality, 75, 92},
		{"narrativeCoherence", result.Breakdown.NarrativeCoherence, 80, 95},
		{"additionalFactors", result.Breakdown.AdditionalFactors, 75, 88},
	}

	for _, c := range checks {
		if c.value < c.lo || c.value > c.hi {
			t.Errorf("%s = %d, want within [%d,%d]", c.name, c.value, c.lo, c.hi)
		}
	}
}

func TestAnalyzeWithEnricher(t *testing.T) {
	enricher := &fakeEnricher{
		match:  types.JobMatch{Score: 85, Details: "Strong alignment on core stack"},
		skills: types.SkillSet{"programming": {"go", "python"}},
		suggestions: []types.Suggestion{
			{Category: "AI Insight", Priority: types.PriorityHigh, Text: "Lead with your platform work", Impact: types.ImpactImprovement},
		},
	}
	analyzer := NewAnalyzer(nil, WithEnricher(enricher))

	result, err := analyzer.Analyze(context.Background(), Request{
		ResumeText:     strPtr(sampleResume),
		JobDescription: sampleJob,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.Enrichment != types.SourceLLM {
		t.Errorf("Enrichment = %q, want %q", result.Enrichment, types.SourceLLM)
	}
	if result.JobMatchScore != 85 {
		t.Errorf("JobMatchScore = %d, want 85 from enricher", result.JobMatchScore)
	}
	if !reflect.DeepEqual(result.Skills, enricher.skills) {
		t.Errorf("Skills = %v, want enricher skills %v", result.Skills, enricher.skills)
	}

	// Enrichment suggestions go last.
	if len(result.Suggestions) == 0 {
		t.Fatal("expected suggestions")
	}
	last := result.Suggestions[len(result.Suggestions)-1]
	if last.Category != "AI Insight" {
		t.Errorf("last suggestion category = %q, want AI Insight", last.Category)
	}
}

func TestAnalyzeEnricherFailureFallsBack(t *testing.T) {
	analyzer := NewAnalyzer(nil, WithEnricher(&fakeEnricher{fail: true}))

	withEnricher, err := analyzer.Analyze(context.Background(), Request{
		ResumeText:     strPtr(sampleResume),
		JobDescription: sampleJob,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	plain, err := NewAnalyzer(nil).Analyze(context.Background(), Request{
		ResumeText:     strPtr(sampleResume),
		JobDescription: sampleJob,
	})
	if err != nil {
		t.Fatalf("plain Analyze failed: %v", err)
	}

	if withEnricher.Enrichment != types.SourceFallback {
		t.Errorf("Enrichment = %q, want %q", withEnricher.Enrichment, types.SourceFallback)
	}

	// A failing enricher must be indistinguishable from no enricher.
	withEnricher.AnalysisDate = plain.AnalysisDate
	if !reflect.DeepEqual(withEnricher, plain) {
		t.Errorf("fallback result diverged from deterministic pipeline:\nwith:  %+v\nplain: %+v", withEnricher, plain)
	}
}

func TestAnalyzeEnricherScoreClamped(t *testing.T) {
	analyzer := NewAnalyzer(nil, WithEnricher(&fakeEnricher{
		match: types.JobMatch{Score: 240, Details: "overshoot"},
	}))

	result, err := analyzer.Analyze(context.Background(), Request{
		ResumeText:     strPtr(sampleResume),
		JobDescription: sampleJob,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.JobMatchScore != 100 {
		t.Errorf("JobMatchScore = %d, want clamped 100", result.JobMatchScore)
	}
}

func TestAnalyzeOverallWeighting(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	result, err := analyzer.Analyze(context.Background(), Request{
		ResumeText:     strPtr(sampleResume),
		JobDescription: sampleJob,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	normalized := Normalize(sampleResume)
	base := int(float64(result.ATSScore)*atsWeight + float64(result.JobMatchScore)*matchWeight + 0.5)
	want := clamp(base+overallVariation(normalized), 0, 100)
	if result.OverallScore != want {
		t.Errorf("OverallScore = %d, want %d", result.OverallScore, want)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	analyzer := NewAnalyzer(nil)
	req := Request{ResumeText: strPtr(sampleResume), JobDescription: sampleJob}

	for b.Loop() {
		if _, err := analyzer.Analyze(context.Background(), req); err != nil {
			b.Fatal(err)
		}
	}
}
