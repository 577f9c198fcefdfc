package analysis

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// Overall score weighting between the ATS score and the job-match score.
const (
	atsWeight   = 0.6
	matchWeight = 0.4
)

// noJobDescriptionDetails is the canonical detail string when no job
// description was supplied.
const noJobDescriptionDetails = "No job description provided"

var longWordPattern = regexp.MustCompile(`\w{4,}`)

// Enricher is the optional LLM-backed collaborator. Every method may fail;
// the analyzer recovers by substituting the deterministic fallback, so an
// Enricher error never propagates out of Analyze.
type Enricher interface {
	MatchJobDescription(ctx context.Context, resumeText, jobDescription string) (types.JobMatch, error)
	ExtractSkills(ctx context.Context, text string) (types.SkillSet, error)
	GenerateSuggestions(ctx context.Context, resumeText, jobDescription string) ([]types.Suggestion, error)
}

// Request carries the inputs for one analysis. ResumeText is a pointer so
// an absent resume (rejected) is distinguishable from an empty one
// (accepted, scores zero).
type Request struct {
	ResumeText     *string
	JobDescription string
}

// Analyzer orchestrates the scoring pipeline. It holds no mutable state;
// every Analyze call is independent and safe to run concurrently.
type Analyzer struct {
	enricher Enricher
	logger   *errors.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithEnricher attaches the LLM collaborator. Without it the analyzer runs
// the deterministic pipeline only.
func WithEnricher(e Enricher) Option {
	return func(a *Analyzer) { a.enricher = e }
}

// NewAnalyzer creates an analyzer. The logger may be nil in tests.
func NewAnalyzer(logger *errors.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full pipeline: ATS scoring, job matching, skill
// extraction, suggestion synthesis, and the overall score with its
// secondary breakdown. Only a missing (nil) resume is rejected; empty
// strings score zero without error. Unexpected internal failures surface
// as a single ANALYSIS_FAILED error, never as partial results.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (result types.AnalysisResult, err error) {
	if req.ResumeText == nil {
		return types.AnalysisResult{}, errors.NewValidationError(errors.ErrCodeInvalidInput,
			"resume text is required", nil)
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.NewInternalError(errors.ErrCodeAnalysisFailed,
				"resume analysis failed", fmt.Errorf("panic: %v", r))
		}
	}()

	text := Normalize(*req.ResumeText)
	job := strings.TrimSpace(req.JobDescription)

	ats := ScoreATS(text)

	match, skills, extra, source := a.enrich(ctx, text, job)

	suggestions := SynthesizeSuggestions(ats, match, text)
	suggestions = append(suggestions, extra...)

	base := int(math.Round(float64(ats.Score)*atsWeight + float64(match.Score)*matchWeight))
	overall := clamp(base+overallVariation(text), 0, 100)

	return types.AnalysisResult{
		OverallScore:  overall,
		ATSScore:      ats.Score,
		JobMatchScore: match.Score,
		Breakdown:     secondaryBreakdown(ats.Breakdown, text),
		Skills:        skills,
		Suggestions:   suggestions,
		Feedback:      ats.Feedback,
		JobMatch:      match,
		Enrichment:    source,
		AnalysisDate:  time.Now().UTC(),
	}, nil
}

// enrich produces the job match, the skill set, and any extra suggestions,
// preferring the LLM collaborator and falling back per call to the
// deterministic path. The returned source is SourceLLM only when at least
// one collaborator call contributed.
func (a *Analyzer) enrich(ctx context.Context, text, job string) (types.JobMatch, types.SkillSet, []types.Suggestion, types.EnrichmentSource) {
	source := types.SourceFallback

	var match types.JobMatch
	switch {
	case job == "":
		match = types.JobMatch{Score: 0, Details: noJobDescriptionDetails}
	case a.enricher != nil:
		m, err := a.enricher.MatchJobDescription(ctx, text, job)
		if err != nil {
			a.logWarn("Job match enrichment failed, using keyword fallback", err)
			match = MatchKeywords(text, job)
		} else {
			match = types.JobMatch{Score: clamp(m.Score, 0, 100), Details: m.Details}
			source = types.SourceLLM
		}
	default:
		match = MatchKeywords(text, job)
	}

	var skills types.SkillSet
	if a.enricher != nil {
		s, err := a.enricher.ExtractSkills(ctx, text)
		if err != nil || len(s) == 0 {
			a.logWarn("Skill enrichment failed, using taxonomy fallback", err)
			skills = ExtractSkills(text)
		} else {
			skills = s
			source = types.SourceLLM
		}
	} else {
		skills = ExtractSkills(text)
	}

	var extra []types.Suggestion
	if a.enricher != nil {
		s, err := a.enricher.GenerateSuggestions(ctx, text, job)
		if err != nil {
			a.logWarn("Suggestion enrichment failed, continuing without", err)
		} else if len(s) > 0 {
			extra = s
			source = types.SourceLLM
		}
	}

	return match, skills, extra, source
}

func (a *Analyzer) logWarn(msg string, err error) {
	if a.logger == nil || err == nil {
		return
	}
	a.logger.Warn(msg, "error", err.Error())
}

// overallVariation derives a bounded term in [-5, 4] from the text length.
func overallVariation(text string) int {
	return len(text)%10 - 5
}

// secondaryBreakdown maps the ATS breakdown plus text-derived variation
// terms onto the five presentation fields, each clamped to its fixed
// floor and ceiling.
func secondaryBreakdown(b types.ScoreBreakdown, text string) types.SecondaryBreakdown {
	words := wordCount(text)
	skillDensity := len(longWordPattern.FindAllString(text, -1))
	sentences := strings.Count(text, ".") + 1
	clauses := strings.Count(text, ",") + 1

	return types.SecondaryBreakdown{
		KeywordOptimization:  clamp(b.Skills+skillDensity%20+25, 65, 95),
		StructuralFormatting: clamp(b.Contact+b.Summary+words%15+10, 70, 90),
		ContentQuality:       clamp(b.Experience+b.Achievements+len(text)%12+10, 75, 92),
		NarrativeCoherence:   clamp(85+sentences%8, 80, 95),
		AdditionalFactors:    clamp(78+clauses%8, 75, 88),
	}
}
