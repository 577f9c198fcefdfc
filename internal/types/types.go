package types

import "time"

// FeedbackKind classifies a feedback entry produced by the ATS scorer
type FeedbackKind string

const (
	FeedbackPositive    FeedbackKind = "positive"
	FeedbackNegative    FeedbackKind = "negative"
	FeedbackImprovement FeedbackKind = "improvement"
)

// FeedbackItem is a single scoring observation. Immutable once created.
type FeedbackItem struct {
	Kind    FeedbackKind `json:"type"`
	Message string       `json:"text"`
}

// ScoreBreakdown holds the per-category ATS points. Category caps are
// 20/15/20/25/10/10; the sum need not equal the final ATS score because of
// the content-derived variation term.
type ScoreBreakdown struct {
	Contact      int `json:"contact"`
	Summary      int `json:"summary"`
	Skills       int `json:"skills"`
	Experience   int `json:"experience"`
	Education    int `json:"education"`
	Achievements int `json:"achievements"`
}

// ATSResult is the output of the ATS scorer
type ATSResult struct {
	Score     int            `json:"score"`
	Feedback  []FeedbackItem `json:"feedback"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// JobMatch is the outcome of matching a resume against a job description
type JobMatch struct {
	Score   int    `json:"score"`
	Details string `json:"details"`
}

// SuggestionPriority ranks how urgently a suggestion should be addressed
type SuggestionPriority string

const (
	PriorityHigh   SuggestionPriority = "high"
	PriorityMedium SuggestionPriority = "medium"
	PriorityLow    SuggestionPriority = "low"
)

// SuggestionImpact labels the expected effect of acting on a suggestion
type SuggestionImpact string

const (
	ImpactCritical    SuggestionImpact = "Critical"
	ImpactImprovement SuggestionImpact = "Improvement"
)

// Suggestion is one actionable improvement recommendation
type Suggestion struct {
	Category string             `json:"category"`
	Priority SuggestionPriority `json:"priority"`
	Text     string             `json:"suggestion"`
	Impact   SuggestionImpact   `json:"impact"`
}

// SkillSet groups extracted skill keywords by taxonomy category. Only
// categories with at least one match are populated; keywords keep their
// canonical lowercase form.
type SkillSet map[string][]string

// SecondaryBreakdown is the UI-facing decomposition of the overall score.
// Each field is bounded to a fixed presentation range and derives from the
// ATS breakdown plus text-derived variation.
type SecondaryBreakdown struct {
	KeywordOptimization  int `json:"keywordOptimization"`
	StructuralFormatting int `json:"structuralFormatting"`
	ContentQuality       int `json:"contentQuality"`
	NarrativeCoherence   int `json:"narrativeCoherence"`
	AdditionalFactors    int `json:"additionalFactors"`
}

// EnrichmentSource records which path produced the skills, job match and
// extra suggestions in an AnalysisResult.
type EnrichmentSource string

const (
	// SourceLLM means the language-model collaborator contributed.
	SourceLLM EnrichmentSource = "llm"
	// SourceFallback means the deterministic pipeline supplied everything.
	SourceFallback EnrichmentSource = "fallback"
)

// AnalysisResult is the aggregate produced by a single analysis invocation.
// It is constructed once and never mutated afterwards.
type AnalysisResult struct {
	OverallScore  int                `json:"overallScore"`
	ATSScore      int                `json:"atsScore"`
	JobMatchScore int                `json:"jobMatchScore"`
	Breakdown     SecondaryBreakdown `json:"breakdown"`
	Skills        SkillSet           `json:"skills"`
	Suggestions   []Suggestion       `json:"suggestions"`
	Feedback      []FeedbackItem     `json:"feedback"`
	JobMatch      JobMatch           `json:"jobMatch"`
	Enrichment    EnrichmentSource   `json:"enrichment"`
	AnalysisDate  time.Time          `json:"analysisDate"`
}

// AnalysisSummary is the reduced shape returned by history listings
type AnalysisSummary struct {
	ID            string    `json:"id"`
	FileName      string    `json:"fileName,omitempty"`
	OverallScore  int       `json:"overallScore"`
	ATSScore      int       `json:"atsScore"`
	JobMatchScore int       `json:"jobMatchScore"`
	CreatedAt     time.Time `json:"createdAt"`
	Status        string    `json:"status"`
}
