package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"resumelens/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "AnalysisSummaryList", &HistoryTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisSummaryList", &HistoryMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult:
		return "AnalysisResult"
	case []types.AnalysisSummary:
		return "AnalysisSummaryList"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// sortedSkillCategories returns the skill categories in stable order so the
// rendered output is deterministic.
func sortedSkillCategories(skills types.SkillSet) []string {
	categories := make([]string, 0, len(skills))
	for category := range skills {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// AnalysisTextFormatter handles text formatting for analysis results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score:   %d/100\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("ATS Score:       %d/100\n", result.ATSScore))
	output.WriteString(fmt.Sprintf("Job Match Score: %d/100\n\n", result.JobMatchScore))

	output.WriteString("=== SCORE BREAKDOWN ===\n")
	output.WriteString(fmt.Sprintf("Keyword Optimization:  %d\n", result.Breakdown.KeywordOptimization))
	output.WriteString(fmt.Sprintf("Structural Formatting: %d\n", result.Breakdown.StructuralFormatting))
	output.WriteString(fmt.Sprintf("Content Quality:       %d\n", result.Breakdown.ContentQuality))
	output.WriteString(fmt.Sprintf("Narrative Coherence:   %d\n", result.Breakdown.NarrativeCoherence))
	output.WriteString(fmt.Sprintf("Additional Factors:    %d\n\n", result.Breakdown.AdditionalFactors))

	if len(result.Skills) > 0 {
		output.WriteString("=== SKILLS ===\n")
		for _, category := range sortedSkillCategories(result.Skills) {
			output.WriteString(fmt.Sprintf("%s: %s\n", category, strings.Join(result.Skills[category], ", ")))
		}
		output.WriteString("\n")
	}

	if result.JobMatch.Details != "" {
		output.WriteString("=== JOB MATCH ===\n")
		output.WriteString(fmt.Sprintf("Score: %d/100\n", result.JobMatch.Score))
		output.WriteString(result.JobMatch.Details)
		output.WriteString("\n\n")
	}

	if len(result.Feedback) > 0 {
		output.WriteString("=== FEEDBACK ===\n")
		for _, item := range result.Feedback {
			output.WriteString(fmt.Sprintf("[%s] %s\n", item.Kind, item.Message))
		}
		output.WriteString("\n")
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("=== SUGGESTIONS ===\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. [%s/%s] %s\n", i+1, suggestion.Priority, suggestion.Impact, suggestion.Text))
			output.WriteString(fmt.Sprintf("   Category: %s\n", suggestion.Category))
		}
		output.WriteString("\n")
	}

	output.WriteString(fmt.Sprintf("Enrichment: %s\n", result.Enrichment))
	output.WriteString(fmt.Sprintf("Analyzed:   %s\n", result.AnalysisDate.Format("2006-01-02 15:04:05 MST")))

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

// AnalysisMarkdownFormatter handles markdown formatting for analysis results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("**ATS Score:** %d/100\n\n", result.ATSScore))
	output.WriteString(fmt.Sprintf("**Job Match Score:** %d/100\n\n", result.JobMatchScore))

	output.WriteString("## Score Breakdown\n\n")
	output.WriteString(fmt.Sprintf("| Keyword Optimization | %d |\n", result.Breakdown.KeywordOptimization))
	output.WriteString(fmt.Sprintf("| Structural Formatting | %d |\n", result.Breakdown.StructuralFormatting))
	output.WriteString(fmt.Sprintf("| Content Quality | %d |\n", result.Breakdown.ContentQuality))
	output.WriteString(fmt.Sprintf("| Narrative Coherence | %d |\n", result.Breakdown.NarrativeCoherence))
	output.WriteString(fmt.Sprintf("| Additional Factors | %d |\n\n", result.Breakdown.AdditionalFactors))

	if len(result.Skills) > 0 {
		output.WriteString("## Skills\n\n")
		for _, category := range sortedSkillCategories(result.Skills) {
			output.WriteString(fmt.Sprintf("- **%s:** %s\n", category, strings.Join(result.Skills[category], ", ")))
		}
		output.WriteString("\n")
	}

	if result.JobMatch.Details != "" {
		output.WriteString("## Job Match\n\n")
		output.WriteString(fmt.Sprintf("**Score:** %d/100\n\n", result.JobMatch.Score))
		output.WriteString(result.JobMatch.Details)
		output.WriteString("\n\n")
	}

	if len(result.Feedback) > 0 {
		output.WriteString("## Feedback\n\n")
		for _, item := range result.Feedback {
			output.WriteString(fmt.Sprintf("- **%s:** %s\n", item.Kind, item.Message))
		}
		output.WriteString("\n")
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. **[%s/%s]** %s (%s)\n", i+1, suggestion.Priority, suggestion.Impact, suggestion.Text, suggestion.Category))
		}
		output.WriteString("\n")
	}

	output.WriteString(fmt.Sprintf("*Enrichment: %s. Analyzed %s.*\n", result.Enrichment, result.AnalysisDate.Format("2006-01-02 15:04:05 MST")))

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

// HistoryTextFormatter handles text formatting for history listings
type HistoryTextFormatter struct{}

func (htf *HistoryTextFormatter) Format(data any) (string, error) {
	summaries, ok := data.([]types.AnalysisSummary)
	if !ok {
		return "", fmt.Errorf("expected []AnalysisSummary, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ANALYSIS HISTORY ===\n\n")
	if len(summaries) == 0 {
		output.WriteString("No analyses recorded.\n")
		return output.String(), nil
	}

	for i, summary := range summaries {
		name := summary.FileName
		if name == "" {
			name = "(unnamed)"
		}
		output.WriteString(fmt.Sprintf("%d. %s  overall=%d ats=%d match=%d\n",
			i+1, name, summary.OverallScore, summary.ATSScore, summary.JobMatchScore))
		output.WriteString(fmt.Sprintf("   ID: %s  %s  %s\n",
			summary.ID, summary.Status, summary.CreatedAt.Format("2006-01-02 15:04:05")))
	}

	return output.String(), nil
}

func (htf *HistoryTextFormatter) SupportedType() string {
	return "AnalysisSummaryList"
}

// HistoryMarkdownFormatter handles markdown formatting for history listings
type HistoryMarkdownFormatter struct{}

func (hmf *HistoryMarkdownFormatter) Format(data any) (string, error) {
	summaries, ok := data.([]types.AnalysisSummary)
	if !ok {
		return "", fmt.Errorf("expected []AnalysisSummary, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Analysis History\n\n")
	if len(summaries) == 0 {
		output.WriteString("No analyses recorded.\n")
		return output.String(), nil
	}

	output.WriteString("| File | Overall | ATS | Match | Created | Status |\n")
	output.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, summary := range summaries {
		name := summary.FileName
		if name == "" {
			name = "(unnamed)"
		}
		output.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %s | %s |\n",
			name, summary.OverallScore, summary.ATSScore, summary.JobMatchScore,
			summary.CreatedAt.Format("2006-01-02 15:04"), summary.Status))
	}

	return output.String(), nil
}

func (hmf *HistoryMarkdownFormatter) SupportedType() string {
	return "AnalysisSummaryList"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
