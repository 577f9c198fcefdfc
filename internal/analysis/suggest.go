package analysis

import "resumelens/internal/types"

// Word-count thresholds for the length heuristic.
const (
	shortResumeWords = 200
	longResumeWords  = 800
)

// lowMatchThreshold is the job-match score below which a keyword-alignment
// suggestion is emitted.
const lowMatchThreshold = 50

// SynthesizeSuggestions turns ATS feedback, the resume's word count, and
// the job-match score into a prioritized suggestion list. Emission order is
// fixed: ATS-derived suggestions in feedback order, then the length
// heuristic, then job matching. The function is pure; suggestions are never
// mutated after creation.
func SynthesizeSuggestions(ats types.ATSResult, match types.JobMatch, resumeText string) []types.Suggestion {
	var suggestions []types.Suggestion

	for _, item := range ats.Feedback {
		switch item.Kind {
		case types.FeedbackNegative:
			suggestions = append(suggestions, types.Suggestion{
				Category: "ATS Optimization",
				Priority: types.PriorityHigh,
				Text:     item.Message,
				Impact:   types.ImpactCritical,
			})
		case types.FeedbackImprovement:
			suggestions = append(suggestions, types.Suggestion{
				Category: "ATS Optimization",
				Priority: types.PriorityMedium,
				Text:     item.Message,
				Impact:   types.ImpactImprovement,
			})
		}
	}

	switch words := wordCount(resumeText); {
	case words < shortResumeWords:
		suggestions = append(suggestions, types.Suggestion{
			Category: "Content",
			Priority: types.PriorityMedium,
			Text:     "Resume appears too short. Consider adding more detail to your experience and achievements.",
			Impact:   types.ImpactImprovement,
		})
	case words > longResumeWords:
		suggestions = append(suggestions, types.Suggestion{
			Category: "Content",
			Priority: types.PriorityLow,
			Text:     "Resume might be too long. Consider condensing to 1-2 pages for better readability.",
			Impact:   types.ImpactImprovement,
		})
	}

	if match.Score < lowMatchThreshold {
		suggestions = append(suggestions, types.Suggestion{
			Category: "Job Matching",
			Priority: types.PriorityHigh,
			Text:     "Low job match score. Review the job description and incorporate relevant keywords and skills.",
			Impact:   types.ImpactCritical,
		})
	}

	return suggestions
}
