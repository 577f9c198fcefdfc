package analysis

import "resumelens/internal/types"

// Category point caps: contact 20, summary 15, skills 20, experience 25,
// education 10, achievements 10.
const (
	contactPoints       = 20
	summaryCap          = 15
	skillsCap           = 20
	experienceCap       = 25
	experienceWeakAward = 10
	educationCap        = 10
	achievementsCap     = 10
)

// ScoreATS runs the feature detector over resumeText and combines the
// signals into a 0-100 score with per-category breakdown and feedback.
// The final score carries a bounded variation term derived from the text
// itself, so near-identical resumes diverge while the same text always
// scores the same. Empty input yields score 0 and all-negative feedback.
func ScoreATS(resumeText string) types.ATSResult {
	sig := DetectFeatures(resumeText)

	var breakdown types.ScoreBreakdown
	feedback := make([]types.FeedbackItem, 0, 6)

	if sig.Contact.Present {
		breakdown.Contact = contactPoints
		feedback = append(feedback, types.FeedbackItem{Kind: types.FeedbackPositive, Message: "Contact information present"})
	} else {
		feedback = append(feedback, types.FeedbackItem{Kind: types.FeedbackNegative, Message: "Missing complete contact information"})
	}

	if sig.Summary.Present {
		breakdown.Summary = min(summaryCap, 10+2*sig.Summary.Strength)
		feedback = append(feedback, types.FeedbackItem{Kind: types.FeedbackPositive, Message: "Professional summary found"})
	} else {
		feedback = append(feedback, types.FeedbackItem{Kind: types.FeedbackImprovement, Message: "Consider adding a professional summary"})
	}

	if sig.Skills.Present {
		breakdown.Skills = min(skillsCap, 12+2*sig.Skills.Strength)
		feedback = append(feedback, types.FeedbackItem{Kind: types.FeedbackPositive, Message: "Skills section present"})
	} else {
		feedback = append(feedback, types.FeedbackItem{Kind: types.FeedbackImprovement, Message: "Add a dedicated skills section"})
	}

	switch {
	case sig.Experience.Strength > strongExperienceThreshold:
		breakdown.Experience = min(experienceCap, 18+sig.Experience.Strength)
		feedback = append(feedback, types.FeedbackItem{Kind: types.FeedbackPositive, Message: "Work experience section found"})
	case sig.Experience.Strength > 0:
		breakdown.Experience = experienceWeakAward
		feedback = append(feedback, types.FeedbackItem{Kind: types.FeedbackImprovement, Message: "Expand work experience details"})
	default:
		feedback = append(feedback, types.FeedbackItem{Kind: types.FeedbackNegative, Message: "Work experience section missing"})
	}

	if sig.Education.Present {
		breakdown.Education = min(educationCap, 7+sig.Education.Strength)
		feedback = append(feedback, types.FeedbackItem{Kind: types.FeedbackPositive, Message: "Education information present"})
	} else {
		feedback = append(feedback, types.FeedbackItem{Kind: types.FeedbackImprovement, Message: "Consider adding education details"})
	}

	if sig.Achievements.Present {
		breakdown.Achievements = min(achievementsCap, 5+sig.Achievements.Strength)
		feedback = append(feedback, types.FeedbackItem{Kind: types.FeedbackPositive, Message: "Quantified achievements found"})
	} else {
		feedback = append(feedback, types.FeedbackItem{Kind: types.FeedbackImprovement, Message: "Add quantified achievements and metrics"})
	}

	sum := breakdown.Contact + breakdown.Summary + breakdown.Skills +
		breakdown.Experience + breakdown.Education + breakdown.Achievements

	score := clamp(sum+scoreVariation(resumeText), 0, 100)

	return types.ATSResult{
		Score:     score,
		Feedback:  feedback,
		Breakdown: breakdown,
	}
}

// scoreVariation derives a bounded term in [-7, 7] from the text's length
// and word count. Reproducible for identical input; not a source of
// nondeterminism.
func scoreVariation(text string) int {
	return (len(text)+wordCount(text))%15 - 7
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
