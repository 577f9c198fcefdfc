package analysis

import "regexp"

// Signal is a boolean presence flag plus an occurrence count for one resume
// attribute.
type Signal struct {
	Present  bool
	Strength int
}

// FeatureSignals holds the detector output for all six scored categories.
type FeatureSignals struct {
	Contact      Signal
	Summary      Signal
	Skills       Signal
	Experience   Signal
	Education    Signal
	Achievements Signal
}

// strongExperienceThreshold is the strength above which the experience
// section counts as fully developed rather than merely mentioned.
const strongExperienceThreshold = 3

var (
	emailPattern = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w+`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	summaryPattern      = regexp.MustCompile(`(?i)summary|profile|about|overview|objective`)
	skillsPattern       = regexp.MustCompile(`(?i)skills|technologies|competencies|proficient|experienced`)
	experiencePattern   = regexp.MustCompile(`(?i)experience|work|employment|position|role|company|years`)
	educationPattern    = regexp.MustCompile(`(?i)education|degree|university|college|school|bachelor|master|phd`)
	achievementsPattern = regexp.MustCompile(`(?i)\d+%|\$\d+|increased|improved|reduced|grew|achieved|\d+\+|\d+ years`)
)

// DetectFeatures probes resumeText for the six scored resume attributes.
// All matching is case-insensitive and the output is bit-identical for
// identical input.
func DetectFeatures(resumeText string) FeatureSignals {
	hasEmail := emailPattern.MatchString(resumeText)
	hasPhone := phonePattern.MatchString(resumeText)

	contactStrength := 0
	if hasEmail {
		contactStrength++
	}
	if hasPhone {
		contactStrength++
	}

	return FeatureSignals{
		// Contact requires both an email and a phone number, not either.
		Contact:      Signal{Present: hasEmail && hasPhone, Strength: contactStrength},
		Summary:      countSignal(summaryPattern, resumeText),
		Skills:       countSignal(skillsPattern, resumeText),
		Experience:   countSignal(experiencePattern, resumeText),
		Education:    countSignal(educationPattern, resumeText),
		Achievements: countSignal(achievementsPattern, resumeText),
	}
}

func countSignal(pattern *regexp.Regexp, text string) Signal {
	n := len(pattern.FindAllString(text, -1))
	return Signal{Present: n > 0, Strength: n}
}
