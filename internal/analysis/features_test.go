package analysis

import "testing"

func TestDetectFeaturesContactGate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		present bool
	}{
		{
			name:    "email and phone",
			text:    "Reach me at jane@example.com or 555-123-4567",
			present: true,
		},
		{
			name:    "email only",
			text:    "Reach me at jane@example.com",
			present: false,
		},
		{
			name:    "phone only",
			text:    "Reach me at (555) 123-4567",
			present: false,
		},
		{
			name:    "international phone with email",
			text:    "jane@example.com +1 555 123 4567",
			present: true,
		},
		{
			name:    "neither",
			text:    "Jane Doe, Software Engineer",
			present: false,
		},
		{
			name:    "empty",
			text:    "",
			present: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := DetectFeatures(tt.text)
			if sig.Contact.Present != tt.present {
				t.Errorf("Contact.Present = %v, want %v", sig.Contact.Present, tt.present)
			}
		})
	}
}

func TestDetectFeaturesStrength(t *testing.T) {
	text := "Professional Summary. Skills: Python. Work experience at a company, role included years of work."

	sig := DetectFeatures(text)

	if sig.Summary.Strength != 1 {
		t.Errorf("Summary.Strength = %d, want 1", sig.Summary.Strength)
	}
	if sig.Skills.Strength != 1 {
		t.Errorf("Skills.Strength = %d, want 1", sig.Skills.Strength)
	}
	// experience, company, role, years, work (x2) = 6 indicator hits
	if sig.Experience.Strength != 6 {
		t.Errorf("Experience.Strength = %d, want 6", sig.Experience.Strength)
	}
	if sig.Experience.Strength <= strongExperienceThreshold {
		t.Errorf("expected experience strength %d to cross the strong threshold", sig.Experience.Strength)
	}
}

func TestDetectFeaturesCaseInsensitive(t *testing.T) {
	lower := DetectFeatures("summary skills experience education achieved")
	upper := DetectFeatures("SUMMARY SKILLS EXPERIENCE EDUCATION ACHIEVED")

	if lower != upper {
		t.Errorf("case-folded inputs diverged: %+v vs %+v", lower, upper)
	}
}

func TestDetectFeaturesAchievementIndicators(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		strength int
	}{
		{name: "percent value", text: "increased revenue by 40%", strength: 2},
		{name: "dollar value", text: "saved $50000 annually", strength: 1},
		{name: "plus suffix", text: "managed 10+ engineers", strength: 1},
		{name: "years phrase", text: "8 years of leadership", strength: 1},
		{name: "verbs", text: "improved and reduced costs, grew the team", strength: 3},
		{name: "none", text: "responsible for things", strength: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := DetectFeatures(tt.text)
			if sig.Achievements.Strength != tt.strength {
				t.Errorf("Achievements.Strength = %d, want %d", sig.Achievements.Strength, tt.strength)
			}
		})
	}
}

func TestDetectFeaturesDeterministic(t *testing.T) {
	text := "jane@example.com 555-123-4567 Summary: 5 years experience with skills in Python. Education: BSc."

	first := DetectFeatures(text)
	for i := 0; i < 10; i++ {
		if got := DetectFeatures(text); got != first {
			t.Fatalf("call %d diverged: %+v vs %+v", i, got, first)
		}
	}
}
