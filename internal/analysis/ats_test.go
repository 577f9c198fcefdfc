package analysis

import (
	"strings"
	"testing"

	"resumelens/internal/types"
)

func TestScoreATSEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		result := ScoreATS(input)

		if result.Score != 0 {
			t.Errorf("ScoreATS(%q).Score = %d, want 0", input, result.Score)
		}
		if result.Breakdown != (types.ScoreBreakdown{}) {
			t.Errorf("ScoreATS(%q).Breakdown = %+v, want all-zero", input, result.Breakdown)
		}

		kinds := feedbackKinds(result.Feedback)
		for _, kind := range kinds {
			if kind == types.FeedbackPositive {
				t.Errorf("ScoreATS(%q) produced positive feedback", input)
			}
		}
		if len(result.Feedback) != 6 {
			t.Errorf("ScoreATS(%q) produced %d feedback items, want 6", input, len(result.Feedback))
		}
	}
}

func TestScoreATSContactOnly(t *testing.T) {
	// Email plus phone, nothing that matches any other category.
	text := "john@x.com 555-123-4567"

	result := ScoreATS(text)

	if result.Breakdown.Contact != 20 {
		t.Errorf("Contact points = %d, want 20", result.Breakdown.Contact)
	}
	for name, points := range map[string]int{
		"summary":      result.Breakdown.Summary,
		"skills":       result.Breakdown.Skills,
		"experience":   result.Breakdown.Experience,
		"education":    result.Breakdown.Education,
		"achievements": result.Breakdown.Achievements,
	} {
		if points != 0 {
			t.Errorf("%s points = %d, want 0", name, points)
		}
	}

	// len 23 + 2 words -> variation (25 mod 15) - 7 = 3
	if result.Score != 23 {
		t.Errorf("Score = %d, want 23 (20 points + variation 3)", result.Score)
	}
}

func TestScoreATSContactANDGate(t *testing.T) {
	emailOnly := ScoreATS("Contact me: john@x.com")
	if emailOnly.Breakdown.Contact != 0 {
		t.Errorf("email-only contact points = %d, want 0", emailOnly.Breakdown.Contact)
	}

	withPhone := ScoreATS("Contact me: john@x.com 555-123-4567")
	if withPhone.Breakdown.Contact != 20 {
		t.Errorf("email+phone contact points = %d, want 20", withPhone.Breakdown.Contact)
	}
}

func TestScoreATSAchievementsMonotonic(t *testing.T) {
	base := "jane@example.com 555-123-4567 professional summary with skills"

	prev := ScoreATS(base).Breakdown.Achievements
	text := base
	for i := 0; i < 10; i++ {
		text += " improved"
		current := ScoreATS(text).Breakdown.Achievements
		if current < prev {
			t.Fatalf("achievements points decreased from %d to %d after %d indicators", prev, current, i+1)
		}
		prev = current
	}

	if prev != 10 {
		t.Errorf("achievements points = %d after 10 indicators, want cap 10", prev)
	}
}

func TestScoreATSExperienceTiers(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		points int
	}{
		{
			name:   "no indicators",
			text:   "jane@example.com",
			points: 0,
		},
		{
			name: "weak mention gets flat award",
			// single indicator: "work"
			text:   "did some work once",
			points: 10,
		},
		{
			name: "strong section scales with depth",
			// 5 indicators: experience, work, position, company, years
			text:   "experience: work in a position at a company for years",
			points: 23,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreATS(tt.text)
			if result.Breakdown.Experience != tt.points {
				t.Errorf("experience points = %d, want %d", result.Breakdown.Experience, tt.points)
			}
		})
	}
}

func TestScoreATSBounded(t *testing.T) {
	inputs := []string{
		"",
		"...,,,;;;!!!",
		strings.Repeat("experience skills summary education achieved 10% ", 5000),
		strings.Repeat("x", 150000),
	}

	for _, input := range inputs {
		result := ScoreATS(input)
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("Score = %d out of [0,100] for input of length %d", result.Score, len(input))
		}
	}
}

func TestScoreATSDeterministic(t *testing.T) {
	text := "jane@example.com 555-123-4567 Summary: 5 years experience, improved throughput 40%. Education: BSc. Skills: Go."

	first := ScoreATS(text)
	second := ScoreATS(text)

	if first.Score != second.Score {
		t.Errorf("scores diverged: %d vs %d", first.Score, second.Score)
	}
	if first.Breakdown != second.Breakdown {
		t.Errorf("breakdowns diverged: %+v vs %+v", first.Breakdown, second.Breakdown)
	}
	if len(first.Feedback) != len(second.Feedback) {
		t.Fatalf("feedback lengths diverged: %d vs %d", len(first.Feedback), len(second.Feedback))
	}
	for i := range first.Feedback {
		if first.Feedback[i] != second.Feedback[i] {
			t.Errorf("feedback[%d] diverged: %+v vs %+v", i, first.Feedback[i], second.Feedback[i])
		}
	}
}

func feedbackKinds(items []types.FeedbackItem) []types.FeedbackKind {
	kinds := make([]types.FeedbackKind, len(items))
	for i, item := range items {
		kinds[i] = item.Kind
	}
	return kinds
}

func BenchmarkScoreATS(b *testing.B) {
	text := strings.Repeat("jane@example.com 555-123-4567 Summary: 5 years experience improved 40%. Skills: Go, Python. Education: BSc. ", 20)
	for b.Loop() {
		ScoreATS(text)
	}
}
