package analysis

import (
	"slices"
	"strings"
	"testing"
)

func TestExtractSkills(t *testing.T) {
	text := "Built services in Python and Go, deployed with Docker on AWS, backed by PostgreSQL."

	skills := ExtractSkills(text)

	if !slices.Contains(skills["programming"], "python") {
		t.Errorf("programming = %v, want python included", skills["programming"])
	}
	if !slices.Contains(skills["tools"], "docker") {
		t.Errorf("tools = %v, want docker included", skills["tools"])
	}
	if !slices.Contains(skills["cloud"], "aws") {
		t.Errorf("cloud = %v, want aws included", skills["cloud"])
	}
	if !slices.Contains(skills["databases"], "postgresql") {
		t.Errorf("databases = %v, want postgresql included", skills["databases"])
	}
}

func TestExtractSkillsOmitsEmptyCategories(t *testing.T) {
	// No taxonomy keyword appears in this text, not even the one-letter
	// language names that substring matching makes so easy to hit.
	skills := ExtractSkills("had fun on the job")

	if len(skills) != 0 {
		t.Errorf("ExtractSkills on non-technical text = %v, want empty map", skills)
	}
}

func TestExtractSkillsCaseInsensitive(t *testing.T) {
	skills := ExtractSkills("PYTHON, Docker, MongoDB")

	if !slices.Contains(skills["programming"], "python") {
		t.Errorf("programming = %v, want canonical lowercase python", skills["programming"])
	}
	if !slices.Contains(skills["databases"], "mongodb") {
		t.Errorf("databases = %v, want mongodb", skills["databases"])
	}
}

// Substring containment is the documented matching rule, so a resume
// mentioning only javascript also reports java.
func TestExtractSkillsSubstringContainment(t *testing.T) {
	skills := ExtractSkills("Expert in JavaScript")

	if !slices.Contains(skills["programming"], "javascript") {
		t.Errorf("programming = %v, want javascript", skills["programming"])
	}
	if !slices.Contains(skills["programming"], "java") {
		t.Errorf("programming = %v, want java (substring match)", skills["programming"])
	}
}

func TestExtractSkillsTaxonomyOrder(t *testing.T) {
	skills := ExtractSkills("java and python and javascript")

	// "r" rides along as a substring of javascript; it sits after java in
	// the taxonomy.
	want := []string{"javascript", "python", "java", "r"}
	if !slices.Equal(skills["programming"], want) {
		t.Errorf("programming = %v, want taxonomy order %v", skills["programming"], want)
	}
}

func TestExtractSkillsEmptyInput(t *testing.T) {
	if skills := ExtractSkills(""); len(skills) != 0 {
		t.Errorf("ExtractSkills(\"\") = %v, want empty", skills)
	}
}

func BenchmarkExtractSkills(b *testing.B) {
	text := strings.Repeat("python react docker postgresql aws kubernetes typescript ", 100)
	for b.Loop() {
		ExtractSkills(text)
	}
}
