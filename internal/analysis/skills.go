package analysis

import (
	"strings"

	"resumelens/internal/types"
)

// skillCategory pairs a taxonomy category name with its keyword list.
// Keywords are canonical lowercase; within a category they stay in
// taxonomy order in the output.
type skillCategory struct {
	name     string
	keywords []string
}

// skillTaxonomy is the fixed fallback vocabulary scanned when no LLM
// extraction is available.
var skillTaxonomy = []skillCategory{
	{name: "programming", keywords: []string{
		"javascript", "python", "java", "typescript", "php", "ruby", "go", "rust",
		"c++", "c#", "swift", "kotlin", "scala", "perl", "r", "matlab",
	}},
	{name: "frameworks", keywords: []string{
		"react", "angular", "vue", "svelte", "nodejs", "express", "django",
		"flask", "spring", "laravel", "rails", "nextjs", "nuxt", "gatsby",
	}},
	{name: "tools", keywords: []string{
		"git", "github", "gitlab", "docker", "kubernetes", "jenkins", "circleci",
		"travis", "terraform", "ansible", "webpack", "babel", "eslint",
	}},
	{name: "databases", keywords: []string{
		"mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle",
		"cassandra", "dynamodb", "elasticsearch", "firebase",
	}},
	{name: "cloud", keywords: []string{
		"aws", "azure", "gcp", "heroku", "netlify", "vercel", "cloudflare",
		"s3", "ec2", "lambda", "cloudformation", "terraform",
	}},
}

// ExtractSkills scans text against the fixed taxonomy and returns only the
// categories and keywords actually found. Matching is case-insensitive
// substring containment, not token matching, so short keywords can collide
// with parts of longer words; that is an accepted limitation of the
// fallback path. Runs in time proportional to text length times taxonomy
// size and never errors.
func ExtractSkills(text string) types.SkillSet {
	lower := strings.ToLower(text)
	found := make(types.SkillSet)

	for _, cat := range skillTaxonomy {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				found[cat.name] = append(found[cat.name], kw)
			}
		}
	}

	return found
}
