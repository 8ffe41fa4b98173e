package assessment

import (
	"sort"
	"strings"
)

// FieldKeywords is the canonical mapping from a completeness field to the
// keywords that indicate it in free text. It is the single source of truth
// for field and topic matching across scoring, issue detection, and voice
// profile rule interpretation.
var FieldKeywords = map[string][]string{
	"salary":              {"salary", "compensation", "pay", "pay range", "wage"},
	"location":            {"location", "remote", "hybrid", "on-site", "office"},
	"benefits":            {"benefits", "perks", "insurance", "401k", "pto"},
	"team_size":           {"team", "team_size", "team size", "team of", "person team"},
	"requirements_listed": {"requirements", "qualifications"},
}

// QuestionToField maps candidate question IDs to the completeness field they
// cover, so questions about excluded topics can be skipped.
var QuestionToField = map[string]string{
	"compensation":         "salary",
	"remote_policy":        "location",
	"benefits":             "benefits",
	"team_culture":         "team_size",
	"requirements_clarity": "requirements_listed",
}

// biasTerm pairs a bias category with the suggested replacement wording.
type biasTerm struct {
	Category    string
	Replacement string
}

// biasTerms lists genuinely exclusionary or problematic wording. Legitimate
// professional qualities like "analytical" or "collaborative" are deliberately
// absent: imbalance in gender-coded language matters, not individual words.
var biasTerms = map[string]biasTerm{
	// Tech bro culture jargon
	"ninja":     {"problematic", "expert"},
	"rockstar":  {"problematic", "top performer"},
	"guru":      {"problematic", "specialist"},
	"wizard":    {"problematic", "expert"},
	"superhero": {"problematic", "high performer"},
	"unicorn":   {"problematic", "versatile professional"},
	// Potentially discriminatory phrases
	"culture fit":            {"problematic", "values alignment"},
	"native english speaker": {"problematic", "fluent English speaker"},
	// Unrealistic expectations
	"hit the ground running": {"problematic", "quickly onboard"},
	"wear many hats":         {"problematic", "take on varied responsibilities"},
	"fast-paced environment": {"problematic", "dynamic environment"},
	"work hard play hard":    {"problematic", "balanced work culture"},
	// Young bias
	"young":             {"ageist", "early-career"},
	"digital native":    {"ageist", "digitally fluent"},
	"recent graduate":   {"ageist", "entry-level candidate"},
	"fresh":             {"ageist", "new to the field"},
	"early career only": {"ageist", "entry-level"},
	// Old bias
	"overqualified": {"ageist", "highly experienced"},
}

// BiasReplacement returns the suggested replacement for a detected bias term,
// or a generic suggestion when no replacement is known.
func BiasReplacement(term string) string {
	if t, ok := biasTerms[strings.ToLower(term)]; ok {
		return t.Replacement
	}
	return "consider alternatives to '" + term + "'"
}

// BiasReplacements returns every known term and its replacement, sorted by
// term for deterministic prompt construction.
func BiasReplacements() [][2]string {
	terms := make([]string, 0, len(biasTerms))
	for term := range biasTerms {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	pairs := make([][2]string, 0, len(terms))
	for _, term := range terms {
		pairs = append(pairs, [2]string{term, biasTerms[term].Replacement})
	}
	return pairs
}

// exclusionPatterns mark exclusion intent in voice profile rule text.
var exclusionPatterns = []string{
	"never include",
	"don't include",
	"do not include",
	"exclude",
	"skip",
	"omit",
	"no salary",
	"no location",
	"no benefits",
	"no team",
	"without salary",
	"without location",
	"without benefits",
}

// FieldsFor returns every completeness field whose keywords appear in text.
// Matching is case-insensitive substring matching.
func FieldsFor(text string) map[string]bool {
	lower := strings.ToLower(text)
	fields := make(map[string]bool)

	for field, keywords := range FieldKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				fields[field] = true
				break
			}
		}
	}

	return fields
}

// IssueMentionsExcludedField reports whether the combined issue text mentions
// a keyword of any excluded field.
func IssueMentionsExcludedField(description, found, suggestion string, excluded map[string]bool) bool {
	if len(excluded) == 0 {
		return false
	}

	issueText := strings.ToLower(description + " " + found + " " + suggestion)

	for field := range excluded {
		keywords, ok := FieldKeywords[field]
		if !ok {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(issueText, kw) {
				return true
			}
		}
	}

	return false
}
