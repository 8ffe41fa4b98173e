package assessment

import (
	"regexp"
	"sort"
	"strings"
)

var sectionPatterns = map[string][]*regexp.Regexp{
	"about": {
		regexp.MustCompile(`about\s+(us|the\s+company)`),
		regexp.MustCompile(`who\s+we\s+are`),
		regexp.MustCompile(`company\s+overview`),
	},
	"role": {
		regexp.MustCompile(`(the\s+)?role`),
		regexp.MustCompile(`position`),
		regexp.MustCompile(`what\s+you.?ll\s+do`),
		regexp.MustCompile(`responsibilities`),
	},
	"requirements": {
		regexp.MustCompile(`requirements?`),
		regexp.MustCompile(`qualifications?`),
		regexp.MustCompile(`what\s+you.?ll?\s+(need|bring)`),
		regexp.MustCompile(`must\s+have`),
	},
	"benefits": {
		regexp.MustCompile(`benefits?`),
		regexp.MustCompile(`what\s+we\s+offer`),
		regexp.MustCompile(`perks?`),
		regexp.MustCompile(`compensation`),
	},
	"nice_to_have": {
		regexp.MustCompile(`nice\s+to\s+have`),
		regexp.MustCompile(`bonus`),
		regexp.MustCompile(`preferred`),
		regexp.MustCompile(`plus`),
	},
}

var (
	bulletMarkerRe = regexp.MustCompile(`(?m)^(?:[-*\x{2022}]|\d+\.|[a-z]\))`)
	headerRe       = regexp.MustCompile(`(?m)^#+\s|^[A-Z][A-Za-z\s]+:?\s*$`)
)

// detectSections reports which common section types appear in text.
func detectSections(text string) map[string]bool {
	lower := strings.ToLower(text)
	found := make(map[string]bool, len(sectionPatterns))
	for section, patterns := range sectionPatterns {
		for _, p := range patterns {
			if p.MatchString(lower) {
				found[section] = true
				break
			}
		}
	}
	return found
}

// StructureScore rates sectioning and scanability on a 0-100 scale. Core
// sections carry fixed weights, bullets and headers add small bonuses.
func StructureScore(text string) float64 {
	sections := detectSections(text)
	score := 0.0

	if sections["about"] {
		score += 15
	}
	if sections["role"] {
		score += 25
	}
	if sections["requirements"] {
		score += 30
	}
	if sections["benefits"] {
		score += 20
	}
	if sections["nice_to_have"] {
		score += 10
	}

	if bulletMarkerRe.MatchString(text) {
		score = min(100, score+10)
	}
	if headerRe.MatchString(text) {
		score = min(100, score+5)
	}

	return min(100, score)
}

var completenessChecks = map[string]*regexp.Regexp{
	"salary":              regexp.MustCompile(`\$\d|€\d|£\d|\d+k|\d{2},?\d{3}|salary|compensation|pay\s+range`),
	"location":            regexp.MustCompile(`remote|hybrid|on-?site|office|location|based\s+in|\bcity\b`),
	"team_size":           regexp.MustCompile(`\d+[-\s]person|\d+\s+people|team\s+of\s+\d|small\s+team|large\s+team`),
	"benefits":            regexp.MustCompile(`benefits?|health|insurance|401k|pto|vacation|equity|stock`),
	"requirements_listed": regexp.MustCompile(`requirements?|qualifications?|must\s+have|you.?ll\s+need`),
}

// completenessWeights favors salary transparency, which research shows has
// the biggest impact on application rates.
var completenessWeights = map[string]float64{
	"salary":              30,
	"location":            20,
	"requirements_listed": 25,
	"benefits":            15,
	"team_size":           10,
}

// checkCompleteness reports which key pieces of information are present.
func checkCompleteness(text string) map[string]bool {
	lower := strings.ToLower(text)
	present := make(map[string]bool, len(completenessChecks))
	for field, re := range completenessChecks {
		present[field] = re.MatchString(lower)
	}
	return present
}

// CompletenessScore rates information completeness and returns the missing
// fields. Excluded fields are neither penalized nor reported; the remaining
// weights are rescaled to sum to 100. With every field excluded the score
// is a perfect 100.
func CompletenessScore(text string, excluded map[string]bool) (float64, []string) {
	checks := checkCompleteness(text)

	totalActive := 0.0
	for field, w := range completenessWeights {
		if !excluded[field] {
			totalActive += w
		}
	}

	score := 100.0
	if totalActive > 0 {
		scale := 100 / totalActive
		score = 0
		for field, present := range checks {
			if present && !excluded[field] {
				score += completenessWeights[field] * scale
			}
		}
	}

	var missing []string
	for field, present := range checks {
		if !present && !excluded[field] {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)

	return score, missing
}

// biasTermRes holds a word-boundary regexp per bias term so "fresh" never
// matches inside "freshman" and phrases match as whole phrases.
var biasTermRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(biasTerms))
	for term := range biasTerms {
		res[term] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return res
}()

// DetectBiasWords returns detected bias terms grouped by category, matched
// case-insensitively on word boundaries. Each term is reported at most once
// per category regardless of repetition.
func DetectBiasWords(text string) map[string][]string {
	lower := strings.ToLower(text)

	found := make(map[string][]string)
	for term, info := range biasTerms {
		if biasTermRes[term].MatchString(lower) {
			found[info.Category] = append(found[info.Category], term)
		}
	}
	for _, terms := range found {
		sort.Strings(terms)
	}
	return found
}

// LengthScore rates word count on a 0-100 scale. The sweet spot is 300-650
// words.
func LengthScore(text string) float64 {
	n := float64(len(strings.Fields(text)))

	switch {
	case n >= 300 && n <= 650:
		return 100
	case n < 300:
		return max(50, 100-(300-n)*0.25)
	case n <= 700:
		return max(80, 100-(n-650)*0.4)
	default:
		return max(40, 100-(n-650)*0.15)
	}
}
