package assessment

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ktsarnakliyski/JobSpresso/internal/types"
)

// impactMessages explain the cost of missing information to the reader.
var impactMessages = map[string]string{
	"salary":              "66% less engagement without salary transparency",
	"location":            "Candidates need to know work arrangement",
	"benefits":            "28% of candidates specifically look for benefits",
	"team_size":           "Helps candidates understand the role context",
	"requirements_listed": "Clear requirements reduce unqualified applications",
}

var (
	salaryWordRe     = regexp.MustCompile(`\bsalary\b|\bcompensation\b|\bpay\b`)
	salarySpecificRe = regexp.MustCompile(`\$\d|€\d|£\d|\d+k|\d{2,3},?\d{3}|pay\s+range`)
)

// IssueDetector finds problems in posting text using deterministic rules.
type IssueDetector struct{}

func NewIssueDetector() *IssueDetector {
	return &IssueDetector{}
}

// DetectBiasIssues reports a warning for each detected bias term with a
// suggested replacement.
func (d *IssueDetector) DetectBiasIssues(text string) []types.Issue {
	var issues []types.Issue

	found := DetectBiasWords(text)
	categories := make([]string, 0, len(found))
	for c := range found {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, biasType := range categories {
		for _, word := range found[biasType] {
			issues = append(issues, types.Issue{
				Severity:    types.SeverityWarning,
				Category:    types.CategoryInclusivity,
				Description: fmt.Sprintf("Found %s-coded word: '%s'", biasType, word),
				Found:       word,
				Suggestion:  BiasReplacement(word),
				Impact:      "May discourage diverse candidates from applying",
			})
		}
	}

	return issues
}

// DetectCompletenessIssues reports missing information, skipping excluded
// fields. A missing salary is critical, everything else a warning. A salary
// mention without concrete figures gets its own critical issue.
func (d *IssueDetector) DetectCompletenessIssues(text string, excluded map[string]bool) []types.Issue {
	var issues []types.Issue

	_, missing := CompletenessScore(text, excluded)
	for _, field := range missing {
		severity := types.SeverityWarning
		if field == "salary" {
			severity = types.SeverityCritical
		}

		label := strings.ReplaceAll(field, "_", " ")
		impact, ok := impactMessages[field]
		if !ok {
			impact = "Improves candidate decision-making"
		}

		issues = append(issues, types.Issue{
			Severity:    severity,
			Category:    types.CategoryCompleteness,
			Description: "Missing " + label,
			Suggestion:  "Add " + label + " information",
			Impact:      impact,
		})
	}

	if !excluded["salary"] {
		lower := strings.ToLower(text)
		if salaryWordRe.MatchString(lower) && !salarySpecificRe.MatchString(lower) {
			issues = append(issues, types.Issue{
				Severity:    types.SeverityCritical,
				Category:    types.CategoryCompleteness,
				Description: "Missing salary range specifics",
				Suggestion:  "Add specific salary range (e.g., $80,000 - $100,000)",
				Impact:      "66% less engagement without salary transparency",
			})
		}
	}

	return issues
}

// DetectReadabilityIssues flags text that reads above the target grade level.
func (d *IssueDetector) DetectReadabilityIssues(text string) []types.Issue {
	if ReadabilityScore(text) >= 60 {
		return nil
	}

	return []types.Issue{{
		Severity:    types.SeverityWarning,
		Category:    types.CategoryReadability,
		Description: "Reading level too complex",
		Suggestion:  "Simplify language to 8th grade reading level",
		Impact:      "Higher readability increases application rates",
	}}
}

// DetectAll runs every deterministic detector, respecting voice profile
// exclusions.
func (d *IssueDetector) DetectAll(text string, profile *types.VoiceProfile) []types.Issue {
	excluded := ExcludedFields(profile)

	var issues []types.Issue
	issues = append(issues, d.DetectBiasIssues(text)...)
	issues = append(issues, d.DetectCompletenessIssues(text, excluded)...)
	issues = append(issues, d.DetectReadabilityIssues(text)...)
	return issues
}

// ConflictsWithExclusions reports whether an AI-suggested issue would push
// the user toward a topic their voice profile explicitly rules out.
func (d *IssueDetector) ConflictsWithExclusions(issue types.Issue, excluded map[string]bool) bool {
	return IssueMentionsExcludedField(issue.Description, issue.Found, issue.Suggestion, excluded)
}
