package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktsarnakliyski/JobSpresso/internal/types"
)

func TestDetectBiasIssues(t *testing.T) {
	d := NewIssueDetector()
	issues := d.DetectBiasIssues("We need a coding ninja with culture fit.")

	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, types.SeverityWarning, issue.Severity)
		assert.Equal(t, types.CategoryInclusivity, issue.Category)
		assert.NotEmpty(t, issue.Suggestion)
	}

	byFound := make(map[string]types.Issue)
	for _, issue := range issues {
		byFound[issue.Found] = issue
	}
	assert.Equal(t, "expert", byFound["ninja"].Suggestion)
	assert.Equal(t, "values alignment", byFound["culture fit"].Suggestion)
	assert.Equal(t, "Found problematic-coded word: 'ninja'", byFound["ninja"].Description)
}

func TestDetectCompletenessIssuesVagueSalary(t *testing.T) {
	d := NewIssueDetector()
	issues := d.DetectCompletenessIssues("We offer competitive salary and great benefits.", nil)

	var vague *types.Issue
	for i := range issues {
		if issues[i].Description == "Missing salary range specifics" {
			vague = &issues[i]
		}
		// The salary keyword is present so plain "Missing salary" must not fire.
		assert.NotEqual(t, "Missing salary", issues[i].Description)
	}

	require.NotNil(t, vague, "expected a vague salary issue")
	assert.Equal(t, types.SeverityCritical, vague.Severity)
	assert.Equal(t, types.CategoryCompleteness, vague.Category)
}

func TestDetectCompletenessIssuesNoVagueSalaryWithSpecifics(t *testing.T) {
	d := NewIssueDetector()
	issues := d.DetectCompletenessIssues("Salary: $90,000 - $110,000.", nil)

	for _, issue := range issues {
		assert.NotEqual(t, "Missing salary range specifics", issue.Description)
	}
}

func TestDetectCompletenessIssuesMissingSalaryIsCritical(t *testing.T) {
	d := NewIssueDetector()
	issues := d.DetectCompletenessIssues("Remote role on a team of 3.", nil)

	bySeverity := make(map[string]types.Severity)
	for _, issue := range issues {
		bySeverity[issue.Description] = issue.Severity
	}

	assert.Equal(t, types.SeverityCritical, bySeverity["Missing salary"])
	assert.Equal(t, types.SeverityWarning, bySeverity["Missing benefits"])
	assert.Equal(t, types.SeverityWarning, bySeverity["Missing requirements listed"])
}

func TestDetectCompletenessIssuesRespectsExclusions(t *testing.T) {
	d := NewIssueDetector()
	excluded := map[string]bool{"salary": true}
	issues := d.DetectCompletenessIssues("We pay a competitive salary.", excluded)

	for _, issue := range issues {
		assert.NotContains(t, issue.Description, "salary")
	}
}

func TestDetectReadabilityIssues(t *testing.T) {
	d := NewIssueDetector()

	assert.Empty(t, d.DetectReadabilityIssues("We build simple tools. You will like it here. The work is good."))

	complex := "Notwithstanding heterogeneous organizational interdependencies and " +
		"multidisciplinary transformational methodologies, prospective candidates " +
		"should demonstrate comprehensive operationalization capabilities across " +
		"intersectional stakeholder environments necessitating substantial " +
		"organizational communication sophistication"
	issues := d.DetectReadabilityIssues(complex)
	require.Len(t, issues, 1)
	assert.Equal(t, "Reading level too complex", issues[0].Description)
	assert.Equal(t, types.SeverityWarning, issues[0].Severity)
}

func TestConflictsWithExclusions(t *testing.T) {
	d := NewIssueDetector()
	excluded := map[string]bool{"salary": true}

	salaryIssue := types.Issue{
		Description: "Missing salary information",
		Suggestion:  "Add a pay range",
	}
	assert.True(t, d.ConflictsWithExclusions(salaryIssue, excluded))

	toneIssue := types.Issue{
		Description: "Tone is overly formal",
		Suggestion:  "Use simpler wording",
	}
	assert.False(t, d.ConflictsWithExclusions(toneIssue, excluded))

	assert.False(t, d.ConflictsWithExclusions(salaryIssue, nil))
}

func TestDetectAllRespectsProfile(t *testing.T) {
	d := NewIssueDetector()
	profile := &types.VoiceProfile{
		Rules: []types.Rule{
			{Text: "Never include salary information", RuleType: types.RuleTypeCustom, Active: true},
		},
	}

	issues := d.DetectAll("A rockstar role on our team of 4.", profile)

	foundBias := false
	for _, issue := range issues {
		assert.NotContains(t, issue.Description, "salary")
		if issue.Found == "rockstar" {
			foundBias = true
		}
	}
	assert.True(t, foundBias)
}
