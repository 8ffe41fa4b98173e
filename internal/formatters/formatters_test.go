package formatters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktsarnakliyski/JobSpresso/internal/types"
)

func sampleResult() *types.AssessmentResult {
	boost := 22
	return &types.AssessmentResult{
		CategoryScores: map[types.Category]float64{
			types.CategoryInclusivity:  85,
			types.CategoryReadability:  70,
			types.CategoryStructure:    90,
			types.CategoryCompleteness: 60,
			types.CategoryClarity:      80,
			types.CategoryVoiceMatch:   75,
		},
		OverallScore:   77.75,
		Interpretation: types.InterpretationGood,
		Issues: []types.Issue{
			{
				Severity:    types.SeverityWarning,
				Category:    types.CategoryInclusivity,
				Description: "Gendered language detected",
				Found:       "rockstar",
				Suggestion:  "Use 'expert' instead",
			},
		},
		Positives:          []string{"Salary range is stated"},
		ImprovedText:       "We are hiring a senior engineer.",
		ImprovementApplied: true,
		CategoryEvidence: map[types.Category]types.CategoryEvidence{
			types.CategoryInclusivity: {
				Score:  85,
				Status: types.EvidenceStatusGood,
			},
		},
		QuestionCoverage: []types.QuestionCoverageItem{
			{QuestionID: "salary", QuestionText: "What does it pay?", IsAnswered: true},
			{QuestionID: "remote", QuestionText: "Can I work remotely?", IsAnswered: false, Suggestion: "State the work location policy"},
		},
		QuestionsAnswered:       1,
		QuestionsTotal:          2,
		QuestionCoveragePercent: 50,
		EstimatedBoost:          &boost,
	}
}

func TestTextFormatter(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleResult(), "text")
	require.NoError(t, err)

	assert.Contains(t, out, "=== JOB DESCRIPTION ASSESSMENT ===")
	assert.Contains(t, out, "Overall Score: 78/100 (good)")
	assert.Contains(t, out, "Inclusivity:   85/100 (weight 25%)")
	assert.Contains(t, out, "[WARNING] Inclusivity: Gendered language detected")
	assert.Contains(t, out, `Found: "rockstar"`)
	assert.Contains(t, out, "Fix: Use 'expert' instead")
	assert.Contains(t, out, "Answered 1 of 2 candidate questions (50%)")
	assert.Contains(t, out, "[x] What does it pay?")
	assert.Contains(t, out, "[ ] Can I work remotely?")
	assert.Contains(t, out, "Estimated application boost: +22%")
	assert.Contains(t, out, "=== IMPROVED JOB DESCRIPTION ===")
	assert.Contains(t, out, "We are hiring a senior engineer.")
}

func TestTextFormatterWithoutImprovement(t *testing.T) {
	result := sampleResult()
	result.ImprovementApplied = false
	result.ImprovedText = ""

	out, err := GlobalRegistry.Format(result, "text")
	require.NoError(t, err)

	assert.NotContains(t, out, "=== IMPROVED JOB DESCRIPTION ===")
	assert.Contains(t, out, "Improved version unavailable; original text retained.")
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleResult(), "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "# Job Description Assessment")
	assert.Contains(t, out, "**Overall Score:** 78/100 (good)")
	assert.Contains(t, out, "| Category | Score | Weight | Status |")
	assert.Contains(t, out, "| Inclusivity | 85/100 | 25% | good |")
	assert.Contains(t, out, "### 1. [WARNING] Inclusivity")
	assert.Contains(t, out, "## Improved Job Description")
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleResult(), "json")
	require.NoError(t, err)

	var decoded types.AssessmentResult
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 77.75, decoded.OverallScore)
	assert.True(t, decoded.ImprovementApplied)
	require.NotNil(t, decoded.EstimatedBoost)
	assert.Equal(t, 22, *decoded.EstimatedBoost)
}

func TestJSONFallbackForUnknownType(t *testing.T) {
	out, err := GlobalRegistry.Format(map[string]string{"hello": "world"}, "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"hello": "world"`)
}

func TestUnknownFormat(t *testing.T) {
	_, err := GlobalRegistry.Format(sampleResult(), "yaml")
	assert.Error(t, err)
}

func TestTextFormatterRejectsUnknownType(t *testing.T) {
	_, err := (&AssessmentTextFormatter{}).Format(42)
	assert.Error(t, err)
}
