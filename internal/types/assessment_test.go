package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryWeightsSumTo100(t *testing.T) {
	total := 0
	for _, c := range AllCategories() {
		total += c.Weight()
	}
	assert.Equal(t, 100, total)
}

func TestAllCategoriesCoversEveryWeight(t *testing.T) {
	assert.Len(t, AllCategories(), 6)
	for _, c := range AllCategories() {
		assert.Greater(t, c.Weight(), 0, "category %s", c)
		assert.NotEmpty(t, c.Label(), "category %s", c)
	}
}

func TestOverallScoreWeightedAverage(t *testing.T) {
	scores := map[Category]float64{
		CategoryInclusivity:  80,
		CategoryReadability:  70,
		CategoryStructure:    90,
		CategoryCompleteness: 60,
		CategoryClarity:      85,
		CategoryVoiceMatch:   75,
	}

	overall := OverallScore(scores)
	assert.Equal(t, 76.25, overall)
	assert.Equal(t, InterpretationGood, InterpretationForScore(overall))
}

func TestInterpretationBands(t *testing.T) {
	tests := []struct {
		score float64
		want  Interpretation
	}{
		{95, InterpretationExcellent},
		{90, InterpretationExcellent},
		{89.9, InterpretationGood},
		{75, InterpretationGood},
		{74.9, InterpretationNeedsWork},
		{60, InterpretationNeedsWork},
		{59.9, InterpretationPoor},
		{40, InterpretationPoor},
		{39.9, InterpretationCritical},
		{0, InterpretationCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InterpretationForScore(tt.score), "score %v", tt.score)
	}
}

func TestEvidenceStatusBands(t *testing.T) {
	assert.Equal(t, EvidenceStatusGood, EvidenceStatusForScore(80))
	assert.Equal(t, EvidenceStatusWarning, EvidenceStatusForScore(79.9))
	assert.Equal(t, EvidenceStatusWarning, EvidenceStatusForScore(50))
	assert.Equal(t, EvidenceStatusCritical, EvidenceStatusForScore(49.9))
}

func TestSeverityOrderingAndJSON(t *testing.T) {
	assert.Greater(t, SeverityCritical, SeverityWarning)
	assert.Greater(t, SeverityWarning, SeverityInfo)

	data, err := json.Marshal(SeverityCritical)
	require.NoError(t, err)
	assert.Equal(t, `"critical"`, string(data))

	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"warning"`), &s))
	assert.Equal(t, SeverityWarning, s)
}

func TestSeverityFromString(t *testing.T) {
	tests := []struct {
		in     string
		want   Severity
		wantOK bool
	}{
		{"critical", SeverityCritical, true},
		{"warning", SeverityWarning, true},
		{"info", SeverityInfo, true},
		{"nonsense", SeverityInfo, false},
	}
	for _, tt := range tests {
		got, ok := SeverityFromString(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
	}
}

func TestCategoryFromString(t *testing.T) {
	c, ok := CategoryFromString("inclusivity")
	assert.True(t, ok)
	assert.Equal(t, CategoryInclusivity, c)

	c, ok = CategoryFromString("voice_match")
	assert.True(t, ok)
	assert.Equal(t, CategoryVoiceMatch, c)

	_, ok = CategoryFromString("made_up")
	assert.False(t, ok)
}

func TestCoveragePercent(t *testing.T) {
	assert.Equal(t, 0, CoveragePercent(0, 10))
	assert.Equal(t, 50, CoveragePercent(5, 10))
	assert.Equal(t, 100, CoveragePercent(10, 10))
	assert.Equal(t, 0, CoveragePercent(0, 0))
	assert.Equal(t, 33, CoveragePercent(1, 3))
}

func TestCoveragePercentRoundsHalfToEven(t *testing.T) {
	assert.Equal(t, 12, CoveragePercent(1, 8))
	assert.Equal(t, 38, CoveragePercent(3, 8))
	assert.Equal(t, 62, CoveragePercent(5, 8))
	assert.Equal(t, 88, CoveragePercent(7, 8))
}
