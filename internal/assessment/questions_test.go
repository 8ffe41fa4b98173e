package assessment

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktsarnakliyski/JobSpresso/internal/types"
)

func coverageByID(items []types.QuestionCoverageItem) map[string]types.QuestionCoverageItem {
	m := make(map[string]types.QuestionCoverageItem, len(items))
	for _, q := range items {
		m[q.QuestionID] = q
	}
	return m
}

func TestQuestionAnalyzerFullCatalog(t *testing.T) {
	a := NewQuestionAnalyzer()
	items := a.Analyze("nothing relevant here", nil)

	assert.Len(t, items, len(candidateQuestions))
	for _, q := range items {
		assert.False(t, q.IsAnswered, "question %s", q.QuestionID)
		assert.NotEmpty(t, q.Suggestion, "question %s", q.QuestionID)
		assert.Empty(t, q.Evidence, "question %s", q.QuestionID)
	}
}

func TestQuestionAnalyzerDetection(t *testing.T) {
	a := NewQuestionAnalyzer()
	text := "Salary range $90,000 - $110,000. Fully remote. You'll build " +
		"data pipelines with a team of 5. We offer mentorship and benefits " +
		"like health insurance. Must-have: 3+ years of experience. " +
		"Our hiring process has 2 rounds of interviews. Start date: immediately. " +
		"Reporting to the VP of Engineering."

	byID := coverageByID(a.Analyze(text, nil))
	require.Len(t, byID, len(candidateQuestions))

	for _, id := range []string{
		"compensation", "remote_policy", "day_to_day", "growth_opportunities",
		"team_culture", "benefits", "requirements_clarity", "hiring_process",
		"start_date", "reporting_structure",
	} {
		q, ok := byID[id]
		require.True(t, ok, "missing question %s", id)
		assert.True(t, q.IsAnswered, "question %s", id)
		assert.NotEmpty(t, q.Evidence, "question %s", id)
		assert.Empty(t, q.Suggestion, "question %s", id)
	}
}

func TestQuestionAnalyzerSkipsExcludedTopics(t *testing.T) {
	a := NewQuestionAnalyzer()
	excluded := map[string]bool{"salary": true, "benefits": true}

	byID := coverageByID(a.Analyze("Fully remote role.", excluded))

	assert.Len(t, byID, len(candidateQuestions)-2)
	assert.NotContains(t, byID, "compensation")
	assert.NotContains(t, byID, "benefits")
	assert.Contains(t, byID, "remote_policy")
}

func TestQuestionAnalyzerEvidenceEllipses(t *testing.T) {
	a := NewQuestionAnalyzer()
	pad := strings.Repeat("x ", 60)
	text := pad + "the salary range is generous" + pad

	byID := coverageByID(a.Analyze(text, nil))
	q := byID["compensation"]
	require.True(t, q.IsAnswered)
	assert.True(t, strings.HasPrefix(q.Evidence, "..."))
	assert.True(t, strings.HasSuffix(q.Evidence, "..."))
	assert.Contains(t, q.Evidence, "salary")
}

func TestQuestionAnalyzerEvidenceNoEllipsesAtEdges(t *testing.T) {
	a := NewQuestionAnalyzer()
	byID := coverageByID(a.Analyze("salary range provided", nil))
	q := byID["compensation"]
	require.True(t, q.IsAnswered)
	assert.Equal(t, "salary range provided", q.Evidence)
}

func TestQuestionAnalyzerEvidenceValidUTF8(t *testing.T) {
	a := NewQuestionAnalyzer()
	pad := strings.Repeat("€", 40)
	text := pad + " salary range €60,000-€80,000 " + pad

	byID := coverageByID(a.Analyze(text, nil))
	q := byID["compensation"]
	require.True(t, q.IsAnswered)
	assert.True(t, utf8.ValidString(q.Evidence))
	assert.Contains(t, q.Evidence, "salary")
}

func TestExcerptAroundSnapsToRuneBoundaries(t *testing.T) {
	text := strings.Repeat("é", 100)
	for start := 0; start < len(text); start += 7 {
		excerpt := excerptAround(text, start, start+2)
		assert.True(t, utf8.ValidString(excerpt), "start %d", start)
	}
}

func TestEstimateApplicationBoost(t *testing.T) {
	a := NewQuestionAnalyzer()

	unanswered := func(ids ...string) []types.QuestionCoverageItem {
		var items []types.QuestionCoverageItem
		for _, q := range candidateQuestions {
			item := types.QuestionCoverageItem{QuestionID: q.ID, IsAnswered: true}
			for _, id := range ids {
				if q.ID == id {
					item.IsAnswered = false
				}
			}
			items = append(items, item)
		}
		return items
	}

	tests := []struct {
		name      string
		coverage  []types.QuestionCoverageItem
		biasCount int
		want      int
	}{
		{"all answered no bias", unanswered(), 0, 0},
		{"missing compensation", unanswered("compensation"), 0, 30},
		{"missing remote policy", unanswered("remote_policy"), 0, 10},
		{"missing requirements clarity", unanswered("requirements_clarity"), 0, 15},
		{"all three missing", unanswered("compensation", "remote_policy", "requirements_clarity"), 0, 55},
		{"bias issues capped at 20", unanswered(), 7, 20},
		{"bias issues under cap", unanswered(), 2, 10},
		{"everything", unanswered("compensation", "remote_policy", "requirements_clarity"), 10, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.EstimateApplicationBoost(tt.coverage, tt.biasCount)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}
