package assessment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ktsarnakliyski/JobSpresso/internal/errors"
	"github.com/ktsarnakliyski/JobSpresso/internal/types"
)

type fakeAnalyzer struct {
	opinion        *types.AnalysisOpinion
	analyzeErr     error
	improved       string
	improveErr     error
	lastImproveRun *types.GenerateImprovementInput
}

func (f *fakeAnalyzer) AnalyzeAssessment(_ context.Context, _ types.AnalyzeAssessmentInput) (*types.AnalysisOpinion, error) {
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	if f.opinion != nil {
		return f.opinion, nil
	}
	return &types.AnalysisOpinion{}, nil
}

func (f *fakeAnalyzer) GenerateImprovement(_ context.Context, input types.GenerateImprovementInput) (string, error) {
	f.lastImproveRun = &input
	if f.improveErr != nil {
		return "", f.improveErr
	}
	return f.improved, nil
}

func floatPtr(v float64) *float64 { return &v }

func newTestService(ai Analyzer) *Service {
	logger, _ := apperrors.New("error", "")
	return NewService(ai, logger)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	svc := newTestService(&fakeAnalyzer{})

	_, err := svc.Analyze(context.Background(), "   \n ", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAnalyzeHardFailsWhenAnalysisFails(t *testing.T) {
	upstream := apperrors.NewUpstreamError(apperrors.ErrCodeAIServiceFailed, "model unavailable", nil)
	svc := newTestService(&fakeAnalyzer{analyzeErr: upstream})

	_, err := svc.Analyze(context.Background(), "Some job description text.", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestAnalyzeMergePrefersDeterministicScores(t *testing.T) {
	ai := &fakeAnalyzer{
		opinion: &types.AnalysisOpinion{
			Scores: types.OpinionScores{
				Inclusivity: floatPtr(55),
				Clarity:     floatPtr(62),
			},
		},
		improved: "improved text",
	}
	svc := newTestService(ai)

	result, err := svc.Analyze(context.Background(), "We offer a salary range of $90,000 - $110,000. Remote.", nil)
	require.NoError(t, err)

	// Deterministic categories come from the rule scorers, AI-only
	// categories from the opinion, and voice match defaults without a
	// profile.
	assert.Equal(t, ReadabilityScore("We offer a salary range of $90,000 - $110,000. Remote."),
		result.CategoryScores[types.CategoryReadability])
	assert.Equal(t, 55.0, result.CategoryScores[types.CategoryInclusivity])
	assert.Equal(t, 62.0, result.CategoryScores[types.CategoryClarity])
	assert.Equal(t, 75.0, result.CategoryScores[types.CategoryVoiceMatch])
}

func TestAnalyzeVoiceMatchIgnoredWithoutProfile(t *testing.T) {
	ai := &fakeAnalyzer{
		opinion: &types.AnalysisOpinion{
			Scores: types.OpinionScores{VoiceMatch: floatPtr(12)},
		},
		improved: "improved",
	}
	svc := newTestService(ai)

	result, err := svc.Analyze(context.Background(), "Some text about a role.", nil)
	require.NoError(t, err)
	assert.Equal(t, 75.0, result.CategoryScores[types.CategoryVoiceMatch])
}

func TestAnalyzeIssueDedupByDescription(t *testing.T) {
	// The rule detector emits "Missing salary" for this text; the AI
	// repeating it must collapse into a single issue.
	ai := &fakeAnalyzer{
		opinion: &types.AnalysisOpinion{
			Issues: []types.IssueOpinion{
				{Severity: "critical", Category: "completeness", Description: "Missing salary"},
				{Severity: "info", Category: "clarity", Description: "Opening paragraph is wordy"},
			},
		},
		improved: "improved",
	}
	svc := newTestService(ai)

	result, err := svc.Analyze(context.Background(), "Remote team of 3. Requirements: Go. Benefits: PTO.", nil)
	require.NoError(t, err)

	count := 0
	for _, issue := range result.Issues {
		if issue.Description == "Missing salary" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	found := false
	for _, issue := range result.Issues {
		if issue.Description == "Opening paragraph is wordy" {
			found = true
			assert.Equal(t, types.SeverityInfo, issue.Severity)
		}
	}
	assert.True(t, found)
}

func TestAnalyzeIssuesSortedBySeverity(t *testing.T) {
	ai := &fakeAnalyzer{
		opinion: &types.AnalysisOpinion{
			Issues: []types.IssueOpinion{
				{Severity: "info", Category: "clarity", Description: "Minor nit"},
				{Severity: "critical", Category: "clarity", Description: "Major confusion"},
			},
		},
		improved: "improved",
	}
	svc := newTestService(ai)

	result, err := svc.Analyze(context.Background(), "A rockstar engineer role.", nil)
	require.NoError(t, err)
	require.NotEmpty(t, result.Issues)

	for i := 1; i < len(result.Issues); i++ {
		assert.GreaterOrEqual(t, result.Issues[i-1].Severity, result.Issues[i].Severity)
	}
}

func TestAnalyzeFiltersAIIssuesForExcludedTopics(t *testing.T) {
	ai := &fakeAnalyzer{
		opinion: &types.AnalysisOpinion{
			Issues: []types.IssueOpinion{
				{Severity: "warning", Category: "completeness", Description: "Consider adding a salary range"},
			},
		},
		improved: "improved",
	}
	svc := newTestService(ai)

	profile := &types.VoiceProfile{
		Rules: []types.Rule{
			{Text: "excluded", RuleType: types.RuleTypeExclude, Target: "salary", Active: true},
		},
	}

	result, err := svc.Analyze(context.Background(), "Remote team of 3. Requirements: Go. Benefits: PTO.", profile)
	require.NoError(t, err)

	for _, issue := range result.Issues {
		assert.NotContains(t, issue.Description, "salary")
	}

	// The compensation question is skipped entirely for the excluded topic.
	for _, q := range result.QuestionCoverage {
		assert.NotEqual(t, "compensation", q.QuestionID)
	}
}

func TestAnalyzeImprovementFallback(t *testing.T) {
	text := "A plain job description with a salary range of $90,000."
	ai := &fakeAnalyzer{
		improveErr: apperrors.NewUpstreamError(apperrors.ErrCodeAIServiceFailed, "timeout", nil),
	}
	svc := newTestService(ai)

	result, err := svc.Analyze(context.Background(), text, nil)
	require.NoError(t, err)
	assert.Equal(t, text, result.ImprovedText)
	assert.False(t, result.ImprovementApplied)
}

func TestAnalyzeImprovementApplied(t *testing.T) {
	ai := &fakeAnalyzer{improved: "A much better posting."}
	svc := newTestService(ai)

	result, err := svc.Analyze(context.Background(), "An ordinary posting.", nil)
	require.NoError(t, err)
	assert.Equal(t, "A much better posting.", result.ImprovedText)
	assert.True(t, result.ImprovementApplied)
}

func TestAnalyzeImprovementReceivesFullContext(t *testing.T) {
	ai := &fakeAnalyzer{improved: "better"}
	svc := newTestService(ai)

	_, err := svc.Analyze(context.Background(), "A rockstar role with no info.", nil)
	require.NoError(t, err)

	require.NotNil(t, ai.lastImproveRun)
	assert.Len(t, ai.lastImproveRun.Scores, 6)
	assert.NotEmpty(t, ai.lastImproveRun.Issues)
	assert.Equal(t, "A rockstar role with no info.", ai.lastImproveRun.OriginalText)
}

func TestAnalyzeBoostAndCoverageCounters(t *testing.T) {
	ai := &fakeAnalyzer{improved: "better"}
	svc := newTestService(ai)

	result, err := svc.Analyze(context.Background(), "Nothing useful is said here at all.", nil)
	require.NoError(t, err)

	assert.Equal(t, len(candidateQuestions), result.QuestionsTotal)
	assert.Equal(t, 0, result.QuestionsAnswered)
	assert.Equal(t, 0, result.QuestionCoveragePercent)
	require.NotNil(t, result.EstimatedBoost)
	// Compensation, remote policy and requirements clarity are all
	// unanswered: 30 + 10 + 15.
	assert.Equal(t, 55, *result.EstimatedBoost)
}

func TestAnalyzeEvidenceFallbackOpportunities(t *testing.T) {
	ai := &fakeAnalyzer{improved: "better"}
	svc := newTestService(ai)

	result, err := svc.Analyze(context.Background(), "A short posting.", nil)
	require.NoError(t, err)

	require.Len(t, result.CategoryEvidence, 6)
	assert.Equal(t, "Add missing information like salary, location, or benefits",
		result.CategoryEvidence[types.CategoryCompleteness].Opportunity)
	assert.Equal(t, "Simplify language to 8th grade reading level",
		result.CategoryEvidence[types.CategoryReadability].Opportunity)
	for _, ev := range result.CategoryEvidence {
		assert.NotEmpty(t, ev.Opportunity)
		assert.LessOrEqual(t, len(ev.SupportingExcerpts), 3)
	}
}
