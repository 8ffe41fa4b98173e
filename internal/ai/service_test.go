package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktsarnakliyski/JobSpresso/internal/types"
)

// stubProvider records which operations ran so facade routing can be checked.
type stubProvider struct {
	calls []string

	opinion    *types.AnalysisOpinion
	improved   string
	generated  *types.GeneratedJobDescription
	extraction *types.VoiceExtraction
	err        error
}

func (s *stubProvider) AnalyzeAssessment(ctx context.Context, input types.AnalyzeAssessmentInput) (*types.AnalysisOpinion, *TokenUsage, error) {
	s.calls = append(s.calls, "analyze")
	return s.opinion, nil, s.err
}

func (s *stubProvider) GenerateImprovement(ctx context.Context, input types.GenerateImprovementInput) (string, *TokenUsage, error) {
	s.calls = append(s.calls, "improve")
	return s.improved, nil, s.err
}

func (s *stubProvider) GenerateJobDescription(ctx context.Context, input types.GenerateJobInput) (*types.GeneratedJobDescription, *TokenUsage, error) {
	s.calls = append(s.calls, "generate")
	return s.generated, nil, s.err
}

func (s *stubProvider) ExtractVoiceProfile(ctx context.Context, input types.ExtractVoiceInput) (*types.VoiceExtraction, *TokenUsage, error) {
	s.calls = append(s.calls, "extract")
	return s.extraction, nil, s.err
}

func (s *stubProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	return &ModelInfo{Name: "stub", Available: true}
}

func (s *stubProvider) Close() error { return nil }

func newStubFacade(analyzeStub, improveStub *stubProvider) *Facade {
	return &Facade{
		analyze: &Service{Provider: analyzeStub},
		improve: &Service{Provider: improveStub},
	}
}

func TestFacadeGenerationRidesImproveOperation(t *testing.T) {
	analyzeStub := &stubProvider{}
	improveStub := &stubProvider{
		generated: &types.GeneratedJobDescription{GeneratedJD: "## Role", WordCount: 2, Notes: []string{}},
	}
	facade := newStubFacade(analyzeStub, improveStub)

	result, err := facade.GenerateJobDescription(context.Background(), types.GenerateJobInput{
		RoleTitle:        "Engineer",
		Responsibilities: []string{"Ship"},
		Requirements:     []string{"Go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "## Role", result.GeneratedJD)
	assert.Equal(t, []string{"generate"}, improveStub.calls)
	assert.Empty(t, analyzeStub.calls)
}

func TestFacadeExtractionRidesAnalyzeOperation(t *testing.T) {
	analyzeStub := &stubProvider{
		extraction: &types.VoiceExtraction{Tone: "professional", AddressStyle: "direct_you"},
	}
	improveStub := &stubProvider{}
	facade := newStubFacade(analyzeStub, improveStub)

	result, err := facade.ExtractVoiceProfile(context.Background(), types.ExtractVoiceInput{
		ExampleJDs: []string{"Example JD"},
	})
	require.NoError(t, err)
	assert.Equal(t, "direct_you", result.AddressStyle)
	assert.Equal(t, []string{"extract"}, analyzeStub.calls)
	assert.Empty(t, improveStub.calls)
}

func TestFacadeAssessmentRouting(t *testing.T) {
	analyzeStub := &stubProvider{opinion: &types.AnalysisOpinion{}}
	improveStub := &stubProvider{improved: "better"}
	facade := newStubFacade(analyzeStub, improveStub)

	_, err := facade.AnalyzeAssessment(context.Background(), types.AnalyzeAssessmentInput{JobDescription: "jd"})
	require.NoError(t, err)

	improved, err := facade.GenerateImprovement(context.Background(), types.GenerateImprovementInput{OriginalText: "jd"})
	require.NoError(t, err)
	assert.Equal(t, "better", improved)

	assert.Equal(t, []string{"analyze"}, analyzeStub.calls)
	assert.Equal(t, []string{"improve"}, improveStub.calls)
}
