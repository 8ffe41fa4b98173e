package ai

import (
	"context"

	"github.com/ktsarnakliyski/JobSpresso/internal/types"
)

// AIProvider interface for different AI implementations
// All methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	AnalyzeAssessment(ctx context.Context, input types.AnalyzeAssessmentInput) (*types.AnalysisOpinion, *TokenUsage, error)
	GenerateImprovement(ctx context.Context, input types.GenerateImprovementInput) (string, *TokenUsage, error)
	GenerateJobDescription(ctx context.Context, input types.GenerateJobInput) (*types.GeneratedJobDescription, *TokenUsage, error)
	ExtractVoiceProfile(ctx context.Context, input types.ExtractVoiceInput) (*types.VoiceExtraction, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
