package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"google.golang.org/genai"
)

func TestIsTruncated(t *testing.T) {
	tests := []struct {
		name   string
		result *genai.GenerateContentResponse
		want   bool
	}{
		{
			name:   "nil response",
			result: nil,
			want:   false,
		},
		{
			name:   "no candidates",
			result: &genai.GenerateContentResponse{},
			want:   false,
		},
		{
			name: "normal stop",
			result: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{FinishReason: genai.FinishReasonStop},
				},
			},
			want: false,
		},
		{
			name: "hit token limit",
			result: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{FinishReason: genai.FinishReasonMaxTokens},
				},
			},
			want: true,
		},
		{
			name: "truncated among several candidates",
			result: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{FinishReason: genai.FinishReasonStop},
					{FinishReason: genai.FinishReasonMaxTokens},
				},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTruncated(tt.result))
		})
	}
}

func TestExtractTokenUsage(t *testing.T) {
	t.Run("nil metadata", func(t *testing.T) {
		assert.Nil(t, extractTokenUsage(&genai.GenerateContentResponse{}))
	})

	t.Run("counts mapped", func(t *testing.T) {
		result := &genai.GenerateContentResponse{
			UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
				PromptTokenCount:     120,
				CandidatesTokenCount: 300,
				TotalTokenCount:      420,
			},
		}

		usage := extractTokenUsage(result)
		if assert.NotNil(t, usage) {
			assert.Equal(t, int64(120), usage.InputTokens)
			assert.Equal(t, int64(300), usage.OutputTokens)
			assert.Equal(t, int64(420), usage.TotalTokens)
		}
	})
}
