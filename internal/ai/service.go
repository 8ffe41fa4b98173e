package ai

import (
	"context"
	"fmt"

	"github.com/ktsarnakliyski/JobSpresso/internal/config"
	"github.com/ktsarnakliyski/JobSpresso/internal/errors"
	"github.com/ktsarnakliyski/JobSpresso/internal/types"
)

// Service handles AI operations for job description processing
type Service struct {
	Provider AIProvider // Exported for access from server package
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates a new AI service instance with configuration for a specific operation
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewUpstreamError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetModelInfo(ctx)
}

// Close releases provider resources
func (s *Service) Close() error {
	return s.Provider.Close()
}

// Facade bridges the per-operation AI services into the single analyzer
// surface the assessment core consumes. Token usage stays an AI-layer concern.
type Facade struct {
	analyze *Service
	improve *Service
}

// NewFacade builds the analyzer facade from the per-operation configs
func NewFacade(cfg *config.Config, logger *errors.Logger) (*Facade, error) {
	analyzeCfg := cfg.GetAnalyzeConfig()
	analyzeSvc, err := NewService(&analyzeCfg, "analyze", logger)
	if err != nil {
		return nil, err
	}

	improveCfg := cfg.GetImproveConfig()
	improveSvc, err := NewService(&improveCfg, "improve", logger)
	if err != nil {
		return nil, err
	}

	return &Facade{
		analyze: analyzeSvc,
		improve: improveSvc,
	}, nil
}

// AnalyzeAssessment runs the analysis pass
func (f *Facade) AnalyzeAssessment(ctx context.Context, input types.AnalyzeAssessmentInput) (*types.AnalysisOpinion, error) {
	opinion, _, err := f.analyze.Provider.AnalyzeAssessment(ctx, input)
	return opinion, err
}

// GenerateImprovement runs the improvement rewrite pass
func (f *Facade) GenerateImprovement(ctx context.Context, input types.GenerateImprovementInput) (string, error) {
	improved, _, err := f.improve.Provider.GenerateImprovement(ctx, input)
	return improved, err
}

// GenerateJobDescription runs from-scratch generation. It rides the improve
// operation's configuration since both are creative rewriting passes.
func (f *Facade) GenerateJobDescription(ctx context.Context, input types.GenerateJobInput) (*types.GeneratedJobDescription, error) {
	generated, _, err := f.improve.Provider.GenerateJobDescription(ctx, input)
	return generated, err
}

// ExtractVoiceProfile extracts a voice profile from example job descriptions.
// It rides the analyze operation's configuration since extraction is an
// analytical pass.
func (f *Facade) ExtractVoiceProfile(ctx context.Context, input types.ExtractVoiceInput) (*types.VoiceExtraction, error) {
	extraction, _, err := f.analyze.Provider.ExtractVoiceProfile(ctx, input)
	return extraction, err
}

// AnalyzeService exposes the analysis-side service for health checks
func (f *Facade) AnalyzeService() *Service {
	return f.analyze
}

// ImproveService exposes the improvement-side service for health checks
func (f *Facade) ImproveService() *Service {
	return f.improve
}

// Close releases both providers
func (f *Facade) Close() error {
	if err := f.analyze.Close(); err != nil {
		return err
	}
	return f.improve.Close()
}
