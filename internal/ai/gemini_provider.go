package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ktsarnakliyski/JobSpresso/internal/config"
	apperrors "github.com/ktsarnakliyski/JobSpresso/internal/errors"
	"github.com/ktsarnakliyski/JobSpresso/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *apperrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *apperrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, apperrors.NewUpstreamError(apperrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	circuitBreaker := NewAICircuitBreaker(operationType, cfg, logger)
	modelBreaker := NewModelCircuitBreaker(operationType, cfg, logger)

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		circuitBreaker: circuitBreaker,
		modelBreaker:   modelBreaker,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.Execute(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

const modelCheckTimeout = 10 * time.Second

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true
		}
		return true
	}

	// Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// generate runs a single generation through the circuit breaker and retry
// stack, with common tracing attributes and truncation detection.
func (g *GeminiProvider) generate(ctx context.Context, operationName, userPrompt, systemPrompt string, genaiConfig *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})
	if err != nil {
		return nil, apperrors.NewUpstreamError(apperrors.ErrCodeAIServiceFailed,
			"Failed to generate content for "+operationName, err)
	}

	if isTruncated(result) {
		return nil, apperrors.NewUpstreamError(apperrors.ErrCodeAITruncated,
			"Response for "+operationName+" was truncated, the job description may be too long", nil)
	}

	return result, nil
}

// isTruncated reports whether generation stopped because the output token
// limit was reached.
func isTruncated(result *genai.GenerateContentResponse) bool {
	if result == nil {
		return false
	}
	for _, candidate := range result.Candidates {
		if candidate != nil && candidate.FinishReason == genai.FinishReasonMaxTokens {
			return true
		}
	}
	return false
}

// executeAIOperation is a generic helper to run JSON-producing AI operations
// with common tracing, circuit breaker, and parsing logic.
func executeAIOperation[Out any](
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out
	tracer := otel.Tracer("jobspresso.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	result, err := g.generate(ctx, operationName, userPrompt, systemPrompt, genaiConfig)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, err
	}

	if err := json.Unmarshal([]byte(result.Text()), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, apperrors.NewUpstreamError(apperrors.ErrCodeAIParseFailed,
			"Failed to parse AI response for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return output, tokenUsage, nil
}

// AnalyzeAssessment implements AIProvider for job description analysis
func (g *GeminiProvider) AnalyzeAssessment(ctx context.Context, input types.AnalyzeAssessmentInput) (*types.AnalysisOpinion, *TokenUsage, error) {
	systemPrompt := resolvePrompt(g.config.SystemPrompt, DefaultSystemPrompt)
	userPrompt := buildAnalysisPrompt(input)
	genaiConfig := g.buildAnalysisSchema()

	opinion, tokenUsage, err := executeAIOperation[types.AnalysisOpinion](
		g,
		ctx,
		"analyze_assessment",
		userPrompt,
		systemPrompt,
		genaiConfig,
		attribute.Int("input.jd_length", len(input.JobDescription)),
		attribute.Bool("input.has_voice_profile", input.VoiceProfile != nil),
	)
	if err != nil {
		return nil, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.issues_count", len(opinion.Issues)),
			attribute.Int("output.positives_count", len(opinion.Positives)),
		)
	}

	return &opinion, tokenUsage, nil
}

// GenerateJobDescription implements AIProvider for from-scratch generation
func (g *GeminiProvider) GenerateJobDescription(ctx context.Context, input types.GenerateJobInput) (*types.GeneratedJobDescription, *TokenUsage, error) {
	systemPrompt := resolvePrompt(g.config.SystemPrompt, DefaultSystemPrompt)
	userPrompt := buildGenerationPrompt(input)
	genaiConfig := g.buildGenerationSchema()

	generated, tokenUsage, err := executeAIOperation[types.GeneratedJobDescription](
		g,
		ctx,
		"generate_job_description",
		userPrompt,
		systemPrompt,
		genaiConfig,
		attribute.Int("input.responsibilities_count", len(input.Responsibilities)),
		attribute.Int("input.requirements_count", len(input.Requirements)),
		attribute.Bool("input.has_voice_profile", input.VoiceProfile != nil),
	)
	if err != nil {
		return nil, nil, err
	}

	// Word counts from the model drift; recount locally.
	generated.WordCount = len(strings.Fields(generated.GeneratedJD))
	if generated.Notes == nil {
		generated.Notes = []string{}
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.word_count", generated.WordCount),
			attribute.Int("output.notes_count", len(generated.Notes)),
		)
	}

	return &generated, tokenUsage, nil
}

// ExtractVoiceProfile implements AIProvider for voice extraction from example
// job descriptions
func (g *GeminiProvider) ExtractVoiceProfile(ctx context.Context, input types.ExtractVoiceInput) (*types.VoiceExtraction, *TokenUsage, error) {
	systemPrompt := resolvePrompt(g.config.SystemPrompt, DefaultSystemPrompt)
	userPrompt := buildVoiceExtractionPrompt(input)
	genaiConfig := g.buildExtractionSchema()

	extraction, tokenUsage, err := executeAIOperation[types.VoiceExtraction](
		g,
		ctx,
		"extract_voice_profile",
		userPrompt,
		systemPrompt,
		genaiConfig,
		attribute.Int("input.examples_count", len(input.ExampleJDs)),
	)
	if err != nil {
		return nil, nil, err
	}

	extraction.Normalize()

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("output.address_style", extraction.AddressStyle),
			attribute.Int("output.suggested_rules_count", len(extraction.SuggestedRules)),
		)
	}

	return &extraction, tokenUsage, nil
}

// improvementPreambleRes match preamble phrasing models sometimes prepend
// despite the no-preamble instruction.
var improvementPreambleRes = []*regexp.Regexp{
	regexp.MustCompile(`^Here['\x{2019}]s the improved (?:version|job description)[:\s]*\n*`),
	regexp.MustCompile(`^Improved (?:version|job description)[:\s]*\n*`),
	regexp.MustCompile(`^Below is the improved[:\s]*\n*`),
}

// GenerateImprovement implements AIProvider for the improvement rewrite pass.
// The output is the improved job description as plain text, not JSON.
func (g *GeminiProvider) GenerateImprovement(ctx context.Context, input types.GenerateImprovementInput) (string, *TokenUsage, error) {
	tracer := otel.Tracer("jobspresso.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.generate_improvement")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
		attribute.Int("input.jd_length", len(input.OriginalText)),
		attribute.Int("input.issues_count", len(input.Issues)),
	)

	systemPrompt := resolvePrompt(g.config.SystemPrompt, DefaultSystemPrompt)
	userPrompt := buildImprovementPrompt(input)

	genaiConfig := &genai.GenerateContentConfig{}
	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}
	if g.config.MaxOutputTokens > 0 {
		genaiConfig.MaxOutputTokens = g.config.MaxOutputTokens
	}

	result, err := g.generate(ctx, "generate_improvement", userPrompt, systemPrompt, genaiConfig)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, err
	}

	improved := cleanImprovementOutput(result.Text())

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("output.improved_length", len(improved)),
	)

	return improved, tokenUsage, nil
}

// cleanImprovementOutput strips preamble phrases from the improved text
func cleanImprovementOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	for _, re := range improvementPreambleRes {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	return strings.TrimSpace(cleaned)
}

// buildAnalysisSchema creates the response schema for analysis requests
func (g *GeminiProvider) buildAnalysisSchema() *genai.GenerateContentConfig {
	evidenceSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"supportingExcerpts": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"missingElements": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"opportunity":      {Type: genai.TypeString},
			"impactPrediction": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		},
		Required: []string{"supportingExcerpts", "missingElements", "opportunity"},
	}

	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"scores": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"inclusivity": {Type: genai.TypeNumber},
						"clarity":     {Type: genai.TypeNumber},
						"voiceMatch":  {Type: genai.TypeNumber, Nullable: genai.Ptr(true)},
					},
					Required: []string{"inclusivity", "clarity"},
				},
				"categoryEvidence": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"inclusivity": evidenceSchema,
						"readability": evidenceSchema,
						"clarity":     evidenceSchema,
						"voice_match": evidenceSchema,
					},
					Required: []string{"inclusivity", "readability", "clarity"},
				},
				"issues": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"severity":    {Type: genai.TypeString},
							"category":    {Type: genai.TypeString},
							"description": {Type: genai.TypeString},
							"found":       {Type: genai.TypeString},
							"suggestion":  {Type: genai.TypeString},
							"impact":      {Type: genai.TypeString},
						},
						Required: []string{"severity", "category", "description", "found", "suggestion"},
					},
				},
				"positives": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"scores", "categoryEvidence", "issues", "positives"},
		},
	}

	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}
	if g.config.MaxOutputTokens > 0 {
		genaiConfig.MaxOutputTokens = g.config.MaxOutputTokens
	}

	return genaiConfig
}

// buildGenerationSchema creates the response schema for generation requests
func (g *GeminiProvider) buildGenerationSchema() *genai.GenerateContentConfig {
	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"generatedJd": {Type: genai.TypeString},
				"wordCount":   {Type: genai.TypeInteger},
				"notes": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"generatedJd", "wordCount", "notes"},
		},
	}

	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}
	if g.config.MaxOutputTokens > 0 {
		genaiConfig.MaxOutputTokens = g.config.MaxOutputTokens
	}

	return genaiConfig
}

// buildExtractionSchema creates the response schema for voice extraction
func (g *GeminiProvider) buildExtractionSchema() *genai.GenerateContentConfig {
	stringArray := &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}

	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"tone":                {Type: genai.TypeString},
				"toneFormality":       {Type: genai.TypeInteger},
				"toneDescription":     {Type: genai.TypeString},
				"addressStyle":        {Type: genai.TypeString},
				"sentenceStyle":       {Type: genai.TypeString},
				"wordsCommonlyUsed":   stringArray,
				"wordsAvoided":        stringArray,
				"brandValues":         stringArray,
				"structurePreference": {Type: genai.TypeString},
				"suggestedRules": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"text":       {Type: genai.TypeString},
							"ruleType":   {Type: genai.TypeString},
							"target":     {Type: genai.TypeString},
							"value":      {Type: genai.TypeString},
							"confidence": {Type: genai.TypeNumber},
							"evidence":   {Type: genai.TypeString},
						},
						Required: []string{"text", "ruleType", "confidence"},
					},
				},
				"summary": {Type: genai.TypeString},
			},
			Required: []string{"tone", "toneFormality", "addressStyle", "sentenceStyle", "wordsCommonlyUsed", "wordsAvoided", "structurePreference", "summary"},
		},
	}

	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}
	if g.config.MaxOutputTokens > 0 {
		genaiConfig.MaxOutputTokens = g.config.MaxOutputTokens
	}

	return genaiConfig
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
