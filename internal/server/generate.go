package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ktsarnakliyski/JobSpresso/internal/observability"
	"github.com/ktsarnakliyski/JobSpresso/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// GenerateRequest represents the request body for the generate endpoint. An
// inline voice profile wins over voiceProfileId resolution.
type GenerateRequest struct {
	types.GenerateJobInput
	VoiceProfileID string `json:"voiceProfileId,omitempty"`
}

// ExtractVoiceRequest represents the request body for voice extraction
type ExtractVoiceRequest struct {
	ExampleJDs    []string `json:"exampleJds"`
	SuggestedName string   `json:"suggestedName,omitempty"`
}

// ExtractVoiceResponse carries the raw extraction plus a ready-to-save profile
// draft built from it.
type ExtractVoiceResponse struct {
	types.VoiceExtraction
	Profile types.VoiceProfile `json:"profile"`
}

// createGenerateHandler wraps the from-scratch generation handler with
// observability
func (s *Server) createGenerateHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		tracer := om.Tracer("jobspresso.api")
		ctx, span := tracer.Start(ctx, "api.generate")
		defer span.End()

		if id := requestIDFromContext(ctx); id != "" {
			span.SetAttributes(attribute.String("request.id", id))
		}

		var req GenerateRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.RoleTitle) == "" {
			err := fmt.Errorf("missing role title")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing role title", "roleTitle field is required", http.StatusBadRequest)
			return
		}
		if len(req.Responsibilities) == 0 {
			err := fmt.Errorf("missing responsibilities")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing responsibilities", "responsibilities field is required", http.StatusBadRequest)
			return
		}
		if len(req.Requirements) == 0 {
			err := fmt.Errorf("missing requirements")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing requirements", "requirements field is required", http.StatusBadRequest)
			return
		}

		if req.VoiceProfile == nil {
			profile, err := s.resolveVoiceProfile(req.VoiceProfileID)
			if err != nil {
				span.RecordError(err)
				span.SetAttributes(attribute.String("error.type", "validation"))
				writeErrorResponse(w, "Unknown voice profile", err.Error(), http.StatusBadRequest)
				return
			}
			req.VoiceProfile = profile
		}

		span.SetAttributes(
			attribute.String("request.role_title", req.RoleTitle),
			attribute.Bool("request.has_voice_profile", req.VoiceProfile != nil),
			attribute.String("operation", "generate"),
		)

		metrics := om.GetMetrics()
		var result *types.GeneratedJobDescription
		err := metrics.TrackAIOperationWithTokens(ctx, "generate", func(ctx context.Context) *observability.AIOperationResult {
			output, genErr := s.AI.GenerateJobDescription(ctx, req.GenerateJobInput)
			result = output
			return &observability.AIOperationResult{Error: genErr}
		})

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "generation_completed", false,
				attribute.String("error", err.Error()))
			s.Logger.LogError(err, "Generation failed",
				"request_id", requestIDFromContext(r.Context()))
			writeErrorResponse(w, "Failed to generate job description", "generation could not be completed", http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "generation_completed", true,
			attribute.Int("word_count", result.WordCount))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("output.word_count", result.WordCount),
		)

		writeJSONResponse(w, http.StatusOK, result)
	}
}

// createVoiceExtractHandler wraps the voice extraction handler with
// observability
func (s *Server) createVoiceExtractHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		tracer := om.Tracer("jobspresso.api")
		ctx, span := tracer.Start(ctx, "api.voice_extract")
		defer span.End()

		if id := requestIDFromContext(ctx); id != "" {
			span.SetAttributes(attribute.String("request.id", id))
		}

		var req ExtractVoiceRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		examples := make([]string, 0, len(req.ExampleJDs))
		for _, jd := range req.ExampleJDs {
			if strings.TrimSpace(jd) != "" {
				examples = append(examples, jd)
			}
		}
		if len(examples) == 0 {
			err := fmt.Errorf("missing example job descriptions")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing example job descriptions", "at least one example JD is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.examples_count", len(examples)),
			attribute.String("operation", "voice_extract"),
		)

		metrics := om.GetMetrics()
		var extraction *types.VoiceExtraction
		err := metrics.TrackAIOperationWithTokens(ctx, "voice_extract", func(ctx context.Context) *observability.AIOperationResult {
			output, extractErr := s.AI.ExtractVoiceProfile(ctx, types.ExtractVoiceInput{
				ExampleJDs:    examples,
				SuggestedName: req.SuggestedName,
			})
			extraction = output
			return &observability.AIOperationResult{Error: extractErr}
		})

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "voice_extraction_completed", false,
				attribute.String("error", err.Error()))
			s.Logger.LogError(err, "Voice extraction failed",
				"request_id", requestIDFromContext(r.Context()))
			writeErrorResponse(w, "Failed to extract voice profile", "extraction could not be completed", http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "voice_extraction_completed", true,
			attribute.Int("suggested_rules_count", len(extraction.SuggestedRules)))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("output.address_style", extraction.AddressStyle),
		)

		writeJSONResponse(w, http.StatusOK, ExtractVoiceResponse{
			VoiceExtraction: *extraction,
			Profile:         extraction.ToProfile(req.SuggestedName),
		})
	}
}
