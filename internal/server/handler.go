package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/ktsarnakliyski/JobSpresso/internal/errors"
	"github.com/ktsarnakliyski/JobSpresso/internal/observability"
	"github.com/ktsarnakliyski/JobSpresso/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createAssessHandler wraps the assessment handler with observability
func (s *Server) createAssessHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		tracer := om.Tracer("jobspresso.api")
		ctx, span := tracer.Start(ctx, "api.assess")
		defer span.End()

		if id := requestIDFromContext(ctx); id != "" {
			span.SetAttributes(attribute.String("request.id", id))
		}

		// Parse request
		var req AssessRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if s.MaxRequestSize > 0 && len(req.JobDescription) > int(s.MaxRequestSize) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("jobDescription exceeds size limit of %d characters", s.MaxRequestSize), http.StatusBadRequest)
			return
		}

		// Resolve the voice profile: an explicit ID wins, otherwise the
		// store's default profile applies, otherwise none.
		profile, err := s.resolveVoiceProfile(req.VoiceProfileID)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Unknown voice profile", err.Error(), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.Bool("request.has_voice_profile", profile != nil),
			attribute.String("operation", "assess"),
		)

		// Track the assessment with observability
		metrics := om.GetMetrics()
		var result *types.AssessmentResult
		err = metrics.TrackAIOperationWithTokens(ctx, "assess", func(ctx context.Context) *observability.AIOperationResult {
			output, assessErr := s.Assessor.Analyze(ctx, req.JobDescription, profile)
			result = output
			return &observability.AIOperationResult{Error: assessErr}
		})

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "assessment_completed", false,
				attribute.String("error", err.Error()))
			s.writeAssessmentError(w, r, err)
			return
		}

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "assessment_completed", true,
			attribute.Float64("overall_score", result.OverallScore),
			attribute.Int("issues_count", len(result.Issues)))
		if result.ImprovementApplied {
			metrics.RecordBusinessMetric(ctx, "improvement_applied", true)
		} else {
			metrics.RecordBusinessMetric(ctx, "improvement_fallback", true)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("overall_score", result.OverallScore),
			attribute.Int("issues_count", len(result.Issues)),
			attribute.Bool("improvement_applied", result.ImprovementApplied),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// resolveVoiceProfile looks up the requested profile, falling back to the
// store default when no ID is given.
func (s *Server) resolveVoiceProfile(id string) (*types.VoiceProfile, error) {
	if s.Voices == nil {
		return nil, nil
	}
	if id == "" {
		return s.Voices.Default(), nil
	}
	return s.Voices.Get(id)
}

// writeAssessmentError maps assessment errors to HTTP status codes. Validation
// errors surface their message; everything else gets a generic message so
// upstream details stay out of responses.
func (s *Server) writeAssessmentError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.IsValidation(err) {
		writeErrorResponse(w, "Invalid assessment input", err.Error(), http.StatusBadRequest)
		return
	}
	s.Logger.LogError(err, "Assessment failed",
		"request_id", requestIDFromContext(r.Context()))
	writeErrorResponse(w, "Failed to assess job description", "assessment could not be completed", http.StatusInternalServerError)
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
