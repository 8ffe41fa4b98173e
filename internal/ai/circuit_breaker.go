package ai

import (
	"fmt"

	"github.com/ktsarnakliyski/JobSpresso/internal/config"
	"github.com/ktsarnakliyski/JobSpresso/internal/errors"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"
)

// AICircuitBreaker guards content generation calls for one operation type.
// A nil *AICircuitBreaker means the breaker is disabled and calls pass
// through untouched.
type AICircuitBreaker struct {
	cb *gobreaker.CircuitBreaker[*genai.GenerateContentResponse]
}

// ModelCircuitBreaker guards model metadata lookups. Model info failures are
// less critical than generation failures, so it trips on a more lenient
// threshold regardless of the operation config.
type ModelCircuitBreaker struct {
	cb *gobreaker.CircuitBreaker[*genai.Model]
}

func breakerSettings(name, operationType string, cfg *config.OperationAIConfig, minRequests uint32, failureThreshold float64, logger *errors.Logger) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.CircuitBreaker.MaxRequests,
		Interval:    cfg.CircuitBreaker.Interval,
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && failureRatio >= failureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger == nil {
				return
			}
			logger.Info("Circuit breaker state changed",
				"name", name,
				"operation_type", operationType,
				"from", from.String(),
				"to", to.String(),
				"max_requests", cfg.CircuitBreaker.MaxRequests,
				"failure_threshold", failureThreshold)
		},
	}
}

// NewAICircuitBreaker creates a breaker for a specific operation type, using
// the thresholds from that operation's config. Returns nil when disabled.
func NewAICircuitBreaker(operationType string, cfg *config.OperationAIConfig, logger *errors.Logger) *AICircuitBreaker {
	if !cfg.CircuitBreaker.Enabled {
		return nil
	}

	settings := breakerSettings(fmt.Sprintf("AI-%s", operationType), operationType,
		cfg, cfg.CircuitBreaker.MinRequests, cfg.CircuitBreaker.FailureThreshold, logger)

	return &AICircuitBreaker{
		cb: gobreaker.NewCircuitBreaker[*genai.GenerateContentResponse](settings),
	}
}

// NewModelCircuitBreaker creates a model lookup breaker for a specific
// operation type. Returns nil when disabled.
func NewModelCircuitBreaker(operationType string, cfg *config.OperationAIConfig, logger *errors.Logger) *ModelCircuitBreaker {
	if !cfg.CircuitBreaker.Enabled {
		return nil
	}

	// Lenient fixed thresholds for metadata lookups
	settings := breakerSettings(fmt.Sprintf("AI-Model-%s", operationType), operationType,
		cfg, 5, 0.8, logger)

	return &ModelCircuitBreaker{
		cb: gobreaker.NewCircuitBreaker[*genai.Model](settings),
	}
}

func executeThrough[T any](cb *gobreaker.CircuitBreaker[T], fn func() (T, error)) (T, error) {
	if cb == nil {
		return fn()
	}
	return cb.Execute(fn)
}

func breakerStats[T any](cb *gobreaker.CircuitBreaker[T]) map[string]any {
	if cb == nil {
		return map[string]any{"enabled": false}
	}
	return map[string]any{
		"name":    cb.Name(),
		"state":   cb.State().String(),
		"counts":  cb.Counts(),
		"enabled": true,
	}
}

func breakerHealthy[T any](cb *gobreaker.CircuitBreaker[T]) bool {
	return cb == nil || cb.State() == gobreaker.StateClosed
}

// Execute runs fn with circuit breaker protection.
func (b *AICircuitBreaker) Execute(fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	if b == nil {
		return fn()
	}
	return executeThrough(b.cb, fn)
}

// Execute runs fn with circuit breaker protection.
func (b *ModelCircuitBreaker) Execute(fn func() (*genai.Model, error)) (*genai.Model, error) {
	if b == nil {
		return fn()
	}
	return executeThrough(b.cb, fn)
}

// GetStats returns circuit breaker statistics
func (b *AICircuitBreaker) GetStats() map[string]any {
	if b == nil {
		return map[string]any{"enabled": false}
	}
	return breakerStats(b.cb)
}

// GetStats returns circuit breaker statistics
func (b *ModelCircuitBreaker) GetStats() map[string]any {
	if b == nil {
		return map[string]any{"enabled": false}
	}
	return breakerStats(b.cb)
}

// IsHealthy reports whether the breaker is closed (or disabled).
func (b *AICircuitBreaker) IsHealthy() bool {
	return b == nil || breakerHealthy(b.cb)
}

// IsHealthy reports whether the breaker is closed (or disabled).
func (b *ModelCircuitBreaker) IsHealthy() bool {
	return b == nil || breakerHealthy(b.cb)
}
