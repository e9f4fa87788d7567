// Package resilience wraps tool execution in fortify protection patterns.
package resilience

import (
	"context"
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"

	"github.com/mcparena/arena-go/domain/tool"
)

// Executor runs tools behind a bulkhead, timeout, circuit breaker, and
// retry. Retries apply only to tools whose annotations mark them safe
// to repeat.
type Executor struct {
	bulkhead bulkhead.Bulkhead[tool.Result]
	breaker  circuitbreaker.CircuitBreaker[tool.Result]
	retry    retry.Retry[tool.Result]
	timeout  time.Duration
}

// ExecutorConfig configures the resilient executor.
type ExecutorConfig struct {
	// MaxConcurrent limits concurrent tool executions.
	MaxConcurrent int

	// BreakerThreshold is the number of consecutive failures before the
	// circuit opens.
	BreakerThreshold int

	// BreakerTimeout is how long the circuit stays open.
	BreakerTimeout time.Duration

	// RetryMaxAttempts caps retry attempts for retryable tools.
	RetryMaxAttempts int

	// RetryInitialDelay is the delay before the first retry.
	RetryInitialDelay time.Duration

	// RetryMultiplier is the exponential backoff multiplier.
	RetryMultiplier float64

	// DefaultTimeout bounds a single tool execution when the tool's
	// annotations do not set their own timeout.
	DefaultTimeout time.Duration
}

// DefaultExecutorConfig returns a configuration with sensible defaults.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		MaxConcurrent:     10,
		BreakerThreshold:  5,
		BreakerTimeout:    30 * time.Second,
		RetryMaxAttempts:  3,
		RetryInitialDelay: 100 * time.Millisecond,
		RetryMultiplier:   2.0,
		DefaultTimeout:    30 * time.Second,
	}
}

// NewExecutor creates a resilient executor.
func NewExecutor(config ExecutorConfig) *Executor {
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	threshold := config.BreakerThreshold
	if threshold <= 0 {
		threshold = 5
	}

	return &Executor{
		bulkhead: bulkhead.New[tool.Result](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
		}),
		breaker: circuitbreaker.New[tool.Result](circuitbreaker.Config{
			MaxRequests: uint32(maxConcurrent), // #nosec G115 -- bounds checked above
			Interval:    config.BreakerTimeout,
			Timeout:     config.BreakerTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(threshold) // #nosec G115 -- bounds checked above
			},
		}),
		retry: retry.New[tool.Result](retry.Config{
			MaxAttempts:   config.RetryMaxAttempts,
			InitialDelay:  config.RetryInitialDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    config.RetryMultiplier,
		}),
		timeout: config.DefaultTimeout,
	}
}

// NewDefaultExecutor creates an executor with default configuration.
func NewDefaultExecutor() *Executor {
	return NewExecutor(DefaultExecutorConfig())
}

// Execute runs a tool with protection applied in order: bulkhead,
// timeout, circuit breaker, then retry for retryable tools. The tool's
// annotation timeout, when set, overrides the executor default.
func (e *Executor) Execute(ctx context.Context, t tool.Tool, input json.RawMessage) (tool.Result, error) {
	start := time.Now()

	timeout := e.timeout
	if s := t.Annotations().Timeout; s > 0 {
		timeout = time.Duration(s) * time.Second
	}

	result, err := e.bulkhead.Execute(ctx, func(ctx context.Context) (tool.Result, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return e.breaker.Execute(ctx, func(ctx context.Context) (tool.Result, error) {
			if t.Annotations().CanRetry() {
				return e.retry.Do(ctx, func(ctx context.Context) (tool.Result, error) {
					return t.Execute(ctx, input)
				})
			}
			return t.Execute(ctx, input)
		})
	})

	if err == nil {
		result.Duration = time.Since(start)
	}

	return result, err
}

// ExecuteWithTimeout runs a tool with an explicit timeout bound.
func (e *Executor) ExecuteWithTimeout(ctx context.Context, t tool.Tool, input json.RawMessage, timeout time.Duration) (tool.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return e.Execute(ctx, t, input)
}

// ExecuteSimple runs a tool without any protection. Use it for tools
// that must not be retried or gated.
func (e *Executor) ExecuteSimple(ctx context.Context, t tool.Tool, input json.RawMessage) (tool.Result, error) {
	start := time.Now()
	result, err := t.Execute(ctx, input)
	if err == nil {
		result.Duration = time.Since(start)
	}
	return result, err
}

// BreakerState reports the current circuit breaker state.
func (e *Executor) BreakerState() circuitbreaker.State {
	return e.breaker.State()
}
