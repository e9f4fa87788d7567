// Package generation provides the language-generation capability
// consumed by the strategy state machines. The engine treats providers
// as opaque: prompt and context in, text out.
package generation

import (
	"context"
	"errors"

	"github.com/mcparena/arena-go/domain/agent"
)

// ErrGeneration indicates a generation capability failure (network,
// rate limit, or model error). It is always recoverable by the calling
// state-machine step.
var ErrGeneration = errors.New("generation failed")

// Request carries one generation call.
type Request struct {
	// Prompt is the instruction for this step.
	Prompt string

	// Context is the ordered message history supplied as conversation context.
	Context []agent.Message

	// Temperature is the sampling temperature (0 = provider default).
	Temperature float64

	// MaxTokens bounds the generated output length (0 = provider default).
	MaxTokens int
}

// Response carries the generated text.
type Response struct {
	Text string
}

// Provider is the generation capability contract.
type Provider interface {
	// Generate produces text for the given request. Failures wrap
	// ErrGeneration.
	Generate(ctx context.Context, req Request) (Response, error)

	// Name returns the provider name for logging.
	Name() string
}
