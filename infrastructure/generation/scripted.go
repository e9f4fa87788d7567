package generation

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// ScriptStep defines an expected prompt fragment and the response to return.
type ScriptStep struct {
	// ExpectContains asserts the prompt contains this fragment before
	// returning the response. Empty skips the check.
	ExpectContains string

	// Response is the text to return.
	Response string

	// Err, when set, is returned instead of the response.
	Err error
}

// Scripted executes a predefined sequence for deterministic testing,
// validating each prompt against expectations before answering.
type Scripted struct {
	steps []ScriptStep
	index int
	mu    sync.Mutex
}

// NewScripted creates a scripted provider with the given steps.
func NewScripted(steps ...ScriptStep) *Scripted {
	return &Scripted{steps: steps}
}

// Name returns the provider name.
func (s *Scripted) Name() string {
	return "scripted"
}

// Generate returns the next scripted response if the prompt matches.
func (s *Scripted) Generate(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index >= len(s.steps) {
		return Response{}, fmt.Errorf("%w: script exhausted at call %d", ErrGeneration, s.index)
	}

	step := s.steps[s.index]
	if step.ExpectContains != "" && !strings.Contains(req.Prompt, step.ExpectContains) {
		return Response{}, fmt.Errorf("%w: step %d expected prompt containing %q",
			ErrGeneration, s.index, step.ExpectContains)
	}

	s.index++
	if step.Err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrGeneration, step.Err)
	}
	return Response{Text: step.Response}, nil
}

// IsComplete returns true if all steps have been consumed.
func (s *Scripted) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index >= len(s.steps)
}
