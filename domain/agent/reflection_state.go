package agent

import "encoding/json"

// ReflectionState tracks one iterative self-refinement run.
// Invariant: 0 <= ReflectionCount <= MaxReflections. ReflectionCount
// counts completed reflect/refine cycles, so RefinedResponse is set iff
// the count is positive.
type ReflectionState struct {
	thread

	InitialResponse   string `json:"initial_response"`
	CurrentReflection string `json:"current_reflection"`
	RefinedResponse   string `json:"refined_response"`
	ReflectionCount   int    `json:"reflection_count"`
	MaxReflections    int    `json:"max_reflections"`

	// FailureReason records a generation failure that ended the run early.
	FailureReason string `json:"failure_reason,omitempty"`
}

// NewReflectionState creates a fresh state bounded by maxReflections.
func NewReflectionState(maxReflections int) *ReflectionState {
	if maxReflections < 0 {
		maxReflections = 0
	}
	return &ReflectionState{MaxReflections: maxReflections}
}

// Strategy returns the variant tag.
func (s *ReflectionState) Strategy() Strategy {
	return StrategyReflection
}

// CanReflect reports whether another reflection cycle is within bounds.
func (s *ReflectionState) CanReflect() bool {
	return s.ReflectionCount < s.MaxReflections
}

// Latest returns the most recent response: the refined one if any
// refinement occurred, otherwise the initial response.
func (s *ReflectionState) Latest() string {
	if s.RefinedResponse != "" {
		return s.RefinedResponse
	}
	return s.InitialResponse
}

// Final returns the terminal output. Equals InitialResponse iff no
// reflection cycle completed.
func (s *ReflectionState) Final() string {
	return s.Latest()
}

// Snapshot serializes the state.
func (s *ReflectionState) Snapshot() (json.RawMessage, error) {
	return json.Marshal(s)
}
