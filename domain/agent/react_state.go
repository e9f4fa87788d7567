package agent

import "encoding/json"

// Action is a proposed tool invocation produced by a think step.
type Action struct {
	Tool   string          `json:"tool"`
	Input  json.RawMessage `json:"input,omitempty"`
	Reason string          `json:"reason,omitempty"`
}

// ReActState tracks one reason-act-observe run.
// Invariant: 0 <= StepCount <= MaxSteps. Action is set only by a think
// transition, Observation only by an act transition consuming that action.
type ReActState struct {
	thread

	Thought     string  `json:"thought"`
	Action      *Action `json:"action,omitempty"`
	Observation string  `json:"observation"`
	StepCount   int     `json:"step_count"`
	MaxSteps    int     `json:"max_steps"`

	// FinalAnswer is set when the generator signals completion.
	FinalAnswer string `json:"final_answer,omitempty"`

	// Truncated marks a normal step-limit termination, not an error.
	Truncated bool `json:"truncated,omitempty"`

	// ToolsUsed records invoked tool names in invocation order.
	ToolsUsed []string `json:"tools_used,omitempty"`
}

// NewReActState creates a fresh state bounded by maxSteps.
func NewReActState(maxSteps int) *ReActState {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &ReActState{MaxSteps: maxSteps}
}

// Strategy returns the variant tag.
func (s *ReActState) Strategy() Strategy {
	return StrategyReact
}

// CanStep reports whether another think/act/observe cycle is within bounds.
func (s *ReActState) CanStep() bool {
	return s.StepCount < s.MaxSteps
}

// Final returns the terminal output: the final answer if the generator
// signaled one, otherwise the last observation.
func (s *ReActState) Final() string {
	if s.FinalAnswer != "" {
		return s.FinalAnswer
	}
	return s.Observation
}

// RecordToolUse appends a tool name to the usage record.
func (s *ReActState) RecordToolUse(name string) {
	s.ToolsUsed = append(s.ToolsUsed, name)
}

// Snapshot serializes the state.
func (s *ReActState) Snapshot() (json.RawMessage, error) {
	return json.Marshal(s)
}
