package agent

import "encoding/json"

// StepResult records the outcome of one executed plan step. Entries are
// immutable once appended: a replan never touches completed steps.
type StepResult struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	Output      string `json:"output"`
	Failed      bool   `json:"failed"`
	Reason      string `json:"reason,omitempty"`
}

// PlanningState tracks one goal-decomposition run.
// Invariants: CurrentStep is in [0, len(Plan)]; completed step indices are
// a subset of [0, len(Plan)); Plan is immutable during execution except
// through Replan, which replaces unexecuted steps only.
type PlanningState struct {
	thread

	Goal           string       `json:"goal"`
	Plan           []string     `json:"plan"`
	CurrentStep    int          `json:"current_step"`
	CompletedSteps []StepResult `json:"completed_steps"`
	Replans        int          `json:"replans"`
	MaxReplans     int          `json:"max_replans"`

	// Summary is the final answer synthesized from the step results.
	Summary string `json:"summary,omitempty"`

	// ToolsUsed records invoked tool names in invocation order.
	ToolsUsed []string `json:"tools_used,omitempty"`
}

// NewPlanningState creates a fresh state bounded by maxReplans.
func NewPlanningState(maxReplans int) *PlanningState {
	if maxReplans < 0 {
		maxReplans = 0
	}
	return &PlanningState{MaxReplans: maxReplans}
}

// Strategy returns the variant tag.
func (s *PlanningState) Strategy() Strategy {
	return StrategyPlanning
}

// HasRemainingSteps reports whether unexecuted plan steps remain.
func (s *PlanningState) HasRemainingSteps() bool {
	return s.CurrentStep < len(s.Plan)
}

// CanReplan reports whether another replan is within bounds.
func (s *PlanningState) CanReplan() bool {
	return s.Replans < s.MaxReplans
}

// CompleteStep appends the result for the current step and advances.
func (s *PlanningState) CompleteStep(result StepResult) {
	s.CompletedSteps = append(s.CompletedSteps, result)
	s.CurrentStep++
}

// Replan replaces the unexecuted tail of the plan with newSteps.
// Completed steps and their results are preserved unchanged.
func (s *PlanningState) Replan(newSteps []string) {
	executed := s.Plan[:s.CurrentStep]
	s.Plan = append(append([]string{}, executed...), newSteps...)
	s.Replans++
}

// Final returns the synthesized summary, falling back to the last step
// output when no summary was produced.
func (s *PlanningState) Final() string {
	if s.Summary != "" {
		return s.Summary
	}
	if n := len(s.CompletedSteps); n > 0 {
		return s.CompletedSteps[n-1].Output
	}
	return ""
}

// RecordToolUse appends a tool name to the usage record.
func (s *PlanningState) RecordToolUse(name string) {
	s.ToolsUsed = append(s.ToolsUsed, name)
}

// Snapshot serializes the state.
func (s *PlanningState) Snapshot() (json.RawMessage, error) {
	return json.Marshal(s)
}
