package statemachine

import (
	"encoding/json"
	"strings"
)

// Markers the strategies look for in generated text.
const (
	// noImprovementMarker ends a reflection loop early.
	noImprovementMarker = "NO_FURTHER_IMPROVEMENT"

	// replanMarker asks the planning strategy to rebuild the remaining
	// plan.
	replanMarker = "REPLAN"

	finalAnswerPrefix = "Final Answer:"
	thoughtPrefix     = "Thought:"
	actionPrefix      = "Action:"
	actionInputPrefix = "Action Input:"
)

// reactStep is one parsed ReAct generation.
type reactStep struct {
	Thought     string
	ActionName  string
	ActionInput json.RawMessage
	FinalAnswer string
	IsFinal     bool
}

// parseReActOutput extracts the thought, action, and input lines from a
// generation. A "Final Answer:" line wins over everything else. Output
// with neither an action nor a final answer is treated as the final
// answer so malformed generations still terminate the loop.
func parseReActOutput(text string) reactStep {
	var step reactStep

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, finalAnswerPrefix):
			step.IsFinal = true
			step.FinalAnswer = strings.TrimSpace(strings.TrimPrefix(trimmed, finalAnswerPrefix))
			return step
		case strings.HasPrefix(trimmed, thoughtPrefix):
			step.Thought = strings.TrimSpace(strings.TrimPrefix(trimmed, thoughtPrefix))
		case strings.HasPrefix(trimmed, actionPrefix) && !strings.HasPrefix(trimmed, actionInputPrefix):
			step.ActionName = strings.TrimSpace(strings.TrimPrefix(trimmed, actionPrefix))
		case strings.HasPrefix(trimmed, actionInputPrefix):
			step.ActionInput = normalizeActionInput(strings.TrimSpace(strings.TrimPrefix(trimmed, actionInputPrefix)))
		}
	}

	if step.ActionName == "" {
		step.IsFinal = true
		step.FinalAnswer = strings.TrimSpace(text)
	}
	return step
}

// normalizeActionInput passes valid JSON through and quotes anything
// else as a JSON string.
func normalizeActionInput(raw string) json.RawMessage {
	if raw == "" {
		return nil
	}
	if json.Valid([]byte(raw)) {
		return json.RawMessage(raw)
	}
	quoted, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	return quoted
}

// parsePlanSteps extracts plan steps from numbered or dashed lines.
// Lines that carry neither marker are ignored.
func parsePlanSteps(text string) []string {
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if step, ok := stripListMarker(trimmed); ok {
			steps = append(steps, step)
		}
	}
	return steps
}

// stripListMarker removes a leading "1." / "1)" / "-" / "*" marker.
func stripListMarker(line string) (string, bool) {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return strings.TrimSpace(line[2:]), true
	}

	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return "", false
	}
	if line[i] != '.' && line[i] != ')' {
		return "", false
	}
	step := strings.TrimSpace(line[i+1:])
	return step, step != ""
}

// wantsReplan reports whether the evaluation text requests a replan.
func wantsReplan(text string) bool {
	return strings.Contains(text, replanMarker)
}

// isSatisfied reports whether a reflection declares no further
// improvement.
func isSatisfied(text string) bool {
	return strings.Contains(text, noImprovementMarker)
}
