package tool

import (
	"encoding/json"
	"time"
)

// Result contains the output of a tool execution.
type Result struct {
	// Output is the primary result data.
	Output json.RawMessage `json:"output"`

	// Duration is how long the execution took.
	Duration time.Duration `json:"duration"`
}

// NewResult creates a result with the given output.
func NewResult(output json.RawMessage) Result {
	return Result{Output: output}
}

// TextResult creates a result holding a plain string output.
func TextResult(text string) Result {
	raw, _ := json.Marshal(text)
	return Result{Output: raw}
}

// OutputString returns the output as a string. String-typed JSON outputs
// are unquoted for readability.
func (r Result) OutputString() string {
	var s string
	if err := json.Unmarshal(r.Output, &s); err == nil {
		return s
	}
	return string(r.Output)
}
