// Package policy provides gates applied to proposed tool actions and
// final responses.
package policy

import (
	"encoding/json"

	"github.com/mcparena/arena-go/domain/tool"
)

// Action is a proposed tool invocation as seen by a policy gate.
type Action struct {
	// Tool is the name of the tool to invoke.
	Tool string

	// Input is the proposed JSON input.
	Input json.RawMessage

	// Reason is the strategy's stated reason for the call.
	Reason string

	// Annotations are the resolved tool's behavioral annotations.
	// Zero-valued when the tool is unknown to the registry.
	Annotations tool.Annotations
}

// Verdict classifies a policy decision.
type Verdict string

const (
	VerdictAllow   Verdict = "allow"
	VerdictReject  Verdict = "reject"
	VerdictRewrite Verdict = "rewrite"
)

// Decision is the outcome of validating a single action against a single
// policy. Rewritten is set only for VerdictRewrite.
type Decision struct {
	Verdict   Verdict
	Reason    string
	Rewritten *Action
}

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{Verdict: VerdictAllow}
}

// Reject returns a rejecting decision with the given reason.
func Reject(reason string) Decision {
	return Decision{Verdict: VerdictReject, Reason: reason}
}

// Rewrite returns a rewriting decision carrying the replacement action.
func Rewrite(a Action, reason string) Decision {
	return Decision{Verdict: VerdictRewrite, Reason: reason, Rewritten: &a}
}

// Rejection records why an action was blocked. It is a first-class
// outcome, not an error: the engine converts it into an observation.
type Rejection struct {
	Policy string
	Reason string
}

// Policy inspects proposed actions and produced responses.
// Implementations must be stateless with respect to any single run.
type Policy interface {
	// Name identifies the policy in rejection artifacts and logs.
	Name() string

	// ValidateAction inspects a proposed tool action.
	ValidateAction(a Action) Decision

	// FilterResponse rewrites or passes through a produced response.
	FilterResponse(response string) string
}
