package policy

import (
	"fmt"
	"strings"

	"github.com/mcparena/arena-go/domain/tool"
)

// SafetyPolicy rejects actions on destructive or high-risk tools and
// inputs matching known-dangerous patterns.
type SafetyPolicy struct {
	// MaxRisk is the highest risk level allowed through the gate.
	MaxRisk tool.RiskLevel

	// BlockedPatterns are substrings that reject an action when found in
	// its input, case-insensitively.
	BlockedPatterns []string
}

// NewSafetyPolicy creates a safety policy with conservative defaults.
func NewSafetyPolicy() *SafetyPolicy {
	return &SafetyPolicy{
		MaxRisk: tool.RiskMedium,
		BlockedPatterns: []string{
			"rm -rf",
			"drop table",
			"sudo ",
			"/etc/passwd",
		},
	}
}

// Name identifies the policy.
func (p *SafetyPolicy) Name() string {
	return "safety"
}

// ValidateAction rejects destructive tools, tools above the risk
// ceiling, and inputs containing blocked patterns.
func (p *SafetyPolicy) ValidateAction(a Action) Decision {
	if a.Annotations.Destructive {
		return Reject(fmt.Sprintf("tool %q is marked destructive", a.Tool))
	}
	if a.Annotations.RiskLevel > p.MaxRisk {
		return Reject(fmt.Sprintf("tool %q risk level %s exceeds %s",
			a.Tool, a.Annotations.RiskLevel, p.MaxRisk))
	}

	input := strings.ToLower(string(a.Input))
	for _, pattern := range p.BlockedPatterns {
		if strings.Contains(input, pattern) {
			return Reject(fmt.Sprintf("input matches blocked pattern %q", pattern))
		}
	}
	return Allow()
}

// FilterResponse passes responses through unchanged.
func (p *SafetyPolicy) FilterResponse(response string) string {
	return response
}
