package policy

import "fmt"

// AllowlistPolicy rejects any action whose tool is not explicitly allowed.
type AllowlistPolicy struct {
	allowed map[string]bool
}

// NewAllowlistPolicy creates an allowlist for the given tool names.
func NewAllowlistPolicy(toolNames ...string) *AllowlistPolicy {
	allowed := make(map[string]bool, len(toolNames))
	for _, name := range toolNames {
		allowed[name] = true
	}
	return &AllowlistPolicy{allowed: allowed}
}

// Name identifies the policy.
func (p *AllowlistPolicy) Name() string {
	return "allowlist"
}

// ValidateAction rejects tools outside the allowlist.
func (p *AllowlistPolicy) ValidateAction(a Action) Decision {
	if !p.allowed[a.Tool] {
		return Reject(fmt.Sprintf("tool %q is not on the allowlist", a.Tool))
	}
	return Allow()
}

// FilterResponse passes responses through unchanged.
func (p *AllowlistPolicy) FilterResponse(response string) string {
	return response
}
