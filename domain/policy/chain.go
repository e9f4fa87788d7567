package policy

import "sync"

// Chain is an ordered, append-only collection of policies shared across
// concurrent runs. Validation and filtering apply policies in
// registration order; mutation is internally synchronized.
type Chain struct {
	mu       sync.RWMutex
	policies []Policy
}

// NewChain creates a chain with the given policies in order.
func NewChain(policies ...Policy) *Chain {
	return &Chain{policies: append([]Policy{}, policies...)}
}

// DefaultChain returns the standard gate: safety first, then content filtering.
func DefaultChain() *Chain {
	return NewChain(NewSafetyPolicy(), NewContentFilterPolicy(nil))
}

// Add appends a policy to the chain.
func (c *Chain) Add(p Policy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.policies = append(c.policies, p)
}

// Len returns the number of registered policies.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.policies)
}

// Names returns the registered policy names in order.
func (c *Chain) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.policies))
	for i, p := range c.policies {
		names[i] = p.Name()
	}
	return names
}

// snapshot returns the current policy list without holding the lock
// during policy execution.
func (c *Chain) snapshot() []Policy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Policy{}, c.policies...)
}

// ValidateAction applies every policy in order. A rewrite feeds the
// rewritten action to the next policy; the first reject short-circuits.
// The returned action is the (possibly rewritten) action to execute,
// or the rejection if any policy blocked it.
func (c *Chain) ValidateAction(a Action) (Action, *Rejection) {
	for _, p := range c.snapshot() {
		decision := p.ValidateAction(a)
		switch decision.Verdict {
		case VerdictReject:
			return a, &Rejection{Policy: p.Name(), Reason: decision.Reason}
		case VerdictRewrite:
			if decision.Rewritten != nil {
				a = *decision.Rewritten
			}
		}
	}
	return a, nil
}

// FilterResponse chains every policy's response filter in order: the
// output of one feeds the next.
func (c *Chain) FilterResponse(response string) string {
	for _, p := range c.snapshot() {
		response = p.FilterResponse(response)
	}
	return response
}
