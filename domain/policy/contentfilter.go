package policy

import "strings"

// redactionMark replaces blocked terms in filtered responses.
const redactionMark = "[filtered]"

// ContentFilterPolicy redacts blocked terms from responses. Actions pass
// through unchanged unless their input contains a blocked term, in which
// case the input is rewritten with the term redacted.
type ContentFilterPolicy struct {
	blocked []string
}

// NewContentFilterPolicy creates a content filter for the given terms.
// A nil or empty list yields a pass-through policy.
func NewContentFilterPolicy(blockedTerms []string) *ContentFilterPolicy {
	return &ContentFilterPolicy{blocked: append([]string{}, blockedTerms...)}
}

// Name identifies the policy.
func (p *ContentFilterPolicy) Name() string {
	return "content_filter"
}

// ValidateAction rewrites action inputs containing blocked terms.
func (p *ContentFilterPolicy) ValidateAction(a Action) Decision {
	input := string(a.Input)
	redacted := p.redact(input)
	if redacted == input {
		return Allow()
	}
	rewritten := a
	rewritten.Input = []byte(redacted)
	return Rewrite(rewritten, "blocked terms redacted from input")
}

// FilterResponse redacts blocked terms from the response.
func (p *ContentFilterPolicy) FilterResponse(response string) string {
	return p.redact(response)
}

// redact replaces every blocked term in a single left-to-right pass per
// term. The search resumes after each inserted mark, so a term that is a
// substring of the mark itself never re-matches its own replacement.
func (p *ContentFilterPolicy) redact(s string) string {
	for _, term := range p.blocked {
		if term == "" {
			continue
		}
		needle := strings.ToLower(term)
		var b strings.Builder
		lower := strings.ToLower(s)
		start := 0
		for {
			idx := strings.Index(lower[start:], needle)
			if idx < 0 {
				b.WriteString(s[start:])
				break
			}
			idx += start
			b.WriteString(s[start:idx])
			b.WriteString(redactionMark)
			start = idx + len(term)
		}
		s = b.String()
	}
	return s
}
