package tool

// RiskLevel indicates the potential impact of a tool execution.
type RiskLevel int

const (
	RiskNone   RiskLevel = iota // No risk - purely informational
	RiskLow                     // Low risk - reversible changes
	RiskMedium                  // Medium risk - may require cleanup
	RiskHigh                    // High risk - difficult to reverse
)

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	switch r {
	case RiskNone:
		return "none"
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Annotations describe tool behavior for policy gating and retry decisions.
type Annotations struct {
	// ReadOnly indicates the tool has no side effects.
	ReadOnly bool `json:"read_only"`

	// Destructive indicates the tool may cause irreversible changes.
	Destructive bool `json:"destructive"`

	// Idempotent indicates repeated calls with the same input yield the same result.
	Idempotent bool `json:"idempotent"`

	// RiskLevel indicates the potential impact of execution.
	RiskLevel RiskLevel `json:"risk_level"`

	// Timeout is the maximum execution time in seconds (0 = executor default).
	Timeout int `json:"timeout,omitempty"`

	// Tags are arbitrary labels for categorization.
	Tags []string `json:"tags,omitempty"`
}

// DefaultAnnotations returns annotations with safe defaults.
func DefaultAnnotations() Annotations {
	return Annotations{RiskLevel: RiskLow}
}

// CanRetry returns true if the tool can be safely retried on failure.
func (a Annotations) CanRetry() bool {
	return a.Idempotent || a.ReadOnly
}
