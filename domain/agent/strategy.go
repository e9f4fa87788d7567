package agent

// Strategy identifies a reasoning strategy. The set is closed: dispatch
// happens by tag in the factory, not through a class hierarchy.
type Strategy string

const (
	StrategyReflection Strategy = "reflection" // Iterative self-refinement
	StrategyReact      Strategy = "react"      // Reason-act-observe cycling
	StrategyPlanning   Strategy = "planning"   // Goal decomposition
)

// IsValid returns true if the strategy is a recognized canonical strategy.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyReflection, StrategyReact, StrategyPlanning:
		return true
	default:
		return false
	}
}

// String returns the string representation of the strategy.
func (s Strategy) String() string {
	return string(s)
}

// AllStrategies returns all canonical strategies.
func AllStrategies() []Strategy {
	return []Strategy{StrategyReflection, StrategyReact, StrategyPlanning}
}
