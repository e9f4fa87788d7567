package config

import "fmt"

// knownStrategies mirrors the closed strategy set.
var knownStrategies = map[string]bool{
	"reflection": true,
	"react":      true,
	"planning":   true,
}

// knownBackends mirrors the supported memory backends.
var knownBackends = map[string]bool{
	"":             true, // default
	"simple":       true,
	"conversation": true,
	"episodic":     true,
}

// Validate checks the configuration for programming or wiring mistakes.
// Validation failures surface directly to the caller: they indicate a
// configuration error, not a runtime condition.
func (c *AgentConfig) Validate() error {
	if !knownStrategies[c.Strategy] {
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Strategy)
	}
	if !knownBackends[c.Memory.Backend] {
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Memory.Backend)
	}
	if c.Agent.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps must be non-negative", ErrInvalidSetting)
	}
	if c.Agent.MaxReflections < 0 {
		return fmt.Errorf("%w: max_reflections must be non-negative", ErrInvalidSetting)
	}
	if c.Agent.Temperature < 0 || c.Agent.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be in [0,2]", ErrInvalidSetting)
	}
	if c.Memory.MaxHistory < 0 {
		return fmt.Errorf("%w: max_history must be non-negative", ErrInvalidSetting)
	}
	if c.Generation.Provider == "http" && c.Generation.BaseURL == "" {
		return fmt.Errorf("%w: http provider requires base_url", ErrInvalidSetting)
	}
	return nil
}
