// Package config provides domain models for agent configuration.
package config

// AgentConfig is the declarative description of a fully wired agent.
type AgentConfig struct {
	// Name is a human-readable name for this configuration.
	Name string `json:"name" yaml:"name"`
	// Strategy selects the reasoning strategy: reflection, react, or planning.
	Strategy string `json:"strategy" yaml:"strategy"`

	// Agent contains iteration bounds and sampling settings.
	Agent AgentSettings `json:"agent,omitempty" yaml:"agent,omitempty"`
	// Memory selects and sizes the memory backend.
	Memory MemorySettings `json:"memory,omitempty" yaml:"memory,omitempty"`
	// Tools selects tools from the default set.
	Tools ToolSettings `json:"tools,omitempty" yaml:"tools,omitempty"`
	// Policies configures the policy chain.
	Policies PolicySettings `json:"policies,omitempty" yaml:"policies,omitempty"`
	// Generation configures the generation provider.
	Generation GenerationSettings `json:"generation,omitempty" yaml:"generation,omitempty"`
}

// AgentSettings contains iteration bounds and sampling parameters.
type AgentSettings struct {
	// MaxSteps bounds react think/act/observe cycles.
	MaxSteps int `json:"max_steps,omitempty" yaml:"max_steps,omitempty"`
	// MaxReflections bounds reflection cycles.
	MaxReflections int `json:"max_reflections,omitempty" yaml:"max_reflections,omitempty"`
	// MaxReplans bounds planning replan transitions.
	MaxReplans int `json:"max_replans,omitempty" yaml:"max_replans,omitempty"`
	// Temperature is the generation sampling temperature.
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	// MaxTokens bounds generated output length.
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// MemorySettings selects the memory backend.
type MemorySettings struct {
	// Backend is one of: simple, conversation, episodic.
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
	// MaxHistory is the conversation capacity in turns.
	MaxHistory int `json:"max_history,omitempty" yaml:"max_history,omitempty"`
	// RedisAddr, when set, backs the conversation memory with Redis.
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	// BadgerDir, when set, backs the simple memory with BadgerDB.
	BadgerDir string `json:"badger_dir,omitempty" yaml:"badger_dir,omitempty"`
}

// ToolSettings selects tools from the default set.
type ToolSettings struct {
	// Enabled lists default tools to register (empty = all).
	Enabled []string `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	// FilesystemRoot confines the filesystem tool to a directory.
	FilesystemRoot string `json:"filesystem_root,omitempty" yaml:"filesystem_root,omitempty"`
}

// PolicySettings configures the policy chain.
type PolicySettings struct {
	// DefaultChain enables the safety + content filter chain.
	DefaultChain bool `json:"default_chain,omitempty" yaml:"default_chain,omitempty"`
	// BlockedTerms feed the content filter.
	BlockedTerms []string `json:"blocked_terms,omitempty" yaml:"blocked_terms,omitempty"`
	// Allowlist, when non-empty, restricts actions to the listed tools.
	Allowlist []string `json:"allowlist,omitempty" yaml:"allowlist,omitempty"`
}

// GenerationSettings configures the generation provider.
type GenerationSettings struct {
	// Provider is one of: mock, http.
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
	// BaseURL is the chat-completions endpoint for the http provider.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	// APIKey authenticates the http provider. Supports ${ENV} expansion.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	// Model names the model for the http provider.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
	// TimeoutSeconds bounds each generation call.
	TimeoutSeconds int `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}

// Default returns a configuration with sensible defaults.
func Default() AgentConfig {
	return AgentConfig{
		Strategy: "react",
		Agent: AgentSettings{
			MaxSteps:       10,
			MaxReflections: 3,
			MaxReplans:     2,
			Temperature:    0.7,
		},
		Memory: MemorySettings{
			Backend:    "conversation",
			MaxHistory: 50,
		},
		Policies: PolicySettings{DefaultChain: true},
		Generation: GenerationSettings{
			Provider:       "mock",
			TimeoutSeconds: 60,
		},
	}
}
