package application

import (
	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/domain/config"
	"github.com/mcparena/arena-go/domain/memory"
	"github.com/mcparena/arena-go/domain/policy"
	"github.com/mcparena/arena-go/domain/tool"
	"github.com/mcparena/arena-go/infrastructure/generation"
	"github.com/mcparena/arena-go/infrastructure/resilience"
	storagemem "github.com/mcparena/arena-go/infrastructure/storage/memory"
)

// Builder accumulates agent collaborators and constructs the agent in
// one Build call.
type Builder struct {
	name     string
	strategy agent.Strategy
	settings config.AgentSettings

	provider generation.Provider
	tools    []tool.Tool
	policies []policy.Policy
	executor *resilience.Executor

	conversation memory.Conversation
	episodic     memory.Episodic
	kv           memory.Store
}

// NewBuilder starts a builder with react strategy and default bounds.
func NewBuilder(name string) *Builder {
	defaults := config.Default()
	return &Builder{
		name:     name,
		strategy: agent.StrategyReact,
		settings: defaults.Agent,
	}
}

// WithStrategy selects the reasoning strategy.
func (b *Builder) WithStrategy(s agent.Strategy) *Builder {
	b.strategy = s
	return b
}

// WithProvider sets the generation provider.
func (b *Builder) WithProvider(p generation.Provider) *Builder {
	b.provider = p
	return b
}

// WithTool queues a tool for registration.
func (b *Builder) WithTool(t tool.Tool) *Builder {
	b.tools = append(b.tools, t)
	return b
}

// WithPolicy appends a policy to the gate chain.
func (b *Builder) WithPolicy(p policy.Policy) *Builder {
	b.policies = append(b.policies, p)
	return b
}

// WithExecutor overrides the resilient executor.
func (b *Builder) WithExecutor(e *resilience.Executor) *Builder {
	b.executor = e
	return b
}

// WithConversation attaches a conversation memory.
func (b *Builder) WithConversation(c memory.Conversation) *Builder {
	b.conversation = c
	return b
}

// WithEpisodic attaches an episodic memory.
func (b *Builder) WithEpisodic(e memory.Episodic) *Builder {
	b.episodic = e
	return b
}

// WithStore attaches a key-value memory.
func (b *Builder) WithStore(s memory.Store) *Builder {
	b.kv = s
	return b
}

// WithMaxSteps bounds react cycles.
func (b *Builder) WithMaxSteps(n int) *Builder {
	b.settings.MaxSteps = n
	return b
}

// WithMaxReflections bounds reflection cycles.
func (b *Builder) WithMaxReflections(n int) *Builder {
	b.settings.MaxReflections = n
	return b
}

// WithMaxReplans bounds planning replans.
func (b *Builder) WithMaxReplans(n int) *Builder {
	b.settings.MaxReplans = n
	return b
}

// WithTemperature sets the sampling temperature.
func (b *Builder) WithTemperature(t float64) *Builder {
	b.settings.Temperature = t
	return b
}

// Build validates the accumulated configuration and constructs the
// agent. Duplicate tool names fail the build.
func (b *Builder) Build() (*Agent, error) {
	if !b.strategy.IsValid() {
		return nil, agent.ErrUnknownStrategy
	}

	provider := b.provider
	if provider == nil {
		provider = generation.NewMock()
	}

	registry := storagemem.NewToolRegistry()
	for _, t := range b.tools {
		if err := registry.Register(t); err != nil {
			return nil, err
		}
	}

	chain := policy.NewChain(b.policies...)

	a, err := newAgent(b.name, b.strategy, b.settings, provider, registry, chain, b.executor)
	if err != nil {
		return nil, err
	}
	if b.conversation != nil {
		a.SetConversation(b.conversation)
	}
	if b.episodic != nil {
		a.SetEpisodic(b.episodic)
	}
	if b.kv != nil {
		a.SetStore(b.kv)
	}
	return a, nil
}
