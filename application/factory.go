package application

import (
	"fmt"

	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/domain/config"
	"github.com/mcparena/arena-go/domain/policy"
	"github.com/mcparena/arena-go/infrastructure/generation"
	storagebadger "github.com/mcparena/arena-go/infrastructure/storage/badger"
	storagemem "github.com/mcparena/arena-go/infrastructure/storage/memory"
	storageredis "github.com/mcparena/arena-go/infrastructure/storage/redis"
	"github.com/mcparena/arena-go/infrastructure/tools"
)

// CreateAgent builds a fully wired agent from a declarative
// configuration. Pass a provider to override the configured one; a nil
// provider is built from cfg.Generation.
func CreateAgent(cfg config.AgentConfig, provider generation.Provider) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	strategy := agent.Strategy(cfg.Strategy)
	if !strategy.IsValid() {
		return nil, fmt.Errorf("%w: %s", agent.ErrUnknownStrategy, cfg.Strategy)
	}

	if provider == nil {
		var err error
		provider, err = buildProvider(cfg.Generation)
		if err != nil {
			return nil, err
		}
	}

	registry := storagemem.NewToolRegistry()
	for _, t := range tools.DefaultSet(cfg.Tools.FilesystemRoot) {
		if !toolEnabled(cfg.Tools.Enabled, t.Name()) {
			continue
		}
		if err := registry.Register(t); err != nil {
			return nil, fmt.Errorf("register tool %s: %w", t.Name(), err)
		}
	}

	a, err := newAgent(cfg.Name, strategy, cfg.Agent, provider, registry, buildPolicies(cfg.Policies), nil)
	if err != nil {
		return nil, err
	}

	if err := attachMemory(a, cfg.Memory); err != nil {
		return nil, err
	}
	return a, nil
}

// buildProvider constructs the configured generation provider.
func buildProvider(cfg config.GenerationSettings) (generation.Provider, error) {
	switch cfg.Provider {
	case "", "mock":
		return generation.NewMock(), nil
	case "http":
		return generation.NewHTTPProvider(generation.HTTPConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.TimeoutSeconds,
		}), nil
	default:
		return nil, fmt.Errorf("%w: generation provider %q", config.ErrInvalidSetting, cfg.Provider)
	}
}

// buildPolicies assembles the gate chain from configuration.
func buildPolicies(cfg config.PolicySettings) *policy.Chain {
	var chain *policy.Chain
	if cfg.DefaultChain {
		chain = policy.NewChain(
			policy.NewSafetyPolicy(),
			policy.NewContentFilterPolicy(cfg.BlockedTerms),
		)
	} else {
		chain = policy.NewChain()
		if len(cfg.BlockedTerms) > 0 {
			chain.Add(policy.NewContentFilterPolicy(cfg.BlockedTerms))
		}
	}
	if len(cfg.Allowlist) > 0 {
		chain.Add(policy.NewAllowlistPolicy(cfg.Allowlist...))
	}
	return chain
}

// attachMemory wires the configured memory backend.
func attachMemory(a *Agent, cfg config.MemorySettings) error {
	switch cfg.Backend {
	case "", "conversation":
		if cfg.RedisAddr != "" {
			store, err := storageredis.NewConversationStore(storageredis.DefaultConfig(),
				storageredis.WithAddress(cfg.RedisAddr),
				storageredis.WithMaxHistory(cfg.MaxHistory),
			)
			if err != nil {
				return fmt.Errorf("connect redis conversation memory: %w", err)
			}
			a.SetConversation(store)
			return nil
		}
		a.SetConversation(storagemem.NewConversationStore(cfg.MaxHistory))
	case "simple":
		if cfg.BadgerDir != "" {
			store, err := storagebadger.NewKVStore(storagebadger.DefaultConfig(),
				storagebadger.WithDir(cfg.BadgerDir),
			)
			if err != nil {
				return fmt.Errorf("open badger memory: %w", err)
			}
			a.SetStore(store)
			return nil
		}
		a.SetStore(storagemem.NewKVStore())
	case "episodic":
		a.SetEpisodic(storagemem.NewEpisodicStore())
	default:
		return fmt.Errorf("%w: %s", config.ErrUnknownBackend, cfg.Backend)
	}
	return nil
}

func toolEnabled(enabled []string, name string) bool {
	if len(enabled) == 0 {
		return true
	}
	for _, n := range enabled {
		if n == name {
			return true
		}
	}
	return false
}
