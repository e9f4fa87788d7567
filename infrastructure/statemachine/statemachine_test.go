package statemachine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mcparena/arena-go/domain/policy"
	"github.com/mcparena/arena-go/domain/tool"
	"github.com/mcparena/arena-go/infrastructure/generation"
	"github.com/mcparena/arena-go/infrastructure/resilience"
	storage "github.com/mcparena/arena-go/infrastructure/storage/memory"
)

// testDeps wires a mock provider and an optional tool set with an open
// policy chain.
func testDeps(t *testing.T, provider generation.Provider, tools ...tool.Tool) *Deps {
	t.Helper()

	registry := storage.NewToolRegistry()
	for _, tl := range tools {
		if err := registry.Register(tl); err != nil {
			t.Fatalf("Register(%q) error = %v", tl.Name(), err)
		}
	}
	return &Deps{
		Provider: provider,
		Tools:    registry,
		Policies: policy.NewChain(),
		Executor: resilience.NewDefaultExecutor(),
		RunID:    "test-run",
	}
}

// stubDestructiveTool builds a destructive tool that records nothing
// and always succeeds when it runs.
func stubDestructiveTool(name string) tool.Tool {
	return tool.NewBuilder(name).
		Destructive().
		WithHandler(func(_ context.Context, _ json.RawMessage) (tool.Result, error) {
			return tool.TextResult("wiped"), nil
		}).
		MustBuild()
}
