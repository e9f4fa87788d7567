package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/domain/tool"
	"github.com/mcparena/arena-go/infrastructure/generation"
)

func namedTool(name, output string) tool.Tool {
	return tool.NewBuilder(name).
		ReadOnly().
		WithHandler(func(_ context.Context, _ json.RawMessage) (tool.Result, error) {
			return tool.TextResult(output), nil
		}).
		MustBuild()
}

func TestBuilder_DuplicateToolFailsBuild(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder("tester").
		WithProvider(generation.NewMock()).
		WithTool(namedTool("echo", "a")).
		WithTool(namedTool("echo", "b")).
		Build()
	if !errors.Is(err, tool.ErrToolExists) {
		t.Errorf("Build() error = %v, want ErrToolExists", err)
	}
}

func TestBuilder_UnknownStrategyFailsBuild(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder("tester").
		WithStrategy(agent.Strategy("divination")).
		Build()
	if !errors.Is(err, agent.ErrUnknownStrategy) {
		t.Errorf("Build() error = %v, want ErrUnknownStrategy", err)
	}
}

func TestBuilder_ReplaceToolOverrides(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock(
		"Thought: use echo\nAction: echo\nAction Input: {}",
		"Final Answer: done",
	)
	a, err := NewBuilder("tester").
		WithProvider(mock).
		WithTool(namedTool("echo", "original")).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	a.ReplaceTool(namedTool("echo", "replacement"))

	result, err := a.Process(context.Background(), "run echo")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	state, ok := result.State.(*agent.ReActState)
	if !ok {
		t.Fatalf("state type = %T", result.State)
	}
	if state.Observation != "replacement" {
		t.Errorf("Observation = %q, want the replacement tool's output", state.Observation)
	}
}

func TestBuilder_AddToolAfterBuild(t *testing.T) {
	t.Parallel()

	a, err := NewBuilder("tester").WithProvider(generation.NewMock()).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if err := a.AddTool(namedTool("late", "x")); err != nil {
		t.Fatalf("AddTool() error = %v", err)
	}
	err = a.AddTool(namedTool("late", "y"))
	if !errors.Is(err, tool.ErrToolExists) {
		t.Errorf("AddTool() duplicate error = %v, want ErrToolExists", err)
	}
}
