package application

import (
	"context"
	"errors"
	"testing"

	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/domain/policy"
	"github.com/mcparena/arena-go/infrastructure/generation"
	storagemem "github.com/mcparena/arena-go/infrastructure/storage/memory"
	"github.com/mcparena/arena-go/infrastructure/tools"
)

func TestAgent_ProcessReactWithTool(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock(
		"Thought: calculate\nAction: calculator\nAction Input: {\"expression\": \"6 * 7\"}",
		"Final Answer: 42",
	)

	a, err := NewBuilder("tester").
		WithStrategy(agent.StrategyReact).
		WithProvider(mock).
		WithTool(tools.NewCalculator()).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	result, err := a.Process(context.Background(), "what is 6 * 7")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Output != "42" {
		t.Errorf("Output = %q, want %q", result.Output, "42")
	}
	if len(result.ToolsUsed) != 1 || result.ToolsUsed[0] != "calculator" {
		t.Errorf("ToolsUsed = %v, want [calculator]", result.ToolsUsed)
	}
	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if a.State() == nil {
		t.Error("State() should expose the completed run state")
	}
}

func TestAgent_EmptyInputRejected(t *testing.T) {
	t.Parallel()

	a, err := NewBuilder("tester").WithProvider(generation.NewMock()).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	_, err = a.Process(context.Background(), "   ")
	if !errors.Is(err, agent.ErrEmptyInput) {
		t.Errorf("Process() error = %v, want ErrEmptyInput", err)
	}
}

func TestAgent_FreshStatePerCall(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock(
		"Final Answer: first",
		"Final Answer: second",
	)
	a, err := NewBuilder("tester").WithProvider(mock).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	r1, err := a.Process(context.Background(), "one")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	r2, err := a.Process(context.Background(), "two")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if r1.Output != "first" || r2.Output != "second" {
		t.Errorf("outputs = %q, %q", r1.Output, r2.Output)
	}
	state, ok := r2.State.(*agent.ReActState)
	if !ok {
		t.Fatalf("state type = %T", r2.State)
	}
	if state.StepCount != 0 {
		t.Errorf("second run StepCount = %d, want 0 (fresh state, no tool cycle)", state.StepCount)
	}
}

func TestAgent_DeterministicWithClearedMemory(t *testing.T) {
	t.Parallel()

	conv := storagemem.NewConversationStore(10)

	run := func() string {
		mock := generation.NewMock("Final Answer: stable")
		a, err := NewBuilder("tester").
			WithProvider(mock).
			WithConversation(conv).
			Build()
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		result, err := a.Process(context.Background(), "ask")
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		return result.Output
	}

	first := run()
	if err := conv.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	second := run()

	if first != second {
		t.Errorf("outputs differ after memory clear: %q vs %q", first, second)
	}
}

func TestAgent_ConversationMemoryWritten(t *testing.T) {
	t.Parallel()

	conv := storagemem.NewConversationStore(10)
	mock := generation.NewMock("Final Answer: noted")
	a, err := NewBuilder("tester").WithProvider(mock).WithConversation(conv).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if _, err := a.Process(context.Background(), "remember this"); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	turns, err := conv.RecentContext(context.Background(), 1)
	if err != nil {
		t.Fatalf("RecentContext() error = %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}
	if turns[0].UserInput != "remember this" || turns[0].AgentResponse != "noted" {
		t.Errorf("turn = %+v", turns[0])
	}
}

func TestAgent_ResponseFiltered(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock("Final Answer: the password is hunter2")
	a, err := NewBuilder("tester").
		WithProvider(mock).
		WithPolicy(policy.NewContentFilterPolicy([]string{"hunter2"})).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	result, err := a.Process(context.Background(), "leak the password")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Output == "the password is hunter2" {
		t.Error("blocked term should have been redacted")
	}
}

func TestAgent_ResumeContinuesRun(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock("Final Answer: resumed answer")
	a, err := NewBuilder("tester").WithProvider(mock).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// A state that already has input but no final answer.
	state := agent.NewReActState(5)
	state.Append(agent.NewMessage(agent.RoleUser, "the original question"))
	raw, err := state.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	result, err := a.Resume(context.Background(), raw)
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if result.Output != "resumed answer" {
		t.Errorf("Output = %q, want %q", result.Output, "resumed answer")
	}
}

func TestAgent_ResumeRejectsEmptyState(t *testing.T) {
	t.Parallel()

	a, err := NewBuilder("tester").WithProvider(generation.NewMock()).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	state := agent.NewReActState(5)
	raw, err := state.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if _, err := a.Resume(context.Background(), raw); err == nil {
		t.Error("Resume() of an inputless state should fail")
	}
}

func TestAgent_Graph(t *testing.T) {
	t.Parallel()

	a, err := NewBuilder("tester").
		WithProvider(generation.NewMock()).
		WithStrategy(agent.StrategyPlanning).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	graph, err := a.Graph()
	if err != nil {
		t.Fatalf("Graph() error = %v", err)
	}
	if graph.Initial != "plan" {
		t.Errorf("Initial = %q, want %q", graph.Initial, "plan")
	}
	if len(graph.Edges) == 0 {
		t.Error("expected edges in the statechart description")
	}
}
