package statemachine

import (
	"context"
	"strings"
	"testing"

	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/domain/policy"
	"github.com/mcparena/arena-go/infrastructure/generation"
	"github.com/mcparena/arena-go/infrastructure/tools"
)

func TestReAct_CalculatorCycle(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock(
		"Thought: I need to compute this\nAction: calculator\nAction Input: {\"expression\": \"2 + 2\"}",
		"Final Answer: 4",
	)
	deps := testDeps(t, mock, tools.NewCalculator())

	runner, err := NewReActRunner()
	if err != nil {
		t.Fatalf("NewReActRunner() error = %v", err)
	}

	state := agent.NewReActState(5)
	runner.Run(context.Background(), deps, state, "what is 2 + 2", "")

	if state.FinalAnswer != "4" {
		t.Errorf("FinalAnswer = %q, want %q", state.FinalAnswer, "4")
	}
	if state.Observation != "4" {
		t.Errorf("Observation = %q, want %q", state.Observation, "4")
	}
	if len(state.ToolsUsed) != 1 || state.ToolsUsed[0] != "calculator" {
		t.Errorf("ToolsUsed = %v, want [calculator]", state.ToolsUsed)
	}
	if state.Truncated {
		t.Error("run should not be truncated")
	}
	if state.StepCount != 1 {
		t.Errorf("StepCount = %d, want 1 (one completed think/act/observe cycle)", state.StepCount)
	}
}

func TestReAct_DirectFinalAnswer(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock("Final Answer: Paris")
	deps := testDeps(t, mock)

	runner, err := NewReActRunner()
	if err != nil {
		t.Fatalf("NewReActRunner() error = %v", err)
	}

	state := agent.NewReActState(5)
	runner.Run(context.Background(), deps, state, "capital of France", "")

	if state.FinalAnswer != "Paris" {
		t.Errorf("FinalAnswer = %q, want %q", state.FinalAnswer, "Paris")
	}
	if len(state.ToolsUsed) != 0 {
		t.Errorf("ToolsUsed = %v, want none", state.ToolsUsed)
	}
	if state.StepCount != 0 {
		t.Errorf("StepCount = %d, want 0 (no observation landed)", state.StepCount)
	}
}

func TestReAct_HistoryReachesProvider(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock(
		"Thought: compute\nAction: calculator\nAction Input: {\"expression\": \"2 + 2\"}",
		"Final Answer: 4",
	)
	deps := testDeps(t, mock, tools.NewCalculator())

	runner, err := NewReActRunner()
	if err != nil {
		t.Fatalf("NewReActRunner() error = %v", err)
	}

	state := agent.NewReActState(5)
	runner.Run(context.Background(), deps, state, "what is 2 + 2", "")

	calls := mock.Calls()
	if len(calls) != 2 {
		t.Fatalf("Calls() = %d, want 2", len(calls))
	}
	if len(calls[0].Context) == 0 {
		t.Error("first call should carry the user message as context")
	}
	var sawObservation bool
	for _, m := range calls[1].Context {
		if m.Role == agent.RoleTool && m.Content == "4" {
			sawObservation = true
		}
	}
	if !sawObservation {
		t.Error("second call's context should include the tool observation")
	}
}

func TestReAct_UnknownToolBecomesObservation(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock(
		"Thought: try magic\nAction: magic\nAction Input: {}",
		"Final Answer: gave up on magic",
	)
	deps := testDeps(t, mock, tools.NewCalculator())

	runner, err := NewReActRunner()
	if err != nil {
		t.Fatalf("NewReActRunner() error = %v", err)
	}

	state := agent.NewReActState(5)
	runner.Run(context.Background(), deps, state, "do magic", "")

	if !strings.Contains(state.Observation, "not registered") {
		t.Errorf("Observation = %q, want a tool-not-registered error", state.Observation)
	}
	if state.FinalAnswer != "gave up on magic" {
		t.Errorf("FinalAnswer = %q, want the follow-up answer", state.FinalAnswer)
	}
	if len(state.ToolsUsed) != 0 {
		t.Errorf("ToolsUsed = %v, want none", state.ToolsUsed)
	}
}

func TestReAct_PolicyRejectionBecomesObservation(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock(
		"Thought: wipe it\nAction: wipe\nAction Input: {}",
		"Final Answer: did not wipe anything",
	)

	wipe := stubDestructiveTool("wipe")
	deps := testDeps(t, mock, wipe)
	deps.Policies = policy.NewChain(policy.NewSafetyPolicy())

	runner, err := NewReActRunner()
	if err != nil {
		t.Fatalf("NewReActRunner() error = %v", err)
	}

	state := agent.NewReActState(5)
	runner.Run(context.Background(), deps, state, "wipe the data", "")

	if !strings.Contains(state.Observation, "rejected by policy") {
		t.Errorf("Observation = %q, want a policy rejection", state.Observation)
	}
	if len(state.ToolsUsed) != 0 {
		t.Errorf("ToolsUsed = %v, want none (tool must not run)", state.ToolsUsed)
	}
}

func TestReAct_StepLimitTruncates(t *testing.T) {
	t.Parallel()

	action := "Thought: keep calculating\nAction: calculator\nAction Input: {\"expression\": \"1 + 1\"}"
	mock := generation.NewMock(action, action)
	deps := testDeps(t, mock, tools.NewCalculator())

	runner, err := NewReActRunner()
	if err != nil {
		t.Fatalf("NewReActRunner() error = %v", err)
	}

	state := agent.NewReActState(2)
	runner.Run(context.Background(), deps, state, "loop forever", "")

	if !state.Truncated {
		t.Error("expected the run to be truncated at the step limit")
	}
	if state.StepCount != 2 {
		t.Errorf("StepCount = %d, want 2", state.StepCount)
	}
	if got := state.Final(); got != "2" {
		t.Errorf("Final() = %q, want the last observation %q", got, "2")
	}
}
