package statemachine

import (
	"context"
	"testing"

	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/infrastructure/generation"
	"github.com/mcparena/arena-go/infrastructure/tools"
)

func TestPlanning_ExecutesAllStepsAndSummarizes(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock(
		"1. gather the facts\n2. write the answer",
		"facts gathered",
		"CONTINUE",
		"answer written",
		"CONTINUE",
		"the final answer",
	)
	deps := testDeps(t, mock)

	runner, err := NewPlanningRunner()
	if err != nil {
		t.Fatalf("NewPlanningRunner() error = %v", err)
	}

	state := agent.NewPlanningState(2)
	runner.Run(context.Background(), deps, state, "answer the question", "")

	if state.Summary != "the final answer" {
		t.Errorf("Summary = %q, want %q", state.Summary, "the final answer")
	}
	if len(state.CompletedSteps) != 2 {
		t.Fatalf("CompletedSteps = %d, want 2", len(state.CompletedSteps))
	}
	if state.CompletedSteps[0].Output != "facts gathered" {
		t.Errorf("step 1 output = %q, want %q", state.CompletedSteps[0].Output, "facts gathered")
	}
	if state.Replans != 0 {
		t.Errorf("Replans = %d, want 0", state.Replans)
	}
	if mock.CallCount() != 6 {
		t.Errorf("CallCount() = %d, want 6 (every step evaluated)", mock.CallCount())
	}
}

func TestPlanning_ReplanPreservesCompletedSteps(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock(
		"1. compute the total\n2. look up the weather\n3. write the report",
		"Action: calculator\nAction Input: {\"expression\": \"20 + 22\"}",
		"CONTINUE",
		"Action: weather\nAction Input: {}",
		"REPLAN\n1. estimate the weather from season\n2. write the report",
		"estimated mild weather",
		"CONTINUE",
		"report written",
		"CONTINUE",
		"the revised final answer",
	)
	deps := testDeps(t, mock, tools.NewCalculator())

	runner, err := NewPlanningRunner()
	if err != nil {
		t.Fatalf("NewPlanningRunner() error = %v", err)
	}

	state := agent.NewPlanningState(2)
	runner.Run(context.Background(), deps, state, "write a weather report", "")

	if state.Replans != 1 {
		t.Fatalf("Replans = %d, want 1", state.Replans)
	}
	if len(state.CompletedSteps) != 4 {
		t.Fatalf("CompletedSteps = %d, want 4", len(state.CompletedSteps))
	}
	if state.CompletedSteps[0].Failed {
		t.Error("step 1 should have succeeded")
	}
	if state.CompletedSteps[0].Output != "42" {
		t.Errorf("step 1 output = %q, want %q", state.CompletedSteps[0].Output, "42")
	}
	if !state.CompletedSteps[1].Failed {
		t.Error("step 2 should have failed on the unknown tool")
	}
	if state.Plan[0] != "compute the total" || state.Plan[1] != "look up the weather" {
		t.Errorf("executed plan prefix was rewritten: %v", state.Plan[:2])
	}
	if state.Plan[2] != "estimate the weather from season" {
		t.Errorf("Plan[2] = %q, want the replanned step", state.Plan[2])
	}
	if state.Summary != "the revised final answer" {
		t.Errorf("Summary = %q, want %q", state.Summary, "the revised final answer")
	}
	if len(state.ToolsUsed) != 1 || state.ToolsUsed[0] != "calculator" {
		t.Errorf("ToolsUsed = %v, want [calculator]", state.ToolsUsed)
	}
}

func TestPlanning_ReplanBudgetExhausted(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock(
		"1. first step\n2. second step",
		"first done",
		"REPLAN\n1. something else entirely",
		"second done",
		"CONTINUE",
		"summary text",
	)
	deps := testDeps(t, mock)

	runner, err := NewPlanningRunner()
	if err != nil {
		t.Fatalf("NewPlanningRunner() error = %v", err)
	}

	state := agent.NewPlanningState(0)
	runner.Run(context.Background(), deps, state, "do two things", "")

	if state.Replans != 0 {
		t.Errorf("Replans = %d, want 0 (budget exhausted)", state.Replans)
	}
	if len(state.CompletedSteps) != 2 {
		t.Fatalf("CompletedSteps = %d, want 2", len(state.CompletedSteps))
	}
	if state.CompletedSteps[1].Description != "second step" {
		t.Errorf("step 2 = %q, want the original plan step", state.CompletedSteps[1].Description)
	}
	if state.Summary != "summary text" {
		t.Errorf("Summary = %q, want %q", state.Summary, "summary text")
	}
}

func TestPlanning_FailedLastStepTriggersReplan(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock(
		"1. look up the weather",
		"Action: weather\nAction Input: {}",
		"REPLAN\n1. estimate the weather from season",
		"estimated mild weather",
		"CONTINUE",
		"the estimated answer",
	)
	deps := testDeps(t, mock)

	runner, err := NewPlanningRunner()
	if err != nil {
		t.Fatalf("NewPlanningRunner() error = %v", err)
	}

	state := agent.NewPlanningState(1)
	runner.Run(context.Background(), deps, state, "what is the weather", "")

	if state.Replans != 1 {
		t.Fatalf("Replans = %d, want 1 (failed final step must reach the evaluator)", state.Replans)
	}
	if len(state.CompletedSteps) != 2 {
		t.Fatalf("CompletedSteps = %d, want 2", len(state.CompletedSteps))
	}
	if !state.CompletedSteps[0].Failed {
		t.Error("first step should have failed on the unknown tool")
	}
	if state.CompletedSteps[1].Failed {
		t.Error("replanned step should have succeeded")
	}
	if state.Summary != "the estimated answer" {
		t.Errorf("Summary = %q, want %q", state.Summary, "the estimated answer")
	}
}

func TestPlanning_UnparseablePlanBecomesAnswer(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock("There is nothing to plan, the answer is 7.")
	deps := testDeps(t, mock)

	runner, err := NewPlanningRunner()
	if err != nil {
		t.Fatalf("NewPlanningRunner() error = %v", err)
	}

	state := agent.NewPlanningState(2)
	runner.Run(context.Background(), deps, state, "what is 3 + 4", "")

	if state.Summary != "There is nothing to plan, the answer is 7." {
		t.Errorf("Summary = %q, want the raw generation", state.Summary)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", mock.CallCount())
	}
	if len(state.CompletedSteps) != 0 {
		t.Errorf("CompletedSteps = %d, want 0", len(state.CompletedSteps))
	}
}
