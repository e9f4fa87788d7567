package statemachine

import (
	"context"
	"errors"
	"testing"

	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/infrastructure/generation"
)

func TestReflection_NoBudgetReturnsInitialResponse(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock("the initial answer")
	deps := testDeps(t, mock)

	runner, err := NewReflectionRunner()
	if err != nil {
		t.Fatalf("NewReflectionRunner() error = %v", err)
	}

	state := agent.NewReflectionState(0)
	runner.Run(context.Background(), deps, state, "what is the answer", "")

	if got := state.Final(); got != "the initial answer" {
		t.Errorf("Final() = %q, want %q", got, "the initial answer")
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1 (no reflection calls)", mock.CallCount())
	}
	if state.ReflectionCount != 0 {
		t.Errorf("ReflectionCount = %d, want 0", state.ReflectionCount)
	}
}

func TestReflection_StopsOnNoImprovementMarker(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock(
		"a solid draft",
		"NO_FURTHER_IMPROVEMENT",
	)
	deps := testDeps(t, mock)

	runner, err := NewReflectionRunner()
	if err != nil {
		t.Fatalf("NewReflectionRunner() error = %v", err)
	}

	state := agent.NewReflectionState(3)
	runner.Run(context.Background(), deps, state, "write a draft", "")

	if got := state.Final(); got != "a solid draft" {
		t.Errorf("Final() = %q, want the unrefined draft", got)
	}
	if state.ReflectionCount != 0 {
		t.Errorf("ReflectionCount = %d, want 0 (marker critique is not a completed cycle)", state.ReflectionCount)
	}
	if got := state.Final(); got != state.InitialResponse {
		t.Errorf("Final() = %q, want InitialResponse with zero completed cycles", got)
	}
	if mock.CallCount() != 2 {
		t.Errorf("CallCount() = %d, want 2 (no refine call after the marker)", mock.CallCount())
	}
}

func TestReflection_RefinesUntilBudgetExhausted(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock(
		"draft one",
		"too vague",
		"draft two",
		"still too vague",
		"draft three",
	)
	deps := testDeps(t, mock)

	runner, err := NewReflectionRunner()
	if err != nil {
		t.Fatalf("NewReflectionRunner() error = %v", err)
	}

	state := agent.NewReflectionState(2)
	runner.Run(context.Background(), deps, state, "write a draft", "")

	if got := state.Final(); got != "draft three" {
		t.Errorf("Final() = %q, want %q", got, "draft three")
	}
	if state.ReflectionCount != 2 {
		t.Errorf("ReflectionCount = %d, want 2", state.ReflectionCount)
	}
	if state.InitialResponse != "draft one" {
		t.Errorf("InitialResponse = %q, want %q", state.InitialResponse, "draft one")
	}
}

func TestReflection_GenerationFailureRecorded(t *testing.T) {
	t.Parallel()

	mock := generation.NewMock("unused")
	mock.FailAt(0, errors.New("provider down"))
	deps := testDeps(t, mock)

	runner, err := NewReflectionRunner()
	if err != nil {
		t.Fatalf("NewReflectionRunner() error = %v", err)
	}

	state := agent.NewReflectionState(3)
	runner.Run(context.Background(), deps, state, "anything", "")

	if state.FailureReason == "" {
		t.Error("expected a failure reason after generation error")
	}
	if state.Final() != "" {
		t.Errorf("Final() = %q, want empty", state.Final())
	}
}
