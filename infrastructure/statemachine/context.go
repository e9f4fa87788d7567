// Package statemachine drives the reasoning strategies as statekit
// statecharts.
package statemachine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/domain/policy"
	"github.com/mcparena/arena-go/domain/tool"
	"github.com/mcparena/arena-go/infrastructure/generation"
	"github.com/mcparena/arena-go/infrastructure/logging"
	"github.com/mcparena/arena-go/infrastructure/resilience"
)

// Deps carries the collaborators every strategy machine needs.
type Deps struct {
	Provider generation.Provider
	Tools    tool.Registry
	Policies *policy.Chain
	Executor *resilience.Executor

	RunID       string
	Temperature float64
	MaxTokens   int
}

// generate calls the provider with the run's message history as
// conversation context and logs the round trip.
func (d *Deps) generate(ctx context.Context, phase, prompt string, history []agent.Message) (string, error) {
	resp, err := d.Provider.Generate(ctx, generation.Request{
		Prompt:      prompt,
		Context:     history,
		Temperature: d.Temperature,
		MaxTokens:   d.MaxTokens,
	})
	if err != nil {
		logging.Warn().
			Add(logging.RunID(d.RunID)).
			Add(logging.Phase(phase)).
			Add(logging.ErrorField(err)).
			Msg("generation failed")
		return "", err
	}
	logging.Debug().
		Add(logging.RunID(d.RunID)).
		Add(logging.Phase(phase)).
		Add(logging.Int("response_len", len(resp.Text))).
		Msg("generation complete")
	return resp.Text, nil
}

// runTool resolves, gates, and executes a tool. Failures never escape
// as errors; they come back as the observation text so the strategy can
// reason about them.
func (d *Deps) runTool(ctx context.Context, name string, input json.RawMessage, reason string) (observation string, executed bool) {
	t, ok := d.Tools.Get(name)
	if !ok {
		logging.Warn().
			Add(logging.RunID(d.RunID)).
			Add(logging.ToolName(name)).
			Msg("tool not found")
		return fmt.Sprintf("Error: tool %q is not registered. Available tools: %v", name, d.Tools.Names()), false
	}

	action := policy.Action{
		Tool:        name,
		Input:       input,
		Reason:      reason,
		Annotations: t.Annotations(),
	}
	gated, rejection := d.Policies.ValidateAction(action)
	if rejection != nil {
		logging.Info().
			Add(logging.RunID(d.RunID)).
			Add(logging.ToolName(name)).
			Add(logging.PolicyName(rejection.Policy)).
			Add(logging.Reason(rejection.Reason)).
			Msg("action rejected by policy")
		return fmt.Sprintf("Error: action rejected by policy %s: %s", rejection.Policy, rejection.Reason), false
	}

	result, err := d.Executor.Execute(ctx, t, gated.Input)
	if err != nil {
		logging.Warn().
			Add(logging.RunID(d.RunID)).
			Add(logging.ToolName(name)).
			Add(logging.ErrorField(err)).
			Msg("tool execution failed")
		return fmt.Sprintf("Error: tool %s failed: %v", name, err), false
	}

	logging.Debug().
		Add(logging.RunID(d.RunID)).
		Add(logging.ToolName(name)).
		Add(logging.Duration(result.Duration)).
		Msg("tool executed")
	return result.OutputString(), true
}
