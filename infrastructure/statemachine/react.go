package statemachine

import (
	"context"

	"github.com/felixgeelhaar/statekit"

	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/infrastructure/logging"
)

// ReActContext carries a run through the ReAct statechart.
type ReActContext struct {
	Deps  *Deps
	State *agent.ReActState
}

const (
	reactThink   statekit.StateID = "think"
	reactAct     statekit.StateID = "act"
	reactObserve statekit.StateID = "observe"
	reactDone    statekit.StateID = "done"
)

// NewReActMachine builds the think -> act -> observe loop. The loop
// exits on a final answer or when the step budget runs out.
func NewReActMachine() (*statekit.MachineConfig[*ReActContext], error) {
	return statekit.NewMachine[*ReActContext]("react").
		WithInitial(reactThink).
		WithContext(&ReActContext{}).
		WithAction("logEntry", logReActTransition).
		WithGuard("withinBudget", guardWithinBudget).
		State(reactThink).
		OnEntry("logEntry").
		On("ACT").Target(reactAct).Guard("withinBudget").
		On("FINISH").Target(reactDone).
		Done().
		State(reactAct).
		OnEntry("logEntry").
		On("OBSERVE").Target(reactObserve).
		Done().
		State(reactObserve).
		OnEntry("logEntry").
		On("THINK").Target(reactThink).
		On("FINISH").Target(reactDone).
		Done().
		State(reactDone).
		Final().
		OnEntry("logEntry").
		Done().
		Build()
}

func logReActTransition(ctx **ReActContext, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Deps == nil {
		return
	}
	c := *ctx
	e := logging.Debug().
		Add(logging.RunID(c.Deps.RunID)).
		Add(logging.Strategy(agent.StrategyReact)).
		Add(logging.Str("event", string(event.Type)))
	if c.State != nil {
		e = e.Add(logging.Step(c.State.StepCount))
	}
	e.Msg("react transition")
}

// guardWithinBudget blocks ACT once the completed-cycle count reaches
// the budget. StepCount advances on OBSERVE, so at ACT time it still
// holds the count of prior completed cycles.
func guardWithinBudget(ctx *ReActContext, _ statekit.Event) bool {
	return ctx != nil && ctx.State != nil && ctx.State.CanStep()
}

// ReActRunner drives the ReAct machine over a state.
type ReActRunner struct {
	machine *statekit.MachineConfig[*ReActContext]
}

// NewReActRunner compiles the ReAct machine.
func NewReActRunner() (*ReActRunner, error) {
	machine, err := NewReActMachine()
	if err != nil {
		return nil, err
	}
	return &ReActRunner{machine: machine}, nil
}

// Run executes the think-act-observe loop until the statechart reaches
// its final state. Tool failures and policy rejections surface as
// observations so the next thought can react to them.
func (r *ReActRunner) Run(ctx context.Context, deps *Deps, state *agent.ReActState, input, preamble string) {
	mctx := &ReActContext{Deps: deps, State: state}
	interp := statekit.NewInterpreter(r.machine)
	interp.UpdateContext(func(c **ReActContext) { *c = mctx })
	interp.Start()

	if len(state.Messages()) == 0 {
		state.Append(agent.NewMessage(agent.RoleUser, input))
	}
	catalog := toolCatalog(deps.Tools.List())

	finish := func() { interp.Send(statekit.Event{Type: "FINISH"}) }

	if state.FinalAnswer != "" {
		finish()
		return
	}

	for !interp.Done() {
		if err := ctx.Err(); err != nil {
			state.Truncated = true
			state.FinalAnswer = "Error: " + err.Error()
			finish()
			return
		}
		if !state.CanStep() {
			state.Truncated = true
			finish()
			continue
		}

		prompt := reactPrompt(preamble, input, catalog, state.Messages())
		text, err := deps.generate(ctx, "think", prompt, state.Messages())
		if err != nil {
			state.FinalAnswer = "Error: " + err.Error()
			finish()
			return
		}
		state.Append(agent.NewMessage(agent.RoleAgent, text))

		step := parseReActOutput(text)
		state.Thought = step.Thought

		if step.IsFinal {
			state.FinalAnswer = step.FinalAnswer
			finish()
			continue
		}

		state.Action = &agent.Action{
			Tool:   step.ActionName,
			Input:  step.ActionInput,
			Reason: step.Thought,
		}
		interp.Send(statekit.Event{Type: "ACT"})

		observation, executed := deps.runTool(ctx, step.ActionName, step.ActionInput, step.Thought)
		state.Observation = observation
		if executed {
			state.RecordToolUse(step.ActionName)
		}
		state.Append(agent.NewToolMessage(step.ActionName, observation))

		// A cycle counts once its observation lands; pure final-answer
		// thinking leaves StepCount untouched.
		interp.Send(statekit.Event{Type: "OBSERVE"})
		state.StepCount++
		interp.Send(statekit.Event{Type: "THINK"})
	}
}
