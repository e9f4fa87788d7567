package statemachine

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/statekit"

	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/infrastructure/logging"
)

// PlanningContext carries a run through the planning statechart.
type PlanningContext struct {
	Deps  *Deps
	State *agent.PlanningState
}

const (
	planningPlan      statekit.StateID = "plan"
	planningExecute   statekit.StateID = "execute"
	planningEvaluate  statekit.StateID = "evaluate"
	planningReplan    statekit.StateID = "replan"
	planningSummarize statekit.StateID = "summarize"
	planningDone      statekit.StateID = "done"
)

// NewPlanningMachine builds the plan -> execute -> evaluate loop with a
// bounded replan branch.
func NewPlanningMachine() (*statekit.MachineConfig[*PlanningContext], error) {
	return statekit.NewMachine[*PlanningContext]("planning").
		WithInitial(planningPlan).
		WithContext(&PlanningContext{}).
		WithAction("logEntry", logPlanningTransition).
		WithGuard("hasSteps", guardHasSteps).
		WithGuard("canReplan", guardCanReplan).
		State(planningPlan).
		OnEntry("logEntry").
		On("EXECUTE").Target(planningExecute).Guard("hasSteps").
		On("SUMMARIZE").Target(planningSummarize).
		On("FINISH").Target(planningDone).
		Done().
		State(planningExecute).
		OnEntry("logEntry").
		On("EVALUATE").Target(planningEvaluate).
		On("FINISH").Target(planningDone).
		Done().
		State(planningEvaluate).
		OnEntry("logEntry").
		On("EXECUTE").Target(planningExecute).Guard("hasSteps").
		On("REPLAN").Target(planningReplan).Guard("canReplan").
		On("SUMMARIZE").Target(planningSummarize).
		On("FINISH").Target(planningDone).
		Done().
		State(planningReplan).
		OnEntry("logEntry").
		On("EXECUTE").Target(planningExecute).Guard("hasSteps").
		On("SUMMARIZE").Target(planningSummarize).
		On("FINISH").Target(planningDone).
		Done().
		State(planningSummarize).
		OnEntry("logEntry").
		On("FINISH").Target(planningDone).
		Done().
		State(planningDone).
		Final().
		OnEntry("logEntry").
		Done().
		Build()
}

func logPlanningTransition(ctx **PlanningContext, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Deps == nil {
		return
	}
	c := *ctx
	e := logging.Debug().
		Add(logging.RunID(c.Deps.RunID)).
		Add(logging.Strategy(agent.StrategyPlanning)).
		Add(logging.Str("event", string(event.Type)))
	if c.State != nil {
		e = e.Add(logging.Step(c.State.CurrentStep))
	}
	e.Msg("planning transition")
}

func guardHasSteps(ctx *PlanningContext, _ statekit.Event) bool {
	return ctx != nil && ctx.State != nil && ctx.State.HasRemainingSteps()
}

func guardCanReplan(ctx *PlanningContext, _ statekit.Event) bool {
	return ctx != nil && ctx.State != nil && ctx.State.CanReplan()
}

// PlanningRunner drives the planning machine over a state.
type PlanningRunner struct {
	machine *statekit.MachineConfig[*PlanningContext]
}

// NewPlanningRunner compiles the planning machine.
func NewPlanningRunner() (*PlanningRunner, error) {
	machine, err := NewPlanningMachine()
	if err != nil {
		return nil, err
	}
	return &PlanningRunner{machine: machine}, nil
}

// Run plans, executes each step, evaluates after every step, and
// summarizes. Step failures are recorded in the step results and the
// evaluator decides whether to replan around them.
func (r *PlanningRunner) Run(ctx context.Context, deps *Deps, state *agent.PlanningState, input, preamble string) {
	mctx := &PlanningContext{Deps: deps, State: state}
	interp := statekit.NewInterpreter(r.machine)
	interp.UpdateContext(func(c **PlanningContext) { *c = mctx })
	interp.Start()

	if state.Goal == "" {
		state.Goal = input
	}
	if len(state.Messages()) == 0 {
		state.Append(agent.NewMessage(agent.RoleUser, input))
	}
	catalog := toolCatalog(deps.Tools.List())

	finish := func() { interp.Send(statekit.Event{Type: "FINISH"}) }

	if state.Summary != "" {
		finish()
		return
	}

	// A restored state keeps its plan; only a fresh run plans.
	if len(state.Plan) == 0 {
		planText, err := deps.generate(ctx, "plan", planningPlanPrompt(preamble, state.Goal, catalog), state.Messages())
		if err != nil {
			state.Summary = "Error: " + err.Error()
			finish()
			return
		}
		state.Plan = parsePlanSteps(planText)
		state.Append(agent.NewMessage(agent.RoleAgent, planText))
		if len(state.Plan) == 0 {
			// No parseable steps: treat the whole generation as the answer.
			state.Summary = strings.TrimSpace(planText)
			finish()
			return
		}
	}
	if state.HasRemainingSteps() {
		interp.Send(statekit.Event{Type: "EXECUTE"})
	} else {
		r.summarize(ctx, deps, state, interp)
	}

	for !interp.Done() {
		if err := ctx.Err(); err != nil {
			state.Summary = "Error: " + err.Error()
			finish()
			return
		}
		if !state.HasRemainingSteps() {
			r.summarize(ctx, deps, state, interp)
			continue
		}

		description := state.Plan[state.CurrentStep]
		result := r.executeStep(ctx, deps, state, description, catalog)
		state.CompleteStep(result)

		// Every executed step is evaluated, the last one included: a
		// failed final step can still trigger a replan within budget.
		interp.Send(statekit.Event{Type: "EVALUATE"})
		evaluation, err := deps.generate(ctx, "evaluate",
			planningEvaluatePrompt(state.Goal, state.CompletedSteps, state.Plan[state.CurrentStep:]), state.Messages())
		if err != nil {
			state.Summary = "Error: " + err.Error()
			finish()
			return
		}
		state.Append(agent.NewMessage(agent.RoleAgent, evaluation))

		if wantsReplan(evaluation) && state.CanReplan() {
			interp.Send(statekit.Event{Type: "REPLAN"})
			newSteps := parsePlanSteps(evaluation)
			if len(newSteps) > 0 {
				state.Replan(newSteps)
				logging.Info().
					Add(logging.RunID(deps.RunID)).
					Add(logging.Step(state.CurrentStep)).
					Add(logging.Int("replans", state.Replans)).
					Msg("plan revised")
			}
			if state.HasRemainingSteps() {
				interp.Send(statekit.Event{Type: "EXECUTE"})
			} else {
				r.summarize(ctx, deps, state, interp)
			}
			continue
		}

		if state.HasRemainingSteps() {
			interp.Send(statekit.Event{Type: "EXECUTE"})
		} else {
			r.summarize(ctx, deps, state, interp)
		}
	}
}

// executeStep runs one plan step, calling a tool when the generation
// asks for one. Failures land in the step result.
func (r *PlanningRunner) executeStep(ctx context.Context, deps *Deps, state *agent.PlanningState, description, catalog string) agent.StepResult {
	result := agent.StepResult{
		Index:       state.CurrentStep,
		Description: description,
	}

	text, err := deps.generate(ctx, "execute",
		planningExecutePrompt(state.Goal, description, state.CompletedSteps, catalog), state.Messages())
	if err != nil {
		result.Failed = true
		result.Reason = err.Error()
		return result
	}
	state.Append(agent.NewMessage(agent.RoleAgent, text))

	step := parseReActOutput(text)
	if step.ActionName != "" && !step.IsFinal {
		observation, executed := deps.runTool(ctx, step.ActionName, step.ActionInput, description)
		if executed {
			state.RecordToolUse(step.ActionName)
		} else {
			result.Failed = true
			result.Reason = observation
		}
		result.Output = observation
		state.Append(agent.NewToolMessage(step.ActionName, observation))
		return result
	}

	result.Output = strings.TrimSpace(text)
	return result
}

// summarize produces the final answer and drives the machine to done.
func (r *PlanningRunner) summarize(ctx context.Context, deps *Deps, state *agent.PlanningState, interp *statekit.Interpreter[*PlanningContext]) {
	interp.Send(statekit.Event{Type: "SUMMARIZE"})

	summary, err := deps.generate(ctx, "summarize", planningSummaryPrompt(state.Goal, state.CompletedSteps), state.Messages())
	if err != nil {
		state.Summary = "Error: " + err.Error()
	} else {
		state.Summary = strings.TrimSpace(summary)
		state.Append(agent.NewMessage(agent.RoleAgent, summary))
	}
	interp.Send(statekit.Event{Type: "FINISH"})
}
