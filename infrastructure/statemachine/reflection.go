package statemachine

import (
	"context"

	"github.com/felixgeelhaar/statekit"

	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/infrastructure/logging"
)

// ReflectionContext carries a run through the reflection statechart.
type ReflectionContext struct {
	Deps  *Deps
	State *agent.ReflectionState
}

const (
	reflectionGenerate statekit.StateID = "generate"
	reflectionReflect  statekit.StateID = "reflect"
	reflectionRefine   statekit.StateID = "refine"
	reflectionDone     statekit.StateID = "done"
)

// NewReflectionMachine builds the generate -> reflect -> refine loop.
// The loop exits when the critique declares no improvement or the
// reflection budget runs out.
func NewReflectionMachine() (*statekit.MachineConfig[*ReflectionContext], error) {
	return statekit.NewMachine[*ReflectionContext]("reflection").
		WithInitial(reflectionGenerate).
		WithContext(&ReflectionContext{}).
		WithAction("logEntry", logReflectionTransition).
		WithGuard("canReflect", guardCanReflect).
		State(reflectionGenerate).
		OnEntry("logEntry").
		On("REFLECT").Target(reflectionReflect).Guard("canReflect").
		On("FINISH").Target(reflectionDone).
		Done().
		State(reflectionReflect).
		OnEntry("logEntry").
		On("REFINE").Target(reflectionRefine).
		On("FINISH").Target(reflectionDone).
		Done().
		State(reflectionRefine).
		OnEntry("logEntry").
		On("REFLECT").Target(reflectionReflect).Guard("canReflect").
		On("FINISH").Target(reflectionDone).
		Done().
		State(reflectionDone).
		Final().
		OnEntry("logEntry").
		Done().
		Build()
}

func logReflectionTransition(ctx **ReflectionContext, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Deps == nil {
		return
	}
	c := *ctx
	logging.Debug().
		Add(logging.RunID(c.Deps.RunID)).
		Add(logging.Strategy(agent.StrategyReflection)).
		Add(logging.Str("event", string(event.Type))).
		Msg("reflection transition")
}

func guardCanReflect(ctx *ReflectionContext, _ statekit.Event) bool {
	return ctx != nil && ctx.State != nil && ctx.State.CanReflect()
}

// ReflectionRunner drives the reflection machine over a state.
type ReflectionRunner struct {
	machine *statekit.MachineConfig[*ReflectionContext]
}

// NewReflectionRunner compiles the reflection machine.
func NewReflectionRunner() (*ReflectionRunner, error) {
	machine, err := NewReflectionMachine()
	if err != nil {
		return nil, err
	}
	return &ReflectionRunner{machine: machine}, nil
}

// Run executes the reflection loop until the statechart reaches its
// final state. Generation failures stop the loop and land in the
// state's failure reason rather than escaping.
func (r *ReflectionRunner) Run(ctx context.Context, deps *Deps, state *agent.ReflectionState, input, preamble string) {
	mctx := &ReflectionContext{Deps: deps, State: state}
	interp := statekit.NewInterpreter(r.machine)
	interp.UpdateContext(func(c **ReflectionContext) { *c = mctx })
	interp.Start()

	if len(state.Messages()) == 0 {
		state.Append(agent.NewMessage(agent.RoleUser, input))
	}

	finish := func() { interp.Send(statekit.Event{Type: "FINISH"}) }

	// A restored state keeps its draft; only a fresh run generates one.
	if state.InitialResponse == "" {
		text, err := deps.generate(ctx, "generate", reflectionInitialPrompt(preamble, input), state.Messages())
		if err != nil {
			state.FailureReason = err.Error()
			finish()
			return
		}
		state.InitialResponse = text
		state.Append(agent.NewMessage(agent.RoleAgent, text))
	}

	for !interp.Done() {
		if err := ctx.Err(); err != nil {
			state.FailureReason = err.Error()
			finish()
			return
		}
		if !state.CanReflect() {
			finish()
			continue
		}

		interp.Send(statekit.Event{Type: "REFLECT"})
		critique, err := deps.generate(ctx, "reflect", reflectionCritiquePrompt(input, state.Latest()), state.Messages())
		if err != nil {
			state.FailureReason = err.Error()
			finish()
			return
		}
		state.CurrentReflection = critique
		state.Append(agent.NewMessage(agent.RoleAgent, critique))

		// A marker-only critique ends the loop without counting as a
		// cycle: ReflectionCount tracks completed reflect/refine pairs,
		// so the terminal response equals the initial one exactly when
		// the count is zero.
		if isSatisfied(critique) {
			finish()
			continue
		}

		interp.Send(statekit.Event{Type: "REFINE"})
		refined, err := deps.generate(ctx, "refine", reflectionRefinePrompt(input, state.Latest(), critique), state.Messages())
		if err != nil {
			state.FailureReason = err.Error()
			finish()
			return
		}
		state.RefinedResponse = refined
		state.ReflectionCount++
		state.Append(agent.NewMessage(agent.RoleAgent, refined))
	}
}
