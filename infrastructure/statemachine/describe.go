package statemachine

import (
	"fmt"
	"strings"

	"github.com/mcparena/arena-go/domain/agent"
)

// Edge is one transition in a strategy statechart.
type Edge struct {
	From  string
	Event string
	To    string
	Guard string
}

// Description lists a statechart's states and transitions for
// inspection and debugging.
type Description struct {
	Strategy agent.Strategy
	Initial  string
	States   []string
	Edges    []Edge
}

// Describe returns the statechart for a strategy.
func Describe(strategy agent.Strategy) (Description, error) {
	switch strategy {
	case agent.StrategyReflection:
		return Description{
			Strategy: strategy,
			Initial:  string(reflectionGenerate),
			States:   []string{"generate", "reflect", "refine", "done"},
			Edges: []Edge{
				{From: "generate", Event: "REFLECT", To: "reflect", Guard: "canReflect"},
				{From: "generate", Event: "FINISH", To: "done"},
				{From: "reflect", Event: "REFINE", To: "refine"},
				{From: "reflect", Event: "FINISH", To: "done"},
				{From: "refine", Event: "REFLECT", To: "reflect", Guard: "canReflect"},
				{From: "refine", Event: "FINISH", To: "done"},
			},
		}, nil
	case agent.StrategyReact:
		return Description{
			Strategy: strategy,
			Initial:  string(reactThink),
			States:   []string{"think", "act", "observe", "done"},
			Edges: []Edge{
				{From: "think", Event: "ACT", To: "act", Guard: "withinBudget"},
				{From: "think", Event: "FINISH", To: "done"},
				{From: "act", Event: "OBSERVE", To: "observe"},
				{From: "observe", Event: "THINK", To: "think"},
				{From: "observe", Event: "FINISH", To: "done"},
			},
		}, nil
	case agent.StrategyPlanning:
		return Description{
			Strategy: strategy,
			Initial:  string(planningPlan),
			States:   []string{"plan", "execute", "evaluate", "replan", "summarize", "done"},
			Edges: []Edge{
				{From: "plan", Event: "EXECUTE", To: "execute", Guard: "hasSteps"},
				{From: "plan", Event: "SUMMARIZE", To: "summarize"},
				{From: "plan", Event: "FINISH", To: "done"},
				{From: "execute", Event: "EVALUATE", To: "evaluate"},
				{From: "execute", Event: "FINISH", To: "done"},
				{From: "evaluate", Event: "EXECUTE", To: "execute", Guard: "hasSteps"},
				{From: "evaluate", Event: "REPLAN", To: "replan", Guard: "canReplan"},
				{From: "evaluate", Event: "SUMMARIZE", To: "summarize"},
				{From: "evaluate", Event: "FINISH", To: "done"},
				{From: "replan", Event: "EXECUTE", To: "execute", Guard: "hasSteps"},
				{From: "replan", Event: "SUMMARIZE", To: "summarize"},
				{From: "replan", Event: "FINISH", To: "done"},
				{From: "summarize", Event: "FINISH", To: "done"},
			},
		}, nil
	default:
		return Description{}, fmt.Errorf("%w: %s", agent.ErrUnknownStrategy, strategy)
	}
}

// String renders the statechart as one edge per line.
func (d Description) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (initial: %s)\n", d.Strategy, d.Initial)
	for _, e := range d.Edges {
		if e.Guard != "" {
			fmt.Fprintf(&b, "  %s --%s[%s]--> %s\n", e.From, e.Event, e.Guard, e.To)
		} else {
			fmt.Fprintf(&b, "  %s --%s--> %s\n", e.From, e.Event, e.To)
		}
	}
	return b.String()
}
