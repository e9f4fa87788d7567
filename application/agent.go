// Package application wires the domain and infrastructure into
// runnable agents.
package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/domain/config"
	"github.com/mcparena/arena-go/domain/memory"
	"github.com/mcparena/arena-go/domain/policy"
	"github.com/mcparena/arena-go/domain/tool"
	"github.com/mcparena/arena-go/infrastructure/generation"
	"github.com/mcparena/arena-go/infrastructure/logging"
	"github.com/mcparena/arena-go/infrastructure/resilience"
	"github.com/mcparena/arena-go/infrastructure/statemachine"
)

// Result is the outcome of one processed input. A run that hit its
// iteration bound or a failing step still produces a Result; the error
// surfaces in the output text and the state.
type Result struct {
	RunID     string
	Strategy  agent.Strategy
	Output    string
	ToolsUsed []string
	Truncated bool
	Duration  time.Duration
	State     agent.State
}

// Agent processes inputs with one reasoning strategy. Each Process call
// builds a fresh state; only the attached memory carries over between
// calls.
type Agent struct {
	name     string
	strategy agent.Strategy
	settings config.AgentSettings

	provider generation.Provider
	tools    tool.Registry
	policies *policy.Chain
	executor *resilience.Executor

	conversation memory.Conversation
	episodic     memory.Episodic
	kv           memory.Store

	reflection *statemachine.ReflectionRunner
	react      *statemachine.ReActRunner
	planning   *statemachine.PlanningRunner

	lastState agent.State
}

// newAgent compiles the strategy machines and returns a ready agent.
func newAgent(name string, strategy agent.Strategy, settings config.AgentSettings,
	provider generation.Provider, tools tool.Registry, policies *policy.Chain,
	executor *resilience.Executor) (*Agent, error) {

	reflection, err := statemachine.NewReflectionRunner()
	if err != nil {
		return nil, fmt.Errorf("compile reflection machine: %w", err)
	}
	react, err := statemachine.NewReActRunner()
	if err != nil {
		return nil, fmt.Errorf("compile react machine: %w", err)
	}
	planning, err := statemachine.NewPlanningRunner()
	if err != nil {
		return nil, fmt.Errorf("compile planning machine: %w", err)
	}

	if executor == nil {
		executor = resilience.NewDefaultExecutor()
	}
	if policies == nil {
		policies = policy.NewChain()
	}

	return &Agent{
		name:       name,
		strategy:   strategy,
		settings:   settings,
		provider:   provider,
		tools:      tools,
		policies:   policies,
		executor:   executor,
		reflection: reflection,
		react:      react,
		planning:   planning,
	}, nil
}

// Name returns the agent's configured name.
func (a *Agent) Name() string {
	return a.name
}

// Strategy returns the agent's reasoning strategy.
func (a *Agent) Strategy() agent.Strategy {
	return a.strategy
}

// AddTool registers a tool. Registering a duplicate name fails.
func (a *Agent) AddTool(t tool.Tool) error {
	return a.tools.Register(t)
}

// ReplaceTool installs a tool, overriding any existing registration.
func (a *Agent) ReplaceTool(t tool.Tool) {
	a.tools.Replace(t)
}

// AddPolicy appends a policy to the gate chain.
func (a *Agent) AddPolicy(p policy.Policy) {
	a.policies.Add(p)
}

// SetConversation attaches a conversation memory.
func (a *Agent) SetConversation(c memory.Conversation) {
	a.conversation = c
}

// SetEpisodic attaches an episodic memory.
func (a *Agent) SetEpisodic(e memory.Episodic) {
	a.episodic = e
}

// SetStore attaches a key-value memory.
func (a *Agent) SetStore(s memory.Store) {
	a.kv = s
}

// Store returns the attached key-value memory, or nil.
func (a *Agent) Store() memory.Store {
	return a.kv
}

// State returns the state of the most recent run, or nil before the
// first run.
func (a *Agent) State() agent.State {
	return a.lastState
}

// Graph describes the statechart of the agent's strategy.
func (a *Agent) Graph() (statemachine.Description, error) {
	return statemachine.Describe(a.strategy)
}

// Process runs the strategy over one input. The returned error covers
// rejected inputs only; failures inside the run land in the Result.
func (a *Agent) Process(ctx context.Context, input string) (Result, error) {
	if strings.TrimSpace(input) == "" {
		return Result{}, agent.ErrEmptyInput
	}

	state, err := a.newState()
	if err != nil {
		return Result{}, err
	}
	return a.run(ctx, state, input)
}

// Resume restores a serialized state and continues processing it.
func (a *Agent) Resume(ctx context.Context, raw json.RawMessage) (Result, error) {
	state, err := agent.RestoreState(a.strategy, raw)
	if err != nil {
		return Result{}, fmt.Errorf("restore state: %w", err)
	}

	input := firstUserInput(state.Messages())
	if input == "" {
		return Result{}, fmt.Errorf("%w: restored state has no input", agent.ErrStateMismatch)
	}
	return a.run(ctx, state, input)
}

func (a *Agent) run(ctx context.Context, state agent.State, input string) (Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	deps := &statemachine.Deps{
		Provider:    a.provider,
		Tools:       a.tools,
		Policies:    a.policies,
		Executor:    a.executor,
		RunID:       runID,
		Temperature: a.settings.Temperature,
		MaxTokens:   a.settings.MaxTokens,
	}

	preamble := a.recentPreamble(ctx)

	logging.Info().
		Add(logging.RunID(runID)).
		Add(logging.Strategy(a.strategy)).
		Add(logging.Str("agent", a.name)).
		Msg("run started")

	result := Result{
		RunID:    runID,
		Strategy: a.strategy,
		State:    state,
	}

	switch s := state.(type) {
	case *agent.ReflectionState:
		a.reflection.Run(ctx, deps, s, input, preamble)
		result.Output = s.Final()
	case *agent.ReActState:
		a.react.Run(ctx, deps, s, input, preamble)
		result.Output = s.Final()
		result.ToolsUsed = s.ToolsUsed
		result.Truncated = s.Truncated
	case *agent.PlanningState:
		a.planning.Run(ctx, deps, s, input, preamble)
		result.Output = s.Final()
		result.ToolsUsed = s.ToolsUsed
	default:
		return Result{}, fmt.Errorf("%w: %T", agent.ErrStateMismatch, state)
	}

	result.Output = a.policies.FilterResponse(result.Output)
	result.Duration = time.Since(start)
	a.lastState = state

	a.remember(ctx, input, result)

	logging.Info().
		Add(logging.RunID(runID)).
		Add(logging.Strategy(a.strategy)).
		Add(logging.Duration(result.Duration)).
		Msg("run finished")

	return result, nil
}

// newState builds a fresh state for the agent's strategy.
func (a *Agent) newState() (agent.State, error) {
	switch a.strategy {
	case agent.StrategyReflection:
		return agent.NewReflectionState(a.settings.MaxReflections), nil
	case agent.StrategyReact:
		return agent.NewReActState(a.settings.MaxSteps), nil
	case agent.StrategyPlanning:
		return agent.NewPlanningState(a.settings.MaxReplans), nil
	default:
		return nil, fmt.Errorf("%w: %s", agent.ErrUnknownStrategy, a.strategy)
	}
}

// recentPreamble renders the attached conversation memory for prompts.
func (a *Agent) recentPreamble(ctx context.Context) string {
	if a.conversation == nil {
		return ""
	}
	turns, err := a.conversation.RecentContext(ctx, 5)
	if err != nil {
		logging.Warn().Add(logging.ErrorField(err)).Msg("conversation recall failed")
		return ""
	}
	return statemachine.ConversationPreamble(turns)
}

// remember writes the finished run into the attached memories. Memory
// failures are logged, never propagated.
func (a *Agent) remember(ctx context.Context, input string, result Result) {
	if a.conversation != nil {
		err := a.conversation.AddTurn(ctx, memory.Turn{
			UserInput:     input,
			AgentResponse: result.Output,
			Timestamp:     time.Now(),
		})
		if err != nil {
			logging.Warn().Add(logging.ErrorField(err)).Msg("conversation write failed")
		}
	}
	if a.episodic != nil {
		_, err := a.episodic.AddEpisode(ctx, memory.Episode{
			Content:   input,
			Outcome:   result.Output,
			ToolsUsed: result.ToolsUsed,
			Timestamp: time.Now(),
		})
		if err != nil {
			logging.Warn().Add(logging.ErrorField(err)).Msg("episodic write failed")
		}
	}
}

// firstUserInput finds the original input in a message thread.
func firstUserInput(messages []agent.Message) string {
	for _, m := range messages {
		if m.Role == agent.RoleUser {
			return m.Content
		}
	}
	return ""
}
