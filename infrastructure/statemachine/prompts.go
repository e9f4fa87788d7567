package statemachine

import (
	"fmt"
	"strings"

	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/domain/memory"
	"github.com/mcparena/arena-go/domain/tool"
)

// ConversationPreamble renders prior turns for inclusion in a prompt.
func ConversationPreamble(turns []memory.Turn) string {
	if len(turns) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, turn := range turns {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", turn.UserInput, turn.AgentResponse)
	}
	b.WriteString("\n")
	return b.String()
}

// toolCatalog renders the registered tools for the prompt, in
// registration order.
func toolCatalog(tools []tool.Tool) string {
	if len(tools) == 0 {
		return "No tools are available."
	}
	var b strings.Builder
	for _, t := range tools {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name(), t.Description())
	}
	return b.String()
}

func reflectionInitialPrompt(preamble, input string) string {
	return fmt.Sprintf("%sAnswer the following request as well as you can.\n\nRequest: %s", preamble, input)
}

func reflectionCritiquePrompt(input, response string) string {
	return fmt.Sprintf(
		"You previously answered a request. Critique your answer: point out errors, "+
			"omissions, or unclear reasoning. If the answer needs no improvement, reply "+
			"with exactly %s.\n\nRequest: %s\n\nAnswer: %s",
		noImprovementMarker, input, response)
}

func reflectionRefinePrompt(input, response, critique string) string {
	return fmt.Sprintf(
		"Improve your previous answer using the critique below. Reply with the full "+
			"improved answer only.\n\nRequest: %s\n\nPrevious answer: %s\n\nCritique: %s",
		input, response, critique)
}

func reactPrompt(preamble, input, catalog string, history []agent.Message) string {
	var b strings.Builder
	b.WriteString(preamble)
	fmt.Fprintf(&b,
		"Answer the request by reasoning step by step. You may call tools.\n\n"+
			"Available tools:\n%s\n"+
			"Use this format:\n"+
			"Thought: what you are thinking\n"+
			"Action: the tool to call\n"+
			"Action Input: the tool input as JSON\n\n"+
			"When you know the answer, reply with:\n"+
			"Final Answer: the answer\n\n"+
			"Request: %s\n",
		catalog, input)
	for _, m := range history {
		if m.Role == agent.RoleTool {
			fmt.Fprintf(&b, "Observation: %s\n", m.Content)
		} else if m.Role == agent.RoleAgent {
			b.WriteString(m.Content + "\n")
		}
	}
	return b.String()
}

func planningPlanPrompt(preamble, goal, catalog string) string {
	return fmt.Sprintf(
		"%sBreak the following goal into a short numbered list of concrete steps. "+
			"Each step must be achievable with reasoning or one of the tools below. "+
			"Reply with the numbered list only.\n\nAvailable tools:\n%s\nGoal: %s",
		preamble, catalog, goal)
}

func planningExecutePrompt(goal, step string, completed []agent.StepResult, catalog string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are working toward this goal: %s\n\n", goal)
	if len(completed) > 0 {
		b.WriteString("Completed steps:\n")
		for _, r := range completed {
			status := "ok"
			if r.Failed {
				status = "failed: " + r.Reason
			}
			fmt.Fprintf(&b, "%d. %s (%s): %s\n", r.Index+1, r.Description, status, r.Output)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b,
		"Execute this step: %s\n\n"+
			"If a tool is needed, reply with:\n"+
			"Action: the tool to call\n"+
			"Action Input: the tool input as JSON\n\n"+
			"Otherwise reply with the step's result directly.\n\nAvailable tools:\n%s",
		step, catalog)
	return b.String()
}

func planningEvaluatePrompt(goal string, completed []agent.StepResult, remaining []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n\nCompleted steps:\n", goal)
	for _, r := range completed {
		status := "ok"
		if r.Failed {
			status = "failed: " + r.Reason
		}
		fmt.Fprintf(&b, "%d. %s (%s): %s\n", r.Index+1, r.Description, status, r.Output)
	}
	if len(remaining) > 0 {
		b.WriteString("\nRemaining steps:\n")
		for _, step := range remaining {
			fmt.Fprintf(&b, "- %s\n", step)
		}
	}
	fmt.Fprintf(&b,
		"\nIs the plan still on track? If the remaining plan must change, reply with "+
			"%s followed by a new numbered list of steps. Otherwise reply CONTINUE.",
		replanMarker)
	return b.String()
}

func planningSummaryPrompt(goal string, completed []agent.StepResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n\nStep results:\n", goal)
	for _, r := range completed {
		status := "ok"
		if r.Failed {
			status = "failed: " + r.Reason
		}
		fmt.Fprintf(&b, "%d. %s (%s): %s\n", r.Index+1, r.Description, status, r.Output)
	}
	b.WriteString("\nWrite the final answer to the goal based on these results.")
	return b.String()
}
