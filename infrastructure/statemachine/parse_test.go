package statemachine

import (
	"testing"
)

func TestParseReActOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		text        string
		wantFinal   bool
		wantAnswer  string
		wantThought string
		wantAction  string
		wantInput   string
	}{
		{
			name:       "final answer",
			text:       "Thought: I know this\nFinal Answer: 42",
			wantFinal:  true,
			wantAnswer: "42",
		},
		{
			name:        "tool call with json input",
			text:        "Thought: need math\nAction: calculator\nAction Input: {\"expression\": \"2+2\"}",
			wantThought: "need math",
			wantAction:  "calculator",
			wantInput:   `{"expression": "2+2"}`,
		},
		{
			name:       "plain text input gets quoted",
			text:       "Action: search\nAction Input: weather in berlin",
			wantAction: "search",
			wantInput:  `"weather in berlin"`,
		},
		{
			name:       "no action falls back to final answer",
			text:       "I cannot use any tool here.",
			wantFinal:  true,
			wantAnswer: "I cannot use any tool here.",
		},
		{
			name:       "final answer wins over action",
			text:       "Final Answer: done\nAction: calculator",
			wantFinal:  true,
			wantAnswer: "done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			step := parseReActOutput(tt.text)
			if step.IsFinal != tt.wantFinal {
				t.Errorf("IsFinal = %v, want %v", step.IsFinal, tt.wantFinal)
			}
			if step.FinalAnswer != tt.wantAnswer {
				t.Errorf("FinalAnswer = %q, want %q", step.FinalAnswer, tt.wantAnswer)
			}
			if step.Thought != tt.wantThought {
				t.Errorf("Thought = %q, want %q", step.Thought, tt.wantThought)
			}
			if step.ActionName != tt.wantAction {
				t.Errorf("ActionName = %q, want %q", step.ActionName, tt.wantAction)
			}
			if string(step.ActionInput) != tt.wantInput {
				t.Errorf("ActionInput = %q, want %q", step.ActionInput, tt.wantInput)
			}
		})
	}
}

func TestParsePlanSteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "numbered with dots",
			text: "1. first\n2. second\n3. third",
			want: []string{"first", "second", "third"},
		},
		{
			name: "numbered with parens",
			text: "1) first\n2) second",
			want: []string{"first", "second"},
		},
		{
			name: "dashed",
			text: "- alpha\n- beta",
			want: []string{"alpha", "beta"},
		},
		{
			name: "prose lines ignored",
			text: "Here is the plan:\n1. do it\nThat is all.",
			want: []string{"do it"},
		},
		{
			name: "empty markers skipped",
			text: "1.\n2. real step",
			want: []string{"real step"},
		},
		{
			name: "no list",
			text: "just a paragraph of text",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parsePlanSteps(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("parsePlanSteps() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("step[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMarkers(t *testing.T) {
	t.Parallel()

	if !wantsReplan("REPLAN\n1. new step") {
		t.Error("wantsReplan should detect the marker")
	}
	if wantsReplan("CONTINUE") {
		t.Error("wantsReplan should not fire on CONTINUE")
	}
	if !isSatisfied("NO_FURTHER_IMPROVEMENT") {
		t.Error("isSatisfied should detect the marker")
	}
	if isSatisfied("needs more work") {
		t.Error("isSatisfied should not fire on a critique")
	}
}
