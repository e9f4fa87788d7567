package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/mcparena/arena-go/domain/tool"
)

func TestCalculator_Evaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expression string
		want       string
	}{
		{"2 + 2", "4"},
		{"2 * (3 + 4)", "14"},
		{"10 / 4", "2.5"},
		{"10 % 3", "1"},
		{"2 ^ 10", "1024"},
		{"2 ^ 3 ^ 2", "512"},
		{"-5 + 3", "-2"},
		{"-(2 + 3)", "-5"},
		{"1.5 * 2", "3"},
		{"((1))", "1"},
	}

	calc := NewCalculator()
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			t.Parallel()

			input, _ := json.Marshal(map[string]string{"expression": tt.expression})
			result, err := calc.Execute(context.Background(), input)
			if err != nil {
				t.Fatalf("Execute(%q) error = %v", tt.expression, err)
			}
			if got := result.OutputString(); got != tt.want {
				t.Errorf("Execute(%q) = %q, want %q", tt.expression, got, tt.want)
			}
		})
	}
}

func TestCalculator_InvalidExpressions(t *testing.T) {
	t.Parallel()

	tests := []string{
		"",
		"2 +",
		"(2 + 3",
		"abc",
		"1 / 0",
		"2 ** 3",
		"__import__('os')",
	}

	calc := NewCalculator()
	for _, expression := range tests {
		t.Run(fmt.Sprintf("%q", expression), func(t *testing.T) {
			t.Parallel()

			input, _ := json.Marshal(map[string]string{"expression": expression})
			_, err := calc.Execute(context.Background(), input)
			if !errors.Is(err, tool.ErrExecutionFailed) {
				t.Errorf("Execute(%q) error = %v, want ErrExecutionFailed", expression, err)
			}
		})
	}
}

func TestCalculator_Annotations(t *testing.T) {
	t.Parallel()

	calc := NewCalculator()
	ann := calc.Annotations()
	if !ann.ReadOnly {
		t.Error("calculator should be read-only")
	}
	if !ann.CanRetry() {
		t.Error("calculator should be retryable")
	}
	if ann.RiskLevel != tool.RiskNone {
		t.Errorf("RiskLevel = %v, want RiskNone", ann.RiskLevel)
	}
}
