package agent

import "testing"

func TestStrategy_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		strategy Strategy
		want     bool
	}{
		{"reflection", StrategyReflection, true},
		{"react", StrategyReact, true},
		{"planning", StrategyPlanning, true},
		{"empty", Strategy(""), false},
		{"unknown", Strategy("freeform"), false},
		{"case sensitive", Strategy("ReAct"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.strategy.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllStrategies(t *testing.T) {
	t.Parallel()

	all := AllStrategies()
	if len(all) != 3 {
		t.Fatalf("AllStrategies() returned %d strategies, want 3", len(all))
	}
	for _, s := range all {
		if !s.IsValid() {
			t.Errorf("AllStrategies() contains invalid strategy %q", s)
		}
	}
}

func TestRole_IsValid(t *testing.T) {
	t.Parallel()

	for _, r := range []Role{RoleUser, RoleAgent, RoleTool} {
		if !r.IsValid() {
			t.Errorf("role %q should be valid", r)
		}
	}
	if Role("system").IsValid() {
		t.Error("role \"system\" should be invalid")
	}
}
