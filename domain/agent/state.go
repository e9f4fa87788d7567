package agent

import "encoding/json"

// State is the mutable, strategy-specific snapshot of one in-progress
// process call. A State instance is owned by exactly one run and is
// never shared across concurrent steps, so variants need no locking.
type State interface {
	// Strategy returns the variant tag.
	Strategy() Strategy

	// Messages returns the ordered conversation history.
	Messages() []Message

	// Append adds a message to the history. Prior entries are never rewritten.
	Append(m Message)

	// Snapshot serializes the state to a structured record sufficient to
	// resume the run across a process restart.
	Snapshot() (json.RawMessage, error)
}

// thread holds the append-only message history shared by all state variants.
type thread struct {
	Thread []Message `json:"messages"`
}

// Messages returns the ordered conversation history.
func (t *thread) Messages() []Message {
	return t.Thread
}

// Append adds a message to the history.
func (t *thread) Append(m Message) {
	t.Thread = append(t.Thread, m)
}

// RestoreState deserializes a snapshot back into its concrete variant.
func RestoreState(strategy Strategy, raw json.RawMessage) (State, error) {
	switch strategy {
	case StrategyReflection:
		var s ReflectionState
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return &s, nil
	case StrategyReact:
		var s ReActState
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return &s, nil
	case StrategyPlanning:
		var s PlanningState
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return &s, nil
	default:
		return nil, ErrUnknownStrategy
	}
}
