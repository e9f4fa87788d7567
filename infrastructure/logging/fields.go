package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/mcparena/arena-go/domain/agent"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// RunID adds a run ID field.
func RunID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("run_id", id)
	}
}

// Strategy adds a strategy field.
func Strategy(s agent.Strategy) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("strategy", string(s))
	}
}

// Phase adds a state-machine phase field.
func Phase(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("phase", name)
	}
}

// Step adds a step counter field.
func Step(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("step", n)
	}
}

// ToolName adds a tool name field.
func ToolName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("tool", name)
	}
}

// PolicyName adds a policy name field.
func PolicyName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("policy", name)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Reason adds a reason field.
func Reason(reason string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("reason", reason)
	}
}

// Str adds a string field with a custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

// Int adds an int field with a custom key.
func Int(key string, value int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, value)
	}
}
