package agent

import "errors"

// Domain errors for the agent model.
var (
	// ErrUnknownStrategy indicates a strategy name outside the closed set.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrEmptyInput indicates a process call with no input.
	ErrEmptyInput = errors.New("input cannot be empty")

	// ErrNilState indicates an operation on a nil agent state.
	ErrNilState = errors.New("agent state is nil")

	// ErrStateMismatch indicates a snapshot restored into the wrong variant.
	ErrStateMismatch = errors.New("snapshot strategy does not match state variant")
)
