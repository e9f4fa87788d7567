package generation

import (
	"context"
	"fmt"
	"sync"
)

// Mock returns a predefined sequence of responses for testing.
// When the sequence is exhausted it echoes the prompt.
type Mock struct {
	responses []string
	errs      []error
	index     int
	calls     []Request
	mu        sync.Mutex
}

// NewMock creates a mock provider with the given responses.
func NewMock(responses ...string) *Mock {
	return &Mock{responses: responses}
}

// Name returns the provider name.
func (m *Mock) Name() string {
	return "mock"
}

// FailAt makes the i-th call (zero-based) return err.
func (m *Mock) FailAt(i int, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.errs) <= i {
		m.errs = append(m.errs, nil)
	}
	m.errs[i] = err
	return m
}

// Generate returns the next response in the sequence.
func (m *Mock) Generate(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index
	m.index++
	m.calls = append(m.calls, req)

	if i < len(m.errs) && m.errs[i] != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrGeneration, m.errs[i])
	}
	if i < len(m.responses) {
		return Response{Text: m.responses[i]}, nil
	}
	return Response{Text: req.Prompt}, nil
}

// Calls returns the recorded requests in call order.
func (m *Mock) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request{}, m.calls...)
}

// CallCount returns the number of Generate calls so far.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

// Reset rewinds the sequence.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.index = 0
	m.calls = nil
}
