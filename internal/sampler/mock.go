package sampler

import (
	"context"
	"sync"

	"github.com/alesr/fadetop/internal/stacktrace"
)

// Mock is a Producer backed by a fixed, in-memory sequence of traces. It
// exists for tests and for driving the TUI without a live target.
type Mock struct {
	mu     sync.Mutex
	traces []stacktrace.StackTrace
	pos    int
	closed bool
}

// NewMock returns a Mock that yields traces in order, then ErrExhausted.
func NewMock(traces ...stacktrace.StackTrace) *Mock {
	return &Mock{traces: traces}
}

func (m *Mock) Next(ctx context.Context) (stacktrace.StackTrace, error) {
	select {
	case <-ctx.Done():
		return stacktrace.StackTrace{}, ctx.Err()
	default:
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.pos >= len(m.traces) {
		return stacktrace.StackTrace{}, ErrExhausted
	}
	trace := m.traces[m.pos]
	m.pos++
	return trace, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
