// Package sampler defines the sample producer contract the engine
// consumes and provides the concrete producers that are in scope for this
// repository: a deterministic in-memory mock for tests, and a replay
// producer that reads recorded traces from disk. Attaching to a live
// process and walking its native call stack is the OS-level sampler's job
// (py-spy, a ptrace-based unwinder, ...) and is an external collaborator
// per the engine's scope — this package only describes the interface it
// must satisfy.
package sampler

import (
	"context"
	"errors"
	"fmt"

	"github.com/alesr/fadetop/internal/stacktrace"
)

// ErrExhausted is returned by Producer.Next once no further samples will
// ever be produced (the process exited, the replay file ended, ...).
var ErrExhausted = errors.New("sampler: producer exhausted")

// Producer yields StackTrace records until exhausted or in error. The
// engine stamps every record with its own monotonic clock on receipt and
// must not assume wall-clock or monotonic alignment with the producer's
// own timestamps (§9).
type Producer interface {
	// Next blocks until a sample is available, ctx is done, or the
	// producer is exhausted (returning ErrExhausted).
	Next(ctx context.Context) (stacktrace.StackTrace, error)

	// Close releases any resources held by the producer. It is safe to
	// call Close after Next has returned ErrExhausted.
	Close() error
}

// AttachError is returned when a Producer fails to start observing its
// target; it corresponds to the SamplerStartup error kind in §7 and is
// fatal to the coordinator.
type AttachError struct {
	Pid stacktrace.Pid
	Err error
}

func (e *AttachError) Error() string {
	return fmt.Sprintf("sampler: failed to attach to pid %d: %v", e.Pid, e.Err)
}

func (e *AttachError) Unwrap() error { return e.Err }
