// Package framequeue implements the per-thread stack-diff state machine
// that turns a sequence of StackTrace samples into UnfinishedRecords
// (frames still on the stack) and FinishedRecords (closed frames, ordered
// by forget-time).
package framequeue

import (
	"time"

	"github.com/alesr/fadetop/internal/stacktrace"
)

// UnfinishedRecord is a frame currently on the sampled stack.
type UnfinishedRecord struct {
	FrameKey stacktrace.FrameKey
	Start    time.Time
	Frame    stacktrace.Frame
}

// FinishedRecord is a closed frame with both endpoints known. HasForgetAt
// is false when the record is retained indefinitely (forget-at is +inf).
type FinishedRecord struct {
	FrameKey    stacktrace.FrameKey
	Start       time.Time
	End         time.Time
	Depth       int
	ForgetAt    time.Time
	HasForgetAt bool
}

// Interval is the read-only shape the viewer consults: a single bar to
// draw on the timeline.
type Interval struct {
	Start    time.Time
	End      time.Time
	Depth    int
	FrameKey stacktrace.FrameKey
	Running  bool
}
