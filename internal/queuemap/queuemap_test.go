package queuemap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alesr/fadetop/internal/retention"
	"github.com/alesr/fadetop/internal/stacktrace"
)

func trace(pid stacktrace.Pid, tid stacktrace.Tid, names ...string) stacktrace.StackTrace {
	frames := make([]stacktrace.Frame, len(names))
	for i, n := range names {
		frames[i] = stacktrace.Frame{FunctionName: n, FileName: "t.py"}
	}
	return stacktrace.StackTrace{Pid: pid, Tid: tid, Frames: frames}
}

func TestIncrement_NewTidAllocatesIndependently(t *testing.T) {
	t.Parallel()

	m := New(nil)
	now := time.Unix(0, 0)

	m.Increment(trace(1, 1, "A"), now)
	require.Equal(t, 1, m.Len())

	m.Increment(trace(1, 2, "B"), now.Add(time.Millisecond))
	assert.Equal(t, 2, m.Len())

	q1 := m.Select(1)
	require.NotNil(t, q1)
	assert.Equal(t, 1, q1.Depth(), "thread 1 untouched by thread 2's sample")
}

// TestGCOfEmptyQueue follows scenario S6: once a thread's unfinished set is
// empty and every finished record is past its forget time, the next
// increment (on any trace) reaps it from the map.
func TestGCOfEmptyQueue(t *testing.T) {
	t.Parallel()

	rules := retention.Set{retention.LastedLessThan(10 * time.Millisecond)}
	m := New(rules)

	t0 := time.Unix(0, 0)
	m.Increment(trace(1, 1, "A"), t0)
	// close "A" quickly so it is subject to the lasted-less-than rule.
	m.Increment(stacktrace.StackTrace{Pid: 1, Tid: 1}, t0.Add(5*time.Millisecond))
	require.Equal(t, 1, m.Len())

	// advance time far past the forget-at and drive another increment
	// (on a different thread) to trigger the sweep.
	future := t0.Add(time.Hour)
	m.Increment(trace(1, 2, "B"), future)

	assert.Nil(t, m.Select(1), "thread 1's queue was reaped")
	assert.NotNil(t, m.Select(2))
}

func TestIterThreadsIsASnapshot(t *testing.T) {
	t.Parallel()

	m := New(nil)
	now := time.Unix(0, 0)
	m.Increment(trace(1, 1, "A"), now)

	snap := m.IterThreads()
	require.Len(t, snap, 1)

	m.Increment(trace(1, 2, "B"), now.Add(time.Millisecond))
	assert.Len(t, snap, 1, "earlier snapshot unaffected by later mutation")
	assert.Equal(t, 2, m.Len())
}
