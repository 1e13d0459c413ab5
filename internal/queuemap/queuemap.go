// Package queuemap implements the mapping from thread identifier to
// FrameQueue, responsible for routing samples, running retention sweeps,
// and reaping threads that have gone fully quiet.
package queuemap

import (
	"maps"
	"time"

	"github.com/alesr/fadetop/internal/framequeue"
	"github.com/alesr/fadetop/internal/retention"
	"github.com/alesr/fadetop/internal/stacktrace"
)

// QueueMap owns every per-thread FrameQueue plus the retention rules
// applied uniformly across all of them.
type QueueMap struct {
	queues map[stacktrace.Tid]*framequeue.FrameQueue
	rules  retention.Set
}

// New creates an empty QueueMap governed by the given retention rules. A
// nil or empty rule set means every record is retained indefinitely.
func New(rules retention.Set) *QueueMap {
	return &QueueMap{
		queues: make(map[stacktrace.Tid]*framequeue.FrameQueue),
		rules:  rules,
	}
}

// Increment performs one retention sweep across every queue, reaps any
// queue left fully empty by that sweep, then routes trace to the
// FrameQueue for trace.Tid (creating one if absent) and applies it.
func (m *QueueMap) Increment(trace stacktrace.StackTrace, now time.Time) []framequeue.FinishedRecord {
	for tid, q := range m.queues {
		q.Sweep(now)
		if q.Empty() {
			delete(m.queues, tid)
		}
	}

	q, ok := m.queues[trace.Tid]
	if !ok {
		q = framequeue.New()
		m.queues[trace.Tid] = q
	}
	return q.Increment(trace, now, m.rules)
}

// IterThreads returns a snapshot view of every tracked thread. The
// returned map must be treated as read-only and transient: it is not
// updated by later mutation of the QueueMap.
func (m *QueueMap) IterThreads() map[stacktrace.Tid]*framequeue.FrameQueue {
	return maps.Clone(m.queues)
}

// Select returns the FrameQueue tracking tid, or nil if no samples for
// that thread have been seen (or it has since been reaped).
func (m *QueueMap) Select(tid stacktrace.Tid) *framequeue.FrameQueue {
	return m.queues[tid]
}

// Len reports how many threads are currently tracked.
func (m *QueueMap) Len() int { return len(m.queues) }
