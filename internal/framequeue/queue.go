package framequeue

import (
	"container/heap"
	"time"

	"github.com/alesr/fadetop/internal/retention"
	"github.com/alesr/fadetop/internal/stacktrace"
)

// ThreadInfo is the most-recently-observed identity of a thread.
type ThreadInfo struct {
	Pid  stacktrace.Pid
	Tid  stacktrace.Tid
	Name string
}

// FrameQueue is the per-thread state machine described in §4.2: it owns
// the stack currently open on one thread (unfinished, outermost first)
// and the records closed so far (finished, ordered by forget-time).
type FrameQueue struct {
	unfinished []UnfinishedRecord
	finished   finishedHeap

	threadInfo ThreadInfo
	startTS    time.Time
	lastUpdate time.Time
}

// New creates an empty FrameQueue. startTS and lastUpdate are only fixed by
// the first call to Increment; New exists so callers can construct a
// zero-sample queue for tests.
func New() *FrameQueue {
	return &FrameQueue{}
}

// ThreadInfo returns the most recently observed thread identity.
func (q *FrameQueue) ThreadInfo() ThreadInfo { return q.threadInfo }

// StartTS is the timestamp of the first sample ever applied to this queue.
func (q *FrameQueue) StartTS() time.Time { return q.startTS }

// LastUpdate is the timestamp of the most recent sample applied.
func (q *FrameQueue) LastUpdate() time.Time { return q.lastUpdate }

// Depth is the number of frames currently open on the stack.
func (q *FrameQueue) Depth() int { return len(q.unfinished) }

// UnfinishedAt returns the open frame sitting at the given depth (0 =
// outermost), for callers that need the frame itself rather than just the
// interval it projects to (e.g. the viewer's local-variable panel). ok is
// false if depth is out of range.
func (q *FrameQueue) UnfinishedAt(depth int) (UnfinishedRecord, bool) {
	if depth < 0 || depth >= len(q.unfinished) {
		return UnfinishedRecord{}, false
	}
	return q.unfinished[depth], true
}

// Increment applies one StackTrace sample, observed at now, to the queue.
// trace.Frames must run innermost/top first. rules computes the forget-at
// instant for any record this sample closes. It returns every
// FinishedRecord newly closed by this transition, innermost-first (I3).
//
// now must be >= the queue's previous LastUpdate; increment is infallible
// on well-formed input, per §4.2.
func (q *FrameQueue) Increment(trace stacktrace.StackTrace, now time.Time, rules retention.Set) []FinishedRecord {
	if q.startTS.IsZero() {
		q.startTS = now
	}

	n := len(trace.Frames)
	prev := q.unfinished

	limit := min(len(prev), n)
	newIdx := limit
	for i := 0; i < limit; i++ {
		frame := trace.Frames[n-1-i]
		if !prev[i].FrameKey.ShouldMerge(frame) {
			newIdx = i
			break
		}
	}

	var closed []FinishedRecord
	for depth := len(prev) - 1; depth >= newIdx; depth-- {
		rec := prev[depth]
		prev = prev[:depth]

		forgetAt, ok := rules.ForgetAt(rec.Start, now)
		fr := FinishedRecord{
			FrameKey:    rec.FrameKey,
			Start:       rec.Start,
			End:         now,
			Depth:       depth,
			ForgetAt:    forgetAt,
			HasForgetAt: ok,
		}
		closed = append(closed, fr)
		heap.Push(&q.finished, fr)
	}

	for rawIdx := n - 1 - newIdx; rawIdx >= 0; rawIdx-- {
		frame := trace.Frames[rawIdx]
		prev = append(prev, UnfinishedRecord{
			FrameKey: stacktrace.KeyFor(frame, trace.Pid, trace.Tid),
			Start:    now,
			Frame:    frame,
		})
	}

	q.unfinished = prev
	q.lastUpdate = now
	q.threadInfo = ThreadInfo{Pid: trace.Pid, Tid: trace.Tid, Name: q.threadInfo.Name}
	if trace.ThreadName != "" {
		q.threadInfo.Name = trace.ThreadName
	}

	return closed
}

// Sweep removes every finished record whose forget-at has passed (forget-at
// <= now), stopping at the first record whose forget-at is in the future
// or infinite. Calling Sweep twice at the same now is a no-op the second
// time (idempotent), since the heap is left with only records that failed
// the <= now test.
func (q *FrameQueue) Sweep(now time.Time) {
	for q.finished.Len() > 0 {
		least := q.finished[0]
		if !least.HasForgetAt || least.ForgetAt.After(now) {
			return
		}
		heap.Pop(&q.finished)
	}
}

// Empty reports whether this queue holds no state at all and is eligible
// for garbage collection (I4): no open frames and no retained finished
// records.
func (q *FrameQueue) Empty() bool {
	return len(q.unfinished) == 0 && q.finished.Len() == 0
}

// VisibleIntervals returns every finished interval that overlaps
// [windowStart, windowEnd], followed by a running interval for every open
// frame, keeping only those whose depth is below maxDepth, per §4.4's query
// contract. Open frames are not filtered by the window. The result is a
// snapshot; callers must not retain it across further mutation of the
// queue.
func (q *FrameQueue) VisibleIntervals(windowStart, windowEnd time.Time, maxDepth int) []Interval {
	var out []Interval

	for _, rec := range q.finished {
		if rec.Depth >= maxDepth {
			continue
		}
		if rec.Start.After(windowEnd) || rec.End.Before(windowStart) {
			continue
		}
		out = append(out, Interval{
			Start:    rec.Start,
			End:      rec.End,
			Depth:    rec.Depth,
			FrameKey: rec.FrameKey,
			Running:  false,
		})
	}

	for depth, rec := range q.unfinished {
		if depth >= maxDepth {
			continue
		}
		out = append(out, Interval{
			Start:    rec.Start,
			End:      q.lastUpdate,
			Depth:    depth,
			FrameKey: rec.FrameKey,
			Running:  true,
		})
	}

	return out
}
