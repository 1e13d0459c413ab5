// Package coordinator is the concurrency harness described in §4.5/§5: it
// owns the QueueMap behind a single-writer/many-reader lock, pulls samples
// from a Producer on one goroutine, ticks a periodic redraw signal on
// another, and publishes both as Events on a small bounded channel for a
// single consumer (the viewer's main loop) to drain.
//
// Its shape follows the teacher's StreamBuffer.processLoop: a
// CompareAndSwap-guarded Start/Stop, a closeable shutdown channel guarded
// by its own mutex, and goroutines that select between shutdown and work.
package coordinator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alesr/fadetop/internal/queuemap"
	"github.com/alesr/fadetop/internal/sampler"
	"github.com/alesr/fadetop/internal/stacktrace"
)

const (
	defaultUpdatePeriod = 100 * time.Millisecond
	defaultEventBuffer  = 2
)

// SampleCoordinator drives sample ingestion and redraw signaling for one
// monitored producer.
type SampleCoordinator struct {
	updatePeriod time.Duration
	eventBuffer  int
	log          *logrus.Entry

	mu    sync.RWMutex
	queue *queuemap.QueueMap

	producer sampler.Producer
	events   chan Event

	running  atomic.Bool
	poisoned atomic.Bool

	shutdownMu sync.Mutex
	shutdown   chan struct{}

	wg sync.WaitGroup
}

// New creates a SampleCoordinator that will pull from producer and apply
// samples to queue.
func New(producer sampler.Producer, queue *queuemap.QueueMap, log *logrus.Entry, opts ...Option) *SampleCoordinator {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	c := &SampleCoordinator{
		updatePeriod: defaultUpdatePeriod,
		eventBuffer:  defaultEventBuffer,
		log:          log,
		queue:        queue,
		producer:     producer,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.events = make(chan Event, c.eventBuffer)
	return c
}

// Events returns the channel the viewer's main loop should drain. It is
// closed once both the sampler and tick activities have stopped.
func (c *SampleCoordinator) Events() <-chan Event { return c.events }

// Start spawns the sampler and tick activities. It is idempotent: calling
// Start twice has no additional effect.
func (c *SampleCoordinator) Start(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		return
	}

	c.shutdownMu.Lock()
	c.shutdown = make(chan struct{})
	shutdown := c.shutdown
	c.shutdownMu.Unlock()

	c.wg.Add(2)
	go c.samplerActivity(ctx, shutdown)
	go c.tickActivity(ctx, shutdown)

	go func() {
		c.wg.Wait()
		close(c.events)
	}()
}

// Stop signals both activities to exit and returns without waiting for
// them. It does not close the Events channel itself; that happens once the
// activities have actually returned.
func (c *SampleCoordinator) Stop() {
	if !c.running.CompareAndSwap(true, false) {
		return
	}
	c.shutdownMu.Lock()
	if c.shutdown != nil {
		close(c.shutdown)
		c.shutdown = nil
	}
	c.shutdownMu.Unlock()
}

// View runs fn with a read lock held over the QueueMap, for the duration
// of one draw. The sampler's write lock waits until any reader holding the
// lock has returned; write access is only ever held for the duration of
// one Increment.
func (c *SampleCoordinator) View(fn func(*queuemap.QueueMap)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.queue)
}

func (c *SampleCoordinator) samplerActivity(ctx context.Context, shutdown chan struct{}) {
	defer c.wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ctx.Done():
			return
		default:
		}

		trace, err := c.producer.Next(ctx)
		if err != nil {
			if errors.Is(err, sampler.ErrExhausted) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.closeOutstanding()
				return
			}
			// Transient: SamplerSend is recovered locally, per §7.
			sendErr := &SamplerSendError{Err: err}
			c.log.WithError(sendErr).Warn("sampler: transient read failure, continuing")
			continue
		}

		closed, ok := c.applyTrace(trace)
		if !ok {
			return // writer lock poisoned; Fatal already emitted.
		}

		c.sendEvent(SampleApplied{ClosedCount: closed})
	}
}

// applyTrace acquires the writer lock for the duration of one
// QueueMap.Increment call, recovering from any panic to model the
// poisoned-lock failure mode from §7 (Go has no native lock poisoning, so
// a caught panic while holding the write lock is treated the same way: it
// collapses the coordinator instead of silently losing the lock state).
func (c *SampleCoordinator) applyTrace(trace stacktrace.StackTrace) (closed int, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithField("panic", r).Error("coordinator: writer lock poisoned")
			c.sendFatal(Fatal{Err: &LockPoisonedError{Recovered: r}})
			c.poisoned.Store(true)
			ok = false
		}
	}()

	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue.Increment(trace, time.Now())), true
}

func (c *SampleCoordinator) closeOutstanding() {
	// Open question from §9, resolved: on producer EOF we close every
	// outstanding UnfinishedRecord rather than leaving them open forever
	// with no further samples to close them.
	var (
		closedAny bool
		closed    int
	)
	func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		now := time.Now()
		for tid, q := range c.queue.IterThreads() {
			if q.Depth() == 0 {
				continue
			}
			closed += len(c.queue.Increment(stacktrace.StackTrace{Pid: q.ThreadInfo().Pid, Tid: tid}, now))
			closedAny = true
		}
	}()
	if closedAny {
		c.sendEvent(SampleApplied{ClosedCount: closed})
	}
}

func (c *SampleCoordinator) tickActivity(ctx context.Context, shutdown chan struct{}) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.updatePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sendEvent(Periodic{})
		}
	}
}

// sendEvent is a non-blocking send: the sampler and tick activities never
// wait on a slow reader (§5). Once the coordinator is poisoned, ordinary
// events are suppressed; only sendFatal still delivers.
func (c *SampleCoordinator) sendEvent(e Event) {
	if c.poisoned.Load() {
		return
	}
	select {
	case c.events <- e:
	default:
	}
}

// sendFatal delivers a terminal event even if the coordinator has already
// been marked poisoned by the same failure.
func (c *SampleCoordinator) sendFatal(e Event) {
	select {
	case c.events <- e:
	default:
	}
}
